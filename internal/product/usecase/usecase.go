package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/fridge-inventory/internal/model"
	"github.com/fekuna/fridge-inventory/internal/product"
	"github.com/fekuna/fridge-inventory/pkg/cache"
	"github.com/fekuna/fridge-inventory/pkg/logger"
	"go.uber.org/zap"
)

var ErrInvalidProduct = errors.New("invalid product")

type productUseCase struct {
	repo     product.Repository
	cache    *cache.RedisClient
	cacheTTL time.Duration
	logger   logger.ZapLogger
}

// NewProductUseCase builds the catalog usecase. cache may be nil, in which case every
// lookup goes to the repository.
func NewProductUseCase(repo product.Repository, cache *cache.RedisClient, cacheTTL time.Duration, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   log,
	}
}

func (uc *productUseCase) GetProduct(ctx context.Context, ean string) (*model.Product, error) {
	key := cacheKey(ean)
	if uc.cache != nil {
		var cached model.Product
		found, err := uc.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			uc.logger.Warn("product cache read failed", zap.String("ean", ean), zap.Error(err))
		} else if found {
			return &cached, nil
		}
	}

	p, err := uc.repo.FindByEAN(ctx, ean)
	if err != nil {
		return nil, fmt.Errorf("find product %s: %w", ean, err)
	}
	if p == nil {
		return nil, nil
	}

	if uc.cache != nil {
		if err := uc.cache.SetJSON(ctx, key, p, uc.cacheTTL); err != nil {
			uc.logger.Warn("product cache write failed", zap.String("ean", ean), zap.Error(err))
		}
	}
	return p, nil
}

func (uc *productUseCase) SaveProduct(ctx context.Context, p *model.Product) error {
	if strings.TrimSpace(p.EAN) == "" || p.DefaultQty <= 0 || !p.DefaultUnit.Valid() {
		return ErrInvalidProduct
	}
	if err := uc.repo.Upsert(ctx, p); err != nil {
		return fmt.Errorf("save product %s: %w", p.EAN, err)
	}

	if uc.cache != nil {
		if err := uc.cache.Delete(ctx, cacheKey(p.EAN)); err != nil {
			uc.logger.Warn("product cache invalidation failed", zap.String("ean", p.EAN), zap.Error(err))
		}
	}
	uc.logger.Debug("product saved", zap.String("ean", p.EAN))
	return nil
}

func cacheKey(ean string) string {
	return "products:ean:" + ean
}
