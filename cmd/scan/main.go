// Command scan captures one barcode from the directory camera and stores it as an
// inventory item, prefilled from the product catalog.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fekuna/fridge-inventory/config"
	"github.com/fekuna/fridge-inventory/internal/capture"
	"github.com/fekuna/fridge-inventory/internal/entry"
	"github.com/fekuna/fridge-inventory/internal/entry/dto"
	entryUCPkg "github.com/fekuna/fridge-inventory/internal/entry/usecase"
	invRepoPkg "github.com/fekuna/fridge-inventory/internal/inventory/repository"
	invUCPkg "github.com/fekuna/fridge-inventory/internal/inventory/usecase"
	"github.com/fekuna/fridge-inventory/internal/model"
	prodRepoPkg "github.com/fekuna/fridge-inventory/internal/product/repository"
	prodUCPkg "github.com/fekuna/fridge-inventory/internal/product/usecase"
	"github.com/fekuna/fridge-inventory/pkg/cache"
	"github.com/fekuna/fridge-inventory/pkg/database/sqlite"
	"github.com/fekuna/fridge-inventory/pkg/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type overrides struct {
	name    string
	qty     float64
	unit    string
	expiry  string
	manual  bool
	timeout time.Duration
}

func main() {
	var o overrides
	flag.StringVar(&o.name, "name", "", "item name (defaults to the catalog entry)")
	flag.Float64Var(&o.qty, "qty", 0, "quantity (defaults to the catalog entry, else 1)")
	flag.StringVar(&o.unit, "unit", "", "unit: buc, g, kg, ml or l")
	flag.StringVar(&o.expiry, "expiry", "", "expiry date, YYYY-MM-DD")
	flag.BoolVar(&o.manual, "manual", false, "skip the camera and enter the item manually")
	flag.DurationVar(&o.timeout, "timeout", 2*time.Minute, "give up scanning after this long")
	flag.Parse()

	if err := run(o); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(o overrides) error {
	_ = godotenv.Load()
	cfg, err := config.LoadEnv()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	appLogger := logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment:     cfg.IsDevelopment(),
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	})
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.NewSQLite(ctx, &sqlite.Config{Path: cfg.SQLite.Path, BusyTimeout: cfg.SQLite.BusyTimeout})
	if err != nil {
		return err
	}
	defer db.Close()

	var redisClient *cache.RedisClient
	if cfg.Redis.Addr != "" {
		redisClient, err = cache.NewRedisClient(ctx, &cache.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			appLogger.Warn("catalog cache disabled", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	invUC := invUCPkg.NewInventoryUseCase(invRepoPkg.NewSQLiteRepository(db), appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepoPkg.NewSQLiteRepository(db), redisClient, cfg.Redis.TTL, appLogger)
	entryUC := entryUCPkg.NewEntryUseCase(invUC, prodUC, appLogger)

	code := dto.ManualCode
	if !o.manual {
		code, err = scan(ctx, cfg, o.timeout, appLogger)
		if err != nil {
			return err
		}
	}

	form, err := entryUC.LoadForCode(ctx, code)
	if err != nil {
		return err
	}
	o.apply(form)

	item, err := entryUC.Submit(ctx, form)
	var verr *entry.ValidationError
	if errors.As(err, &verr) {
		return fmt.Errorf("%w (use -name/-qty/-unit/-expiry)", err)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(item)
}

func scan(ctx context.Context, cfg *config.Config, timeout time.Duration, log logger.ZapLogger) (string, error) {
	session := capture.NewSession(
		capture.NewDirCamera(cfg.Camera.Root, cfg.Camera.PollInterval, log),
		capture.NewZXingDecoder(),
		log,
	)
	defer session.Close()

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	fmt.Fprintf(os.Stderr, "Point the camera at a barcode (frames from %s)...\n", cfg.Camera.Root)
	code, err := session.Scan(ctx)
	if errors.Is(err, capture.ErrNoCamera) || errors.Is(err, capture.ErrPermissionDenied) {
		return "", errors.New(session.Snapshot().Message)
	}
	if err != nil {
		return "", fmt.Errorf("scan: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Detected %s\n", code)
	return code, nil
}

// apply overrides prefilled form fields with the ones given on the command line.
func (o overrides) apply(form *dto.Form) {
	if o.name != "" {
		form.Name = o.name
	}
	if o.qty != 0 {
		form.Qty = o.qty
	}
	if o.unit != "" {
		form.Unit = model.Unit(o.unit)
	}
	if o.expiry != "" {
		form.ExpiryDate = o.expiry
	}
}
