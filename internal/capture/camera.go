package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fekuna/fridge-inventory/pkg/logger"
	"go.uber.org/zap"
)

const defaultPollInterval = 200 * time.Millisecond

// DirCamera treats every subdirectory of Root as a device named after the
// directory. Image files written into a device directory after Open are its frames.
type DirCamera struct {
	root     string
	interval time.Duration
	logger   logger.ZapLogger
}

func NewDirCamera(root string, interval time.Duration, log logger.ZapLogger) *DirCamera {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &DirCamera{root: root, interval: interval, logger: log}
}

func (c *DirCamera) Devices(ctx context.Context) ([]Device, error) {
	entries, err := os.ReadDir(c.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, mapFSError(err)
	}

	var devices []Device
	for _, e := range entries {
		if e.IsDir() {
			devices = append(devices, Device{ID: e.Name(), Label: e.Name()})
		}
	}
	return devices, nil
}

func (c *DirCamera) Open(ctx context.Context, deviceID string) (Stream, error) {
	dir := filepath.Join(c.root, deviceID)
	existing, err := listFrames(dir)
	if err != nil {
		return nil, mapFSError(err)
	}

	seen := make(map[string]bool, len(existing))
	for _, name := range existing {
		seen[name] = true
	}
	s := &dirStream{
		dir:    dir,
		seen:   seen,
		frames: make(chan image.Image),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
		logger: c.logger,
	}
	go s.poll(c.interval)
	return s, nil
}

type dirStream struct {
	dir    string
	seen   map[string]bool
	frames chan image.Image
	stop   chan struct{}
	done   chan struct{}
	once   sync.Once
	logger logger.ZapLogger
}

func (s *dirStream) Frames() <-chan image.Image { return s.frames }

func (s *dirStream) Stop() error {
	s.once.Do(func() { close(s.stop) })
	<-s.done
	return nil
}

func (s *dirStream) poll(interval time.Duration) {
	defer close(s.done)
	defer close(s.frames)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if !s.emitNew() {
			return
		}
		select {
		case <-s.stop:
			return
		case <-ticker.C:
		}
	}
}

// emitNew sends every unseen frame in name order. It reports false once the
// stream has been stopped.
func (s *dirStream) emitNew() bool {
	names, err := listFrames(s.dir)
	if err != nil {
		s.logger.Warn("read camera directory failed", zap.String("dir", s.dir), zap.Error(err))
		return true
	}
	for _, name := range names {
		if s.seen[name] {
			continue
		}
		img, err := readImage(filepath.Join(s.dir, name))
		if err != nil {
			// Possibly still being written; retried on the next tick.
			s.logger.Debug("skip unreadable frame", zap.String("file", name), zap.Error(err))
			continue
		}
		s.seen[name] = true
		select {
		case s.frames <- img:
		case <-s.stop:
			return false
		}
	}
	return true
}

func listFrames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && isImageFile(e.Name()) {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

func isImageFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}

func readImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

func mapFSError(err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}
	return err
}
