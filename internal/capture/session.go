package capture

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/fekuna/fridge-inventory/pkg/logger"
	"go.uber.org/zap"
)

type State int

const (
	StateIdle State = iota
	StateScanning
	StateResolved
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScanning:
		return "scanning"
	case StateResolved:
		return "resolved"
	case StateError:
		return "error"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type Snapshot struct {
	State   State
	Code    string // set in StateResolved
	Message string // set in StateError
}

// Session owns at most one open camera stream. Start acquires it, Stop and Close
// release it; a successful decode releases it before the code is handed out.
type Session struct {
	camera  Camera
	decoder Decoder
	logger  logger.ZapLogger

	mu     sync.Mutex
	snap   Snapshot
	stream Stream
	cancel context.CancelFunc
}

func NewSession(camera Camera, decoder Decoder, log logger.ZapLogger) *Session {
	return &Session{
		camera:  camera,
		decoder: decoder,
		logger:  log,
	}
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Start opens the preferred camera and decodes frames in the background. onResult
// runs at most once, after the stream has been stopped.
func (s *Session) Start(ctx context.Context, onResult func(code string)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap.State == StateScanning {
		return ErrAlreadyScanning
	}

	devices, err := s.camera.Devices(ctx)
	if err != nil {
		return s.fail(fmt.Errorf("list cameras: %w", err))
	}
	device, ok := PreferRear(devices)
	if !ok {
		return s.fail(ErrNoCamera)
	}
	stream, err := s.camera.Open(ctx, device.ID)
	if err != nil {
		return s.fail(fmt.Errorf("open camera %q: %w", device.Label, err))
	}

	loopCtx, cancel := context.WithCancel(ctx)
	s.stream = stream
	s.cancel = cancel
	s.snap = Snapshot{State: StateScanning}
	s.logger.Info("camera started", zap.String("device", device.Label))

	go s.decodeLoop(loopCtx, stream, onResult)
	return nil
}

// Stop releases the camera and returns to idle.
func (s *Session) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.release()
	s.snap = Snapshot{State: StateIdle}
	return err
}

// Close releases the camera if it is still held. Safe to call any number of times.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap.State != StateScanning {
		return nil
	}
	err := s.release()
	s.snap = Snapshot{State: StateIdle}
	return err
}

// Scan runs one session to completion: it returns the first decoded code, or the
// context error. The camera is released on every return path.
func (s *Session) Scan(ctx context.Context) (string, error) {
	result := make(chan string, 1)
	if err := s.Start(ctx, func(code string) { result <- code }); err != nil {
		return "", err
	}
	defer s.Close()

	select {
	case code := <-result:
		return code, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (s *Session) decodeLoop(ctx context.Context, stream Stream, onResult func(string)) {
	frames := stream.Frames()
	for {
		select {
		case <-ctx.Done():
			return
		case frame, ok := <-frames:
			if !ok {
				return
			}
			code, err := s.decoder.Decode(frame)
			if err != nil {
				if !errors.Is(err, ErrNoCode) {
					s.logger.Debug("frame decode failed", zap.Error(err))
				}
				continue
			}
			if s.resolve(stream, code) && onResult != nil {
				onResult(code)
			}
			return
		}
	}
}

// resolve moves to StateResolved if stream is still the active one.
func (s *Session) resolve(stream Stream, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap.State != StateScanning || s.stream != stream {
		return false
	}
	if err := s.release(); err != nil {
		s.logger.Warn("camera stop failed", zap.Error(err))
	}
	s.snap = Snapshot{State: StateResolved, Code: code}
	s.logger.Info("barcode detected", zap.String("code", code))
	return true
}

// release must be called with mu held.
func (s *Session) release() error {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.stream == nil {
		return nil
	}
	err := s.stream.Stop()
	s.stream = nil
	return err
}

// fail must be called with mu held.
func (s *Session) fail(err error) error {
	s.snap = Snapshot{State: StateError, Message: CameraErrorMessage}
	s.logger.Error("camera unavailable", zap.Error(err))
	return err
}

// PreferRear picks the first device whose label mentions "back", else the first
// device.
func PreferRear(devices []Device) (Device, bool) {
	if len(devices) == 0 {
		return Device{}, false
	}
	for _, d := range devices {
		if strings.Contains(strings.ToLower(d.Label), "back") {
			return d, true
		}
	}
	return devices[0], true
}
