// Package capture turns a camera feed into a single decoded barcode.
package capture

import (
	"context"
	"errors"
	"image"
)

var (
	ErrNoCamera         = errors.New("no camera available")
	ErrPermissionDenied = errors.New("camera permission denied")
	ErrAlreadyScanning  = errors.New("scan already in progress")
	ErrNoCode           = errors.New("no barcode found")
)

// CameraErrorMessage is the user-facing text for any camera acquisition failure.
const CameraErrorMessage = "Could not access camera. Please ensure permissions are granted."

type Device struct {
	ID    string
	Label string
}

type Camera interface {
	Devices(ctx context.Context) ([]Device, error)
	Open(ctx context.Context, deviceID string) (Stream, error)
}

// Stream delivers frames until Stop is called. Frames is closed once the stream
// has shut down.
type Stream interface {
	Frames() <-chan image.Image
	Stop() error
}

// Decoder returns ErrNoCode when a frame holds no readable barcode.
type Decoder interface {
	Decode(img image.Image) (string, error)
}
