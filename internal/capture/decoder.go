package capture

import (
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// ZXingDecoder tries the retail 1D symbologies first, then Code-128 and QR.
type ZXingDecoder struct {
	hints map[gozxing.DecodeHintType]interface{}
}

func NewZXingDecoder() *ZXingDecoder {
	return &ZXingDecoder{
		hints: map[gozxing.DecodeHintType]interface{}{
			gozxing.DecodeHintType_TRY_HARDER: true,
		},
	}
}

// Readers keep per-decode scratch state, so each call builds its own set.
func newReaders() []gozxing.Reader {
	return []gozxing.Reader{
		oned.NewEAN13Reader(),
		oned.NewEAN8Reader(),
		oned.NewUPCAReader(),
		oned.NewUPCEReader(),
		oned.NewCode128Reader(),
		qrcode.NewQRCodeReader(),
	}
}

func (d *ZXingDecoder) Decode(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("prepare frame: %w", err)
	}
	for _, r := range newReaders() {
		// Not-found, format and checksum failures all mean "try the next symbology".
		if result, err := r.Decode(bmp, d.hints); err == nil {
			return result.GetText(), nil
		}
	}
	return "", ErrNoCode
}
