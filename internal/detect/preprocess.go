package detect

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// maxWidth bounds the working resolution. Phone photos come in much
// larger and only slow Tesseract down without improving recognition.
const maxWidth = 2048

const contrastBoost = 20

// Preprocess normalizes a photo for OCR: EXIF orientation applied,
// grayscale, contrast boosted, downscaled to at most maxWidth. Returns
// the PNG bytes and the final dimensions.
func Preprocess(data []byte) ([]byte, image.Rectangle, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, image.Rectangle{}, fmt.Errorf("decoding image: %w", err)
	}

	img = imaging.Grayscale(img)
	img = imaging.AdjustContrast(img, contrastBoost)
	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, image.Rectangle{}, fmt.Errorf("encoding image: %w", err)
	}
	return buf.Bytes(), img.Bounds(), nil
}
