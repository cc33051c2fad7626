package detect

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/otiai10/gosseract/v2"
)

// TesseractDetector runs local OCR. It needs the tesseract shared
// library and the language data installed on the host.
type TesseractDetector struct {
	// Language is a Tesseract language code such as "fra".
	Language string
}

func NewTesseractDetector(language string) *TesseractDetector {
	return &TesseractDetector{Language: language}
}

func (d *TesseractDetector) Name() string {
	return "tesseract"
}

// DetectLines preprocesses the image, extracts word fragments with
// their bounding boxes, and merges them into spine lines following the
// detected orientation.
func (d *TesseractDetector) DetectLines(ctx context.Context, image []byte) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prepared, bounds, err := Preprocess(image)
	if err != nil {
		return nil, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(d.Language); err != nil {
		return nil, fmt.Errorf("setting OCR language %q: %w", d.Language, err)
	}
	if err := client.SetImageFromBytes(prepared); err != nil {
		return nil, fmt.Errorf("loading image into OCR: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("extracting word boxes: %w", err)
	}

	width := float64(bounds.Dx())
	height := float64(bounds.Dy())
	fragments := make([]Fragment, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		fragments = append(fragments, Fragment{
			Text: box.Word,
			Box: &BoundingBox{
				Left:   float64(box.Box.Min.X) / width,
				Top:    float64(box.Box.Min.Y) / height,
				Width:  float64(box.Box.Dx()) / width,
				Height: float64(box.Box.Dy()) / height,
			},
		})
	}

	orientation, err := DetectOrientation(fragments)
	if err != nil {
		return nil, err
	}
	slog.Debug("detected text orientation", "orientation", orientation.String(), "fragments", len(fragments))

	return MergeLines(fragments, orientation), nil
}
