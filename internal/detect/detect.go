// Package detect turns a photo of book spines into lines of text. Two
// detectors are provided: local Tesseract OCR and the Gemini vision
// API. Both produce word fragments with relative bounding boxes that
// get merged into spine lines according to the shelf's orientation.
package detect

import (
	"context"
	"errors"
)

// ErrOrientation is returned when the fragment geometry is too sparse
// or too ambiguous to decide whether spines run horizontally or
// vertically.
var ErrOrientation = errors.New("detect: cannot determine text orientation")

// Orientation is the dominant reading direction of the detected text.
type Orientation int

const (
	// Horizontal means lines run left to right, top to bottom, the
	// usual case for a stack of books photographed face-on.
	Horizontal Orientation = iota
	// Vertical means lines run top to bottom, left to right, the usual
	// case for upright spines on a shelf.
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// BoundingBox locates a fragment within the image. All coordinates are
// fractions of the image dimensions in [0, 1], so boxes compare across
// image sizes.
type BoundingBox struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Fragment is a single detected word or word group and where it sits in
// the image.
type Fragment struct {
	Text string
	Box  *BoundingBox
}

// Detector extracts text lines from an image. Implementations return
// one string per detected spine or line.
type Detector interface {
	Name() string
	DetectLines(ctx context.Context, image []byte) ([]string, error)
}
