package detect

import (
	"math"
	"sort"
	"strings"
)

const (
	// alignTolerance is how far apart two fragments may sit on the
	// cross axis and still count as aligned.
	alignTolerance = 0.05
	// sortTolerance groups fragments into the same row or column when
	// ordering them.
	sortTolerance = 0.03
	// proximityBound is the loose same-line distance along the reading
	// axis. Spine text can leave big gaps between words, so this is
	// nearly the whole image.
	proximityBound = 0.95
	// minLineLength drops merged lines too short to be a title or
	// author.
	minLineLength = 3
)

// DetectOrientation votes pairwise over fragment boxes: pairs aligned
// on top count for horizontal, otherwise pairs aligned on left count
// for vertical. Fewer than two usable fragments or zero votes on both
// axes means the layout cannot be interpreted.
func DetectOrientation(fragments []Fragment) (Orientation, error) {
	usable := boxed(fragments)
	if len(usable) < 2 {
		return Horizontal, ErrOrientation
	}

	horizontal, vertical := 0, 0
	for i := 0; i < len(usable)-1; i++ {
		for j := i + 1; j < len(usable); j++ {
			b1, b2 := usable[i].Box, usable[j].Box
			if math.Abs(b1.Top-b2.Top) < alignTolerance {
				horizontal++
			} else if math.Abs(b1.Left-b2.Left) < alignTolerance {
				vertical++
			}
		}
	}

	if horizontal == 0 && vertical == 0 {
		return Horizontal, ErrOrientation
	}
	if horizontal > vertical {
		return Horizontal, nil
	}
	return Vertical, nil
}

// MergeLines orders the fragments for the given orientation and greedily
// joins runs of fragments aligned with the start of the current line.
// Lines of 3 characters or fewer, or made only of digits, are dropped.
func MergeLines(fragments []Fragment, orientation Orientation) []string {
	usable := boxed(fragments)
	sortFragments(usable, orientation)

	var lines []string
	var current []string
	var start *BoundingBox

	flush := func() {
		line := strings.TrimSpace(strings.Join(current, " "))
		if len(line) > minLineLength && !allDigits(line) {
			lines = append(lines, line)
		}
		current = nil
	}

	for _, frag := range usable {
		if len(current) == 0 {
			current = []string{frag.Text}
			start = frag.Box
			continue
		}
		if sameLine(start, frag.Box, orientation) {
			current = append(current, frag.Text)
			continue
		}
		flush()
		current = []string{frag.Text}
		start = frag.Box
	}
	if len(current) > 0 {
		flush()
	}
	return lines
}

func sortFragments(fragments []Fragment, orientation Orientation) {
	sort.SliceStable(fragments, func(i, j int) bool {
		b1, b2 := fragments[i].Box, fragments[j].Box
		if orientation == Horizontal {
			// Rows top to bottom, words left to right within a row.
			if math.Abs(b1.Top-b2.Top) < sortTolerance {
				return b1.Left < b2.Left
			}
			return b1.Top < b2.Top
		}
		// Columns left to right. Upright spine text reads bottom to
		// top, so within a column the lower fragment comes first.
		if math.Abs(b1.Left-b2.Left) < sortTolerance {
			return b1.Top > b2.Top
		}
		return b1.Left < b2.Left
	})
}

// sameLine checks the fragment against the coordinates of the line's
// first fragment: tight on the cross axis, loose along the reading
// axis.
func sameLine(start, box *BoundingBox, orientation Orientation) bool {
	if orientation == Horizontal {
		return math.Abs(start.Top-box.Top) < alignTolerance &&
			math.Abs(start.Left-box.Left) < proximityBound
	}
	return math.Abs(start.Left-box.Left) < alignTolerance &&
		math.Abs(start.Top-box.Top) < proximityBound
}

func boxed(fragments []Fragment) []Fragment {
	usable := make([]Fragment, 0, len(fragments))
	for _, frag := range fragments {
		if frag.Box != nil && strings.TrimSpace(frag.Text) != "" {
			usable = append(usable, frag)
		}
	}
	return usable
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
