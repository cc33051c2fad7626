package models

// Book is a single book record. Title and Author are always set; the rest
// depends on how much the metadata source knew. ID is assigned when the
// book is added to a reading list and never changes afterwards.
type Book struct {
	ID          string  `json:"id,omitempty" yaml:"id,omitempty"`
	Title       string  `json:"title" yaml:"title"`
	Author      string  `json:"author" yaml:"author"`
	Rating      float64 `json:"rating,omitempty" yaml:"rating,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	CoverURL    string  `json:"cover_url,omitempty" yaml:"cover_url,omitempty"`
	ISBN        string  `json:"isbn,omitempty" yaml:"isbn,omitempty"`
}

// DetectedBook is a book resolved from one scan of a shelf photo.
// Never persisted; the flags say whether the line matched an existing
// list entry and, if so, which list it came from.
type DetectedBook struct {
	Book          `yaml:",inline"`
	InReadingList bool `json:"in_reading_list" yaml:"in_reading_list"`
	IsRead        bool `json:"is_read" yaml:"is_read"`
}

// ReadingLists holds the two personal lists. A book ID appears in at most
// one of the two slices at a time.
type ReadingLists struct {
	ToRead []Book `json:"to_read" yaml:"to_read"`
	Read   []Book `json:"read" yaml:"read"`
}
