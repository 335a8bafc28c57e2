package checker

import "github.com/heartmarshall/grammalecte-api/internal/textseg"

// Tracker converts paragraph-relative offsets to document offsets.
// The zero value starts at the beginning of the document.
type Tracker struct {
	cursor int
}

// Span places a paragraph-relative range at the current cursor.
func (t *Tracker) Span(relStart, relEnd int) (start, end int) {
	return t.cursor + relStart, t.cursor + relEnd
}

// Advance moves past paragraph p, which was checked as checkedLen runes,
// and the line break that ends it.
func (t *Tracker) Advance(p textseg.Paragraph, checkedLen int) {
	t.cursor += checkedLen + p.Sep
}

// Cursor is the document offset of the next paragraph.
func (t *Tracker) Cursor() int { return t.cursor }
