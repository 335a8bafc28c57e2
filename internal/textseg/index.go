package textseg

import "unicode/utf8"

// Index slices a string by rune offsets without rescanning it for every lookup.
type Index struct {
	text    string
	offsets []int // byte offset of every rune, plus len(text); nil for ASCII text
	runes   int
}

// NewIndex builds an Index over text.
func NewIndex(text string) *Index {
	ix := &Index{text: text}

	ascii := true
	for i := 0; i < len(text); i++ {
		if text[i] >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		ix.runes = len(text)
		return ix
	}

	ix.offsets = make([]int, 0, len(text)+1)
	for i := range text {
		ix.offsets = append(ix.offsets, i)
	}
	ix.offsets = append(ix.offsets, len(text))
	ix.runes = len(ix.offsets) - 1
	return ix
}

// Len returns the number of runes in the indexed text.
func (ix *Index) Len() int { return ix.runes }

// Slice returns text[start:end] in rune coordinates.
// ok is false when the range is inverted or outside the text.
func (ix *Index) Slice(start, end int) (s string, ok bool) {
	if start < 0 || end < start || end > ix.runes {
		return "", false
	}
	if ix.offsets == nil {
		return ix.text[start:end], true
	}
	return ix.text[ix.offsets[start]:ix.offsets[end]], true
}
