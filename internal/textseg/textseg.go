// Package textseg splits documents into paragraphs and maps rune offsets
// back onto the source text.
//
// A paragraph ends at every line break. "\r\n", "\r" and "\n" each count as
// one break, so blank lines yield empty paragraphs. Offsets are counted in
// runes because that is how the grammar engine reports positions.
package textseg

import (
	"iter"
	"unicode/utf8"
)

// Paragraph is one line-delimited segment of a document.
type Paragraph struct {
	Index int // 1-based position in the document
	Text  string
	Start int // rune offset of the first character in the document
	Sep   int // rune width of the break ending the paragraph, 0 for the last one
}

// Len returns the paragraph length in runes.
func (p Paragraph) Len() int {
	return utf8.RuneCountInString(p.Text)
}

// Paragraphs lazily yields the paragraphs of text in document order.
// An empty text yields nothing.
func Paragraphs(text string) iter.Seq[Paragraph] {
	return func(yield func(Paragraph) bool) {
		if text == "" {
			return
		}

		index := 1
		start := 0     // byte offset of the current paragraph
		runeStart := 0 // rune offset of the current paragraph
		runes := 0

		for i := 0; i < len(text); {
			r, size := utf8.DecodeRuneInString(text[i:])
			if r != '\n' && r != '\r' {
				runes++
				i += size
				continue
			}

			sep, next := 1, i+size
			if r == '\r' && next < len(text) && text[next] == '\n' {
				sep, next = 2, next+1
			}

			if !yield(Paragraph{Index: index, Text: text[start:i], Start: runeStart, Sep: sep}) {
				return
			}

			runes += sep
			index++
			start, runeStart = next, runes
			i = next
		}

		yield(Paragraph{Index: index, Text: text[start:], Start: runeStart})
	}
}

// Join rebuilds a document from paragraph texts, reusing each paragraph's
// original line break. It is the inverse of Paragraphs when texts are unchanged.
func Join(paragraphs []Paragraph, texts []string) string {
	n := 0
	for i := range texts {
		n += len(texts[i]) + 2
	}
	buf := make([]byte, 0, n)
	for i, p := range paragraphs {
		buf = append(buf, texts[i]...)
		switch p.Sep {
		case 1:
			buf = append(buf, '\n')
		case 2:
			buf = append(buf, '\r', '\n')
		}
	}
	return string(buf)
}
