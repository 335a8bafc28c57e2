// Package textformat normalizes French typography in a single paragraph:
// spacing, no-break spaces around high punctuation, apostrophes, ellipses
// and dashes. It never adds or removes line breaks.
package textformat

import (
	"regexp"
	"slices"
)

const (
	nbsp       = "\u00a0"
	narrowNBSP = "\u202f"
)

type rule struct {
	option string
	re     *regexp.Regexp
	repl   string
}

// Rules are applied in order; later rules see the output of earlier ones.
var rules = []rule{
	{"start_of_paragraph", regexp.MustCompile(`^[ \t\x{A0}\x{202F}]+`), ""},
	{"end_of_paragraph", regexp.MustCompile(`[ \t\x{A0}\x{202F}]+$`), ""},
	{"between_words", regexp.MustCompile(`[ \t]{2,}`), " "},
	{"before_punctuation", regexp.MustCompile(`[ \t]+([.,])`), "$1"},
	{"within_parenthesis", regexp.MustCompile(`\([ \t]+`), "("},
	{"within_parenthesis", regexp.MustCompile(`[ \t]+\)`), ")"},
	{"within_square_brackets", regexp.MustCompile(`\[[ \t]+`), "["},
	{"within_square_brackets", regexp.MustCompile(`[ \t]+\]`), "]"},
	{"ts_ellipsis", regexp.MustCompile(`\.\.\.`), "…"},
	{"ts_apostrophe", regexp.MustCompile(`(\pL)'(\pL)`), "$1’$2"},
	{"ts_dash_middle", regexp.MustCompile(` - `), " – "},
	{"nbsp_before_punctuation", regexp.MustCompile(`([\pL\pN»)\]…])[ \x{A0}]?([;!?])`), "$1" + narrowNBSP + "$2"},
	{"nbsp_before_punctuation", regexp.MustCompile(`([\pL\pN»)\]])[ \x{202F}]?:(\s|$)`), "$1" + nbsp + ":$2"},
	{"nbsp_within_quotation_marks", regexp.MustCompile(`«[ \x{A0}\x{202F}]?(\S)`), "«" + nbsp + "$1"},
	{"nbsp_within_quotation_marks", regexp.MustCompile(`(\S)[ \x{A0}\x{202F}]?»`), "$1" + nbsp + "»"},
}

// Options lists every formatter option name, sorted.
func Options() []string {
	var names []string
	for _, r := range rules {
		if !slices.Contains(names, r.option) {
			names = append(names, r.option)
		}
	}
	slices.Sort(names)
	return names
}

// Formatter applies the enabled typography rules to paragraphs.
// It is safe for concurrent use.
type Formatter struct {
	disabled map[string]bool
}

// New creates a Formatter with every rule enabled except the listed ones.
func New(disabled ...string) *Formatter {
	f := &Formatter{disabled: make(map[string]bool, len(disabled))}
	for _, name := range disabled {
		f.disabled[name] = true
	}
	return f
}

// Format returns the normalized paragraph. Input containing line breaks is
// treated as a single paragraph.
func (f *Formatter) Format(paragraph string) string {
	if paragraph == "" {
		return paragraph
	}
	for _, r := range rules {
		if f.disabled[r.option] {
			continue
		}
		paragraph = r.re.ReplaceAllString(paragraph, r.repl)
	}
	return paragraph
}
