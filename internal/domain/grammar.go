package domain

// Category distinguishes the two kinds of diagnostics the engine reports.
type Category string

const (
	CategoryGrammar  Category = "grammar"
	CategorySpelling Category = "spelling"
)

func (c Category) String() string { return string(c) }

// SpellingMessagePrefix is prepended to the matched token of spelling diagnostics.
const SpellingMessagePrefix = "Spelling error: "

// Diagnostic is one issue reported by the engine for a single paragraph.
// Start and End are rune offsets relative to the paragraph that was checked.
type Diagnostic struct {
	Category Category
	Start    int
	End      int
	// Message is the rule message for grammar diagnostics and the
	// matched token for spelling diagnostics.
	Message     string
	Suggestions []string
	RuleID      *string
}

// Correction is a Diagnostic placed in whole-document coordinates.
// Text always equals the document sliced by [Start, End) in runes.
type Correction struct {
	Paragraph   int
	Category    Category
	Start       int
	End         int
	Text        string
	Message     string
	Suggestions []string
	RuleID      *string
}

// EngineInfo identifies the grammar engine serving requests.
type EngineInfo struct {
	Program string
	Version string
	Lang    string
}

// CheckResult is the outcome of checking one document.
type CheckResult struct {
	Engine      EngineInfo
	Corrections []Correction
	// FormattedText is set only when the document was formatted before
	// checking; offsets then refer to it instead of the submitted text.
	FormattedText *string
	Paragraphs    int
	// Undecodable counts paragraphs whose engine payload could not be read.
	Undecodable int
	// Error is a short, caller-safe failure message. Empty on success.
	Error string
}

// Failed reports whether the check could not be completed.
func (r *CheckResult) Failed() bool { return r.Error != "" }

// CountByCategory returns the number of corrections in the given category.
func (r *CheckResult) CountByCategory(c Category) int {
	n := 0
	for i := range r.Corrections {
		if r.Corrections[i].Category == c {
			n++
		}
	}
	return n
}
