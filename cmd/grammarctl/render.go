package main

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/rivo/uniseg"
	"gopkg.in/yaml.v3"
)

type outputFmt string

const (
	formatText outputFmt = "text"
	formatJSON outputFmt = "json"
	formatYAML outputFmt = "yaml"
)

func parseFormat(s string) (outputFmt, error) {
	switch f := outputFmt(strings.ToLower(s)); f {
	case formatText, formatJSON, formatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
}

// render writes data as JSON or YAML, or calls text for the human format.
func render(w io.Writer, f outputFmt, data any, text func(io.Writer) error) error {
	switch f {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(data)
	default:
		return text(w)
	}
}

// renderCheckText prints each correction under its source line with a caret
// marker. Columns are display widths so wide and combining characters line up.
func renderCheckText(w io.Writer, submitted string, res *checkResult) error {
	doc := submitted
	if res.FormattedText != nil {
		doc = *res.FormattedText
	}
	runes := []rune(doc)

	if res.Error != nil {
		return nil
	}
	if len(res.Data) == 0 {
		_, err := fmt.Fprintln(w, "No issues found.")
		return err
	}

	for _, c := range res.Data {
		start := max(0, min(c.Start, len(runes)))
		line, lineNo, col := lineAt(runes, start)
		lineRunes := []rune(line)
		end := max(col, min(col+c.End-start, len(lineRunes)))
		prefix := string(lineRunes[:col])
		span := string(lineRunes[col:end])

		fmt.Fprintf(w, "%d:%d %s: %s\n", lineNo, col+1, c.Category, c.Message)
		fmt.Fprintf(w, "  %s\n", line)
		fmt.Fprintf(w, "  %s%s\n",
			strings.Repeat(" ", uniseg.StringWidth(prefix)),
			strings.Repeat("^", max(1, uniseg.StringWidth(span))),
		)
		if len(c.Suggestions) > 0 {
			fmt.Fprintf(w, "  suggestions: %s\n", strings.Join(c.Suggestions, ", "))
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d issue(s)\n", len(res.Data))
	return err
}

// lineAt returns the line containing rune offset off, its 1-based number and
// the 0-based rune column of off within it. off must be within [0, len(runes)].
func lineAt(runes []rune, off int) (line string, lineNo, col int) {
	start := off
	for start > 0 && runes[start-1] != '\n' && runes[start-1] != '\r' {
		start--
	}
	end := off
	for end < len(runes) && runes[end] != '\n' && runes[end] != '\r' {
		end++
	}

	lineNo = 1
	for i := 0; i < start; i++ {
		if runes[i] == '\n' || (runes[i] == '\r' && (i+1 >= len(runes) || runes[i+1] != '\n')) {
			lineNo++
		}
	}
	return string(runes[start:end]), lineNo, off - start
}

func renderOptionsText(w io.Writer, res *optionsResult) error {
	for _, name := range slices.Sorted(maps.Keys(res.Options)) {
		marker := ""
		if def, ok := res.DefaultOptions[name]; ok && def != res.Options[name] {
			marker = fmt.Sprintf(" (default %t)", def)
		}
		if _, err := fmt.Fprintf(w, "%-8s %t%s\n", name, res.Options[name], marker); err != nil {
			return err
		}
	}
	return nil
}
