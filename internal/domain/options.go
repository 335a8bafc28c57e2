package domain

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// OptionSet maps engine option names to their boolean value.
type OptionSet map[string]bool

// Names returns option names in sorted order.
func (o OptionSet) Names() []string {
	return slices.Sorted(maps.Keys(o))
}

// Clone returns an independent copy. A nil set clones to an empty one.
func (o OptionSet) Clone() OptionSet {
	out := make(OptionSet, len(o))
	maps.Copy(out, o)
	return out
}

// Merge returns a copy of o with overrides applied on top.
func (o OptionSet) Merge(overrides OptionSet) OptionSet {
	out := o.Clone()
	maps.Copy(out, overrides)
	return out
}

// Canonical renders the set as a stable "name=0|1" list, used for cache keys.
func (o OptionSet) Canonical() string {
	var b strings.Builder
	for i, name := range o.Names() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(name)
		if o[name] {
			b.WriteString("=1")
		} else {
			b.WriteString("=0")
		}
	}
	return b.String()
}

// ParseOptions validates caller-supplied options against the recognized set.
// Every name must be known and every value must be a boolean; all problems
// are reported together. A nil or empty input yields a nil set.
func ParseOptions(raw map[string]any, recognized OptionSet) (OptionSet, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var errs []FieldError
	out := make(OptionSet, len(raw))

	for _, name := range slices.Sorted(maps.Keys(raw)) {
		field := fmt.Sprintf("options.%s", name)
		if _, ok := recognized[name]; !ok {
			errs = append(errs, FieldError{Field: field, Message: "unknown option"})
			continue
		}
		v, ok := raw[name].(bool)
		if !ok {
			errs = append(errs, FieldError{Field: field, Message: "must be a boolean"})
			continue
		}
		out[name] = v
	}

	if len(errs) > 0 {
		return nil, NewValidationErrors(errs)
	}
	return out, nil
}
