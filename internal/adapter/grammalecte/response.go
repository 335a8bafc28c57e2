package grammalecte

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/heartmarshall/grammalecte-api/internal/domain"
)

var errInvalidJSON = errors.New("invalid json response")

// envelope is the gc_text response shell:
// {"program": ..., "version": ..., "lang": ..., "error": ..., "data": [...]}.
type envelope struct {
	program string
	version string
	lang    string
	err     string
	first   gjson.Result
}

func parseEnvelope(body []byte) (envelope, error) {
	if !gjson.ValidBytes(body) {
		return envelope{}, errInvalidJSON
	}
	res := gjson.ParseBytes(body)
	if !res.IsObject() {
		return envelope{}, fmt.Errorf("%w: expected object", errInvalidJSON)
	}
	return envelope{
		program: res.Get("program").String(),
		version: res.Get("version").String(),
		lang:    res.Get("lang").String(),
		err:     res.Get("error").String(),
		first:   res.Get("data.0"),
	}, nil
}

// paragraphPayload extracts the single paragraph entry from env. A missing
// entry means the engine found nothing. Object payloads are renumbered and,
// when asked, carry the checked text; anything else is passed through for
// the caller to reject.
func paragraphPayload(env envelope, index int, text string, returnText bool) ([]byte, error) {
	if !env.first.Exists() {
		return nil, nil
	}
	raw := []byte(env.first.Raw)
	if !env.first.IsObject() {
		return raw, nil
	}

	out, err := sjson.SetBytes(raw, "iParagraph", index)
	if err != nil {
		return nil, fmt.Errorf("renumber payload: %w", err)
	}
	if returnText {
		out, err = sjson.SetBytes(out, "sText", text)
		if err != nil {
			return nil, fmt.Errorf("attach text: %w", err)
		}
	}
	return out, nil
}

// parseSuggestions accepts {"suggestions": [...]} where the list holds either
// strings or lists of strings.
func parseSuggestions(body []byte) ([][]string, error) {
	if !gjson.ValidBytes(body) {
		return nil, errInvalidJSON
	}
	res := gjson.ParseBytes(body)
	if msg := res.Get("error").String(); msg != "" {
		return nil, fmt.Errorf("engine error: %s", msg)
	}

	list := res.Get("suggestions")
	if !list.IsArray() {
		return nil, fmt.Errorf("%w: suggestions is not a list", errInvalidJSON)
	}

	// Runs of bare strings become their own group where they appear.
	var (
		lists [][]string
		run   []string
	)
	for _, item := range list.Array() {
		if !item.IsArray() {
			run = append(run, item.String())
			continue
		}
		if run != nil {
			lists = append(lists, run)
			run = nil
		}
		group := make([]string, 0, len(item.Array()))
		for _, s := range item.Array() {
			group = append(group, s.String())
		}
		lists = append(lists, group)
	}
	if run != nil {
		lists = append(lists, run)
	}
	if lists == nil {
		lists = [][]string{}
	}
	return lists, nil
}

// parseOptions reads boolean options from either {"values": {...}} or a flat
// object. Non-boolean entries are ignored.
func parseOptions(body []byte) (domain.OptionSet, error) {
	if !gjson.ValidBytes(body) {
		return nil, errInvalidJSON
	}
	res := gjson.ParseBytes(body)
	if values := res.Get("values"); values.IsObject() {
		res = values
	}
	if !res.IsObject() {
		return nil, fmt.Errorf("%w: options is not an object", errInvalidJSON)
	}

	opts := make(domain.OptionSet)
	res.ForEach(func(key, value gjson.Result) bool {
		if value.Type == gjson.True || value.Type == gjson.False {
			opts[key.String()] = value.Bool()
		}
		return true
	})
	return opts, nil
}
