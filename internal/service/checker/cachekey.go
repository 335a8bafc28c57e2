package checker

import (
	"encoding/hex"
	"strconv"

	"golang.org/x/crypto/blake2b"

	"github.com/heartmarshall/grammalecte-api/internal/domain"
)

// cacheKeyPrefix namespaces cache keys in shared stores.
const cacheKeyPrefix = "gc:"

// cacheKey identifies one paragraph check: everything that can change the
// engine's answer.
type cacheKey struct {
	Lang       string
	Version    string
	Options    domain.OptionSet
	FormatText bool
	Paragraph  string
}

// String returns the hashed key. Fields are NUL-separated.
func (k cacheKey) String() string {
	h, _ := blake2b.New256(nil)
	for _, part := range []string{k.Lang, k.Version, k.Options.Canonical(), strconv.FormatBool(k.FormatText), k.Paragraph} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}
