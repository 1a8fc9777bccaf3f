// Package callbacks encodes inline button payloads as '_'-joined tokens.
//
// A payload starts with a family name (which may itself contain '_') followed
// by argument tokens. Families are resolved longest first, and the last
// argument may contain '_' because Split keeps the remainder intact.
package callbacks

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxDataLen is the platform limit for callback payloads in bytes.
const MaxDataLen = 64

const sep = "_"

var ErrMalformed = errors.New("callbacks: malformed payload")

// Encode joins family and tokens and truncates the result to MaxDataLen bytes
// without splitting a multi-byte rune.
func Encode(family string, tokens ...string) string {
	parts := append([]string{family}, tokens...)
	data := strings.Join(parts, sep)
	if len(data) <= MaxDataLen {
		return data
	}
	cut := MaxDataLen
	for cut > 0 && !utf8.RuneStart(data[cut]) {
		cut--
	}
	return data[:cut]
}

// Payload is a decoded callback: its family and the raw argument string.
type Payload struct {
	Family string
	Args   string
}

// Int64 parses Args as a single positive integer.
func (p Payload) Int64() (int64, error) {
	id, err := strconv.ParseInt(p.Args, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q expects a positive id, got %q", ErrMalformed, p.Family, p.Args)
	}
	return id, nil
}

// Split returns at most n argument tokens; the last one holds the unsplit remainder.
func (p Payload) Split(n int) []string {
	if p.Args == "" {
		return nil
	}
	return strings.SplitN(p.Args, sep, n)
}

// Codec resolves payloads against a fixed set of families.
type Codec struct {
	families []string
}

// NewCodec registers families; duplicates and empty names are rejected.
func NewCodec(families ...string) (*Codec, error) {
	seen := make(map[string]bool, len(families))
	list := make([]string, 0, len(families))
	for _, f := range families {
		if f == "" || seen[f] {
			return nil, fmt.Errorf("callbacks: invalid or duplicate family %q", f)
		}
		seen[f] = true
		list = append(list, f)
	}
	sort.SliceStable(list, func(i, j int) bool { return len(list[i]) > len(list[j]) })
	return &Codec{families: list}, nil
}

// Parse finds the longest family that data starts with on a token boundary.
func (c *Codec) Parse(data string) (Payload, error) {
	data = strings.TrimPrefix(data, "\f")
	for _, f := range c.families {
		if data == f {
			return Payload{Family: f}, nil
		}
		if strings.HasPrefix(data, f+sep) {
			return Payload{Family: f, Args: data[len(f)+len(sep):]}, nil
		}
	}
	return Payload{}, fmt.Errorf("%w: unknown family in %q", ErrMalformed, data)
}
