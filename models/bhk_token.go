package models

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

var firstDigitRun = regexp.MustCompile(`\d+`)

// BhkToken is one decoded entry of the bhks query parameter: either a parsed bedroom
// count or the raw token when it carries no digits. Callers must handle both cases.
type BhkToken struct {
	count  int
	raw    string
	parsed bool
}

func ParsedBhk(count int) BhkToken {
	return BhkToken{count: count, parsed: true}
}

func RawBhk(raw string) BhkToken {
	return BhkToken{raw: raw}
}

// ParseBhkToken takes the first run of digits of the token, so "2" and "2 Bhk" both yield 2
// and "5+" yields 5.
func ParseBhkToken(token string) BhkToken {
	m := firstDigitRun.FindString(token)
	if m == "" {
		return RawBhk(token)
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		// digit run too long for an int
		return RawBhk(token)
	}
	return ParsedBhk(n)
}

// Count returns the bedroom count and whether the token was parsed.
func (b BhkToken) Count() (int, bool) {
	return b.count, b.parsed
}

// Raw returns the original token and whether the token was left unparsed.
func (b BhkToken) Raw() (string, bool) {
	return b.raw, !b.parsed
}

func (b BhkToken) String() string {
	if b.parsed {
		return strconv.Itoa(b.count)
	}
	return b.raw
}

// MarshalJSON writes a parsed token as a number and a raw token as a string.
func (b BhkToken) MarshalJSON() ([]byte, error) {
	if b.parsed {
		return json.Marshal(b.count)
	}
	return json.Marshal(b.raw)
}

func (b *BhkToken) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*b = ParsedBhk(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("bhk token must be a number or a string: %w", err)
	}
	*b = RawBhk(s)
	return nil
}
