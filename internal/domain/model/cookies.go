package model

import (
	"encoding/json"
	"fmt"
)

// Cookies is a flat mapping of cookie names to values, the only payload shape
// the vault stores. Nested or non-string values are rejected at the boundary
// rather than coerced.
type Cookies map[string]string

// CookiesFromJSON parses raw JSON into Cookies. The input must be a JSON
// object whose values are all strings; anything else returns ErrInvalidCookies.
func CookiesFromJSON(raw []byte) (Cookies, error) {
	var generic map[string]json.RawMessage
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCookies, err)
	}

	cookies := make(Cookies, len(generic))
	for name, value := range generic {
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return nil, fmt.Errorf("%w: value for %q is not a string", ErrInvalidCookies, name)
		}
		cookies[name] = s
	}
	return cookies, nil
}

// Validate checks that the mapping is non-empty. Key/value types are already
// guaranteed by the Cookies type itself.
func (c Cookies) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("%w: empty cookie mapping", ErrInvalidCookies)
	}
	return nil
}

// Clone returns an independent copy so callers cannot mutate stored state.
func (c Cookies) Clone() Cookies {
	out := make(Cookies, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
