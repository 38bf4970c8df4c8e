package auth

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Identity is the caller recovered from a verified token.
// Either field may be nil depending on the token and the policy.
type Identity struct {
	UserID   *int64
	Username *string
}

// ID returns the numeric identity when present.
func (i Identity) ID() (int64, bool) {
	if i.UserID == nil {
		return 0, false
	}
	return *i.UserID, true
}

// Name returns the username identity when present.
func (i Identity) Name() (string, bool) {
	if i.Username == nil {
		return "", false
	}
	return *i.Username, true
}

// Empty reports whether neither identity is resolvable.
func (i Identity) Empty() bool {
	return i.UserID == nil && i.Username == nil
}

// ExtractIdentity derives both identity conventions from one set of claims.
//
// UserID follows numeric-claim-first: the userId claim when present, otherwise
// the subject if it is all digits. Username is the subject as-is.
func ExtractIdentity(c *Claims) Identity {
	if c == nil {
		return Identity{}
	}
	return Identity{
		UserID:   numericIdentity(c),
		Username: usernameIdentity(c),
	}
}

func numericIdentity(c *Claims) *int64 {
	// A present userId claim is authoritative, even when it cannot be used.
	if raw, present := claimString(c.UserID); present {
		return parseID(raw)
	}
	if isDigits(c.Subject) {
		return parseID(c.Subject)
	}
	return nil
}

func usernameIdentity(c *Claims) *string {
	if strings.TrimSpace(c.Subject) == "" {
		return nil
	}
	name := c.Subject
	return &name
}

func claimString(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	default:
		return fmt.Sprint(t), true
	}
}

func parseID(raw string) *int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
