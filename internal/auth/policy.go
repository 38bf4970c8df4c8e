package auth

import (
	"fmt"
	"strings"
)

// IdentityPolicy names how a verified token is turned into a caller identity.
// Every service that consumes tokens picks one explicitly.
type IdentityPolicy string

const (
	// PolicyNumericFirst requires a numeric id: the userId claim, or a
	// subject made only of digits.
	PolicyNumericFirst IdentityPolicy = "numeric-first"
	// PolicySubjectAsUsername uses the subject verbatim as a username.
	PolicySubjectAsUsername IdentityPolicy = "subject-as-username"
	// PolicyEither exposes both and requires at least one of them.
	PolicyEither IdentityPolicy = "either"
)

// ParsePolicy validates a configured policy name; empty selects fallback.
func ParsePolicy(name string, fallback IdentityPolicy) (IdentityPolicy, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return fallback, nil
	}
	switch p := IdentityPolicy(name); p {
	case PolicyNumericFirst, PolicySubjectAsUsername, PolicyEither:
		return p, nil
	default:
		return "", fmt.Errorf("unknown identity policy %q", name)
	}
}

// Resolve narrows an extracted identity to what the policy exposes and
// fails with ErrIdentityUnresolvable when nothing usable remains.
func (p IdentityPolicy) Resolve(extracted Identity) (Identity, error) {
	var out Identity
	switch p {
	case PolicyNumericFirst:
		out.UserID = extracted.UserID
	case PolicySubjectAsUsername:
		out.Username = extracted.Username
	case PolicyEither:
		out = extracted
	default:
		return Identity{}, fmt.Errorf("%w: unknown policy %q", ErrIdentityUnresolvable, string(p))
	}
	if out.Empty() {
		return Identity{}, fmt.Errorf("%w: policy %s", ErrIdentityUnresolvable, p)
	}
	return out, nil
}
