// Package authz centralises the access requirements of protected
// operations so handlers share one rule table instead of mixing inline
// role checks with declarative policy.
package authz

import "strings"

// Identity is a validated caller: either the claim set handed over by
// the token verifier, or the resolved role set of a named user.
type Identity struct {
	Username string
	Roles    []string
}

// Operation names a protected endpoint behavior.
type Operation string

const (
	OpAddClaim   Operation = "add-claim"
	OpCreatePost Operation = "create-post"
)

type rule func(Identity) bool

// Rules maps each protected operation to its requirement. add-claim only
// requires an authenticated caller; tightening it to a specific role is
// a one-line change here.
var Rules = map[Operation]rule{
	OpAddClaim:   authenticated,
	OpCreatePost: hasRole("admin"),
}

// Allow reports whether the identity satisfies the operation's rule.
// Unknown operations are denied.
func Allow(op Operation, id Identity) bool {
	r, ok := Rules[op]
	if !ok {
		return false
	}
	return r(id)
}

func authenticated(id Identity) bool {
	return id.Username != ""
}

func hasRole(name string) rule {
	return func(id Identity) bool {
		for _, role := range id.Roles {
			if strings.EqualFold(role, name) {
				return true
			}
		}
		return false
	}
}
