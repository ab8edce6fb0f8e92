// Package authz resolves the operator's role from whatever evidence the
// session holds. The stored profile wins; when it carries no role the bearer
// token's claims are consulted. The token is decoded without signature
// verification: this process never holds the signing key, and the backend
// re-checks authorization on every call anyway.
package authz

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bluemoon/fees-admin/internal/model"
)

// State tags a Resolution.
type State int

const (
	// Unknown means no strategy produced a role.
	Unknown State = iota
	// Resolved means Role carries the operator's role.
	Resolved
)

// Resolution is the outcome of running the role strategies in order.
type Resolution struct {
	State State
	Role  string
}

// ResolveRole runs the resolution strategies in order: stored profile first,
// token claims second. It never returns an error; undecodable evidence just
// resolves to Unknown.
func ResolveRole(profile *model.UserProfile, token string) Resolution {
	if profile != nil && profile.Role != "" {
		return Resolution{State: Resolved, Role: profile.Role}
	}
	return roleFromToken(token)
}

// IsAdmin reports whether profile or token resolve to an admin role,
// accepting both the plain and the ROLE_-prefixed spelling.
func IsAdmin(profile *model.UserProfile, token string) bool {
	res := ResolveRole(profile, token)
	if res.State != Resolved {
		return false
	}
	return isAdminRole(res.Role)
}

func isAdminRole(role string) bool {
	return role == model.RoleAdmin || role == model.RoleAdminPrefixed
}

func roleFromToken(token string) Resolution {
	if strings.TrimSpace(token) == "" {
		return Resolution{State: Unknown}
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return Resolution{State: Unknown}
	}

	// Backends disagree on the claim shape: some issue a "roles" array,
	// others a singular "role" string.
	if roles, ok := claims["roles"].([]any); ok {
		for _, r := range roles {
			if s, ok := r.(string); ok && isAdminRole(s) {
				return Resolution{State: Resolved, Role: s}
			}
		}
		for _, r := range roles {
			if s, ok := r.(string); ok {
				return Resolution{State: Resolved, Role: s}
			}
		}
		return Resolution{State: Unknown}
	}

	if role, ok := claims["role"].(string); ok && role != "" {
		return Resolution{State: Resolved, Role: role}
	}

	return Resolution{State: Unknown}
}
