package auth

import "strings"

// RouteRule maps a path prefix to the set of roles allowed under it.
// A nil Roles slice means any authenticated role may pass.
type RouteRule struct {
	Prefix string
	Roles  []Role
}

// Policy is the route access table. Rules are evaluated in declaration
// order and the first matching prefix wins, so the order of the slice is
// part of the policy's value.
type Policy struct {
	rules []RouteRule
}

// NewPolicy builds a policy from an ordered rule list.
func NewPolicy(rules []RouteRule) *Policy {
	return &Policy{rules: rules}
}

// DefaultRouteTable is the access matrix for the portal's /app routes.
// Nested routes inherit permissions from their parent prefix. Paths with
// no entry are public.
func DefaultRouteTable() []RouteRule {
	return []RouteRule{
		{Prefix: "/app/admin", Roles: []Role{RoleAdmin}},
		{Prefix: "/app/reports", Roles: []Role{RoleAdmin, RoleManager}},
		{Prefix: "/app/uploads", Roles: []Role{RoleAdmin, RoleManager, RoleViewer}},
		{Prefix: "/app/errors", Roles: []Role{RoleAdmin, RoleManager, RoleViewer}},
		{Prefix: "/app/perf", Roles: []Role{RoleAdmin, RoleManager, RoleViewer}},
		{Prefix: "/app/profile", Roles: []Role{RoleAdmin, RoleManager, RoleViewer}},
	}
}

// AllowedRoles walks the table in order and returns the roles of the first
// rule whose prefix matches path. The boolean reports whether any rule
// matched; a nil slice with matched=true means any authenticated role.
func (p *Policy) AllowedRoles(path string) ([]Role, bool) {
	for _, rule := range p.rules {
		if strings.HasPrefix(path, rule.Prefix) {
			return rule.Roles, true
		}
	}
	return nil, false
}

// IsAuthorized reports whether role may access path. Paths with no rule are
// public; a rule without an explicit role set admits any valid role.
func (p *Policy) IsAuthorized(role Role, path string) bool {
	roles, matched := p.AllowedRoles(path)
	if !matched {
		return true
	}
	if roles == nil {
		return role.Valid()
	}
	for _, allowed := range roles {
		if role == allowed {
			return true
		}
	}
	return false
}
