// Package policy holds the access rules as pure predicates over
// (actor, method, resource). Handlers call these before touching the
// stores; nothing here reads request state or the database.
package policy

import (
	"net/http"

	"reviewhub/internal/api/models"
)

// Actor is the identity a request acts as. A zero Actor is an
// anonymous request.
type Actor struct {
	ID            string
	Role          string
	Superuser     bool
	Authenticated bool
}

// Anonymous returns an unauthenticated actor.
func Anonymous() Actor {
	return Actor{}
}

// IsAdmin reports admin-equivalent privilege. The superuser flag
// overrides the role field for every check.
func (a Actor) IsAdmin() bool {
	return a.Authenticated && (a.Role == models.RoleAdmin || a.Superuser)
}

// IsStaff reports moderator-or-above privilege.
func (a Actor) IsStaff() bool {
	return a.Authenticated && (a.Role == models.RoleModerator || a.IsAdmin())
}

func (a Actor) hasKnownRole() bool {
	return a.Authenticated && models.ValidRole(a.Role)
}

// SafeMethod reports whether the method is read-only.
func SafeMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

// CatalogAccess gates categories, genres and titles: reads are open to
// anyone, writes need admin.
func CatalogAccess(actor Actor, method string) bool {
	return SafeMethod(method) || actor.IsAdmin()
}

// FeedbackAccess gates the review/comment collections: reads are open,
// creating needs any authenticated role.
func FeedbackAccess(actor Actor, method string) bool {
	return SafeMethod(method) || actor.hasKnownRole()
}

// FeedbackObjectAccess gates mutation of a single review or comment:
// the author may always touch their own object, staff may touch any.
func FeedbackObjectAccess(actor Actor, method string, authorID string) bool {
	if SafeMethod(method) {
		return true
	}
	if !actor.Authenticated {
		return false
	}
	return actor.ID == authorID || actor.IsStaff()
}

// ProfileAccess gates the /users/me surface. Staff and superusers get
// through for any method; plain users only for GET and PATCH.
func ProfileAccess(actor Actor, method string) bool {
	if !actor.Authenticated {
		return false
	}
	if actor.IsStaff() {
		return true
	}
	return actor.Role == models.RoleUser &&
		(method == http.MethodGet || method == http.MethodPatch)
}

// ProfileObjectAccess allows an actor at a specific profile record:
// admins reach any record, everyone else only their own.
func ProfileObjectAccess(actor Actor, targetID string) bool {
	if !actor.Authenticated {
		return false
	}
	return actor.IsAdmin() || actor.ID == targetID
}

// UserAdminAccess gates the /users administration surface. Plain
// self-service goes through ProfileAccess, not here.
func UserAdminAccess(actor Actor) bool {
	return actor.IsAdmin()
}

// UserAdminObjectAccess gates object-level user administration. Being
// the target yourself does not relax the admin requirement.
func UserAdminObjectAccess(actor Actor) bool {
	return actor.IsAdmin()
}
