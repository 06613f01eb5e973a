package policy

import (
	"net/http"
	"testing"

	"reviewhub/internal/api/models"

	"github.com/stretchr/testify/assert"
)

func anon() Actor {
	return Anonymous()
}

func plainUser(id string) Actor {
	return Actor{ID: id, Role: models.RoleUser, Authenticated: true}
}

func moderator(id string) Actor {
	return Actor{ID: id, Role: models.RoleModerator, Authenticated: true}
}

func admin(id string) Actor {
	return Actor{ID: id, Role: models.RoleAdmin, Authenticated: true}
}

func superuser(id string) Actor {
	return Actor{ID: id, Role: models.RoleUser, Superuser: true, Authenticated: true}
}

func TestCatalogAccess_ReadOpenToAnyone(t *testing.T) {
	assert.True(t, CatalogAccess(anon(), http.MethodGet))
	assert.True(t, CatalogAccess(plainUser("u1"), http.MethodGet))
	assert.True(t, CatalogAccess(moderator("m1"), http.MethodGet))
}

func TestCatalogAccess_WriteRequiresAdmin(t *testing.T) {
	for _, method := range []string{http.MethodPost, http.MethodPatch, http.MethodDelete} {
		assert.False(t, CatalogAccess(anon(), method), method)
		assert.False(t, CatalogAccess(plainUser("u1"), method), method)
		assert.False(t, CatalogAccess(moderator("m1"), method), method)
		assert.True(t, CatalogAccess(admin("a1"), method), method)
		assert.True(t, CatalogAccess(superuser("s1"), method), method)
	}
}

func TestFeedbackAccess_ReadOpenToAnyone(t *testing.T) {
	assert.True(t, FeedbackAccess(anon(), http.MethodGet))
}

func TestFeedbackAccess_WriteRequiresAuthenticatedRole(t *testing.T) {
	assert.False(t, FeedbackAccess(anon(), http.MethodPost))
	assert.True(t, FeedbackAccess(plainUser("u1"), http.MethodPost))
	assert.True(t, FeedbackAccess(moderator("m1"), http.MethodPost))
	assert.True(t, FeedbackAccess(admin("a1"), http.MethodPost))
}

func TestFeedbackAccess_UnknownRoleDenied(t *testing.T) {
	odd := Actor{ID: "x", Role: "owner", Authenticated: true}
	assert.False(t, FeedbackAccess(odd, http.MethodPost))
	assert.True(t, FeedbackAccess(odd, http.MethodGet))
}

func TestFeedbackObjectAccess_AuthorMayMutateOwn(t *testing.T) {
	author := plainUser("u1")
	assert.True(t, FeedbackObjectAccess(author, http.MethodPatch, "u1"))
	assert.True(t, FeedbackObjectAccess(author, http.MethodDelete, "u1"))
}

func TestFeedbackObjectAccess_OtherPlainUserDenied(t *testing.T) {
	other := plainUser("u2")
	assert.False(t, FeedbackObjectAccess(other, http.MethodPatch, "u1"))
	assert.False(t, FeedbackObjectAccess(other, http.MethodDelete, "u1"))
}

func TestFeedbackObjectAccess_StaffMayMutateAny(t *testing.T) {
	assert.True(t, FeedbackObjectAccess(moderator("m1"), http.MethodDelete, "u1"))
	assert.True(t, FeedbackObjectAccess(admin("a1"), http.MethodDelete, "u1"))
	assert.True(t, FeedbackObjectAccess(superuser("s1"), http.MethodDelete, "u1"))
}

func TestFeedbackObjectAccess_ReadAlwaysAllowed(t *testing.T) {
	assert.True(t, FeedbackObjectAccess(anon(), http.MethodGet, "u1"))
}

func TestProfileAccess_AnonymousDenied(t *testing.T) {
	assert.False(t, ProfileAccess(anon(), http.MethodGet))
}

func TestProfileAccess_PlainUserGetPatchOnly(t *testing.T) {
	u := plainUser("u1")
	assert.True(t, ProfileAccess(u, http.MethodGet))
	assert.True(t, ProfileAccess(u, http.MethodPatch))
	assert.False(t, ProfileAccess(u, http.MethodPost))
	assert.False(t, ProfileAccess(u, http.MethodDelete))
}

func TestProfileAccess_StaffAnyMethod(t *testing.T) {
	for _, a := range []Actor{moderator("m1"), admin("a1"), superuser("s1")} {
		assert.True(t, ProfileAccess(a, http.MethodGet))
		assert.True(t, ProfileAccess(a, http.MethodDelete))
	}
}

func TestProfileObjectAccess_SelfAllowed(t *testing.T) {
	assert.True(t, ProfileObjectAccess(plainUser("u1"), "u1"))
}

func TestProfileObjectAccess_OtherDeniedUnlessAdmin(t *testing.T) {
	assert.False(t, ProfileObjectAccess(plainUser("u1"), "u2"))
	assert.False(t, ProfileObjectAccess(moderator("m1"), "u2"))
	assert.True(t, ProfileObjectAccess(admin("a1"), "u2"))
	assert.True(t, ProfileObjectAccess(superuser("s1"), "u2"))
}

func TestUserAdminAccess(t *testing.T) {
	assert.False(t, UserAdminAccess(anon()))
	assert.False(t, UserAdminAccess(plainUser("u1")))
	assert.False(t, UserAdminAccess(moderator("m1")))
	assert.True(t, UserAdminAccess(admin("a1")))
	assert.True(t, UserAdminAccess(superuser("s1")))
}

func TestUserAdminObjectAccess_SelfDoesNotRelax(t *testing.T) {
	// acting on your own record through the admin surface still
	// requires the admin role
	assert.False(t, UserAdminObjectAccess(plainUser("u1")))
	assert.True(t, UserAdminObjectAccess(admin("a1")))
}

func TestSuperuserOverridesRoleField(t *testing.T) {
	s := Actor{ID: "s1", Role: models.RoleUser, Superuser: true, Authenticated: true}
	assert.True(t, s.IsAdmin())
	assert.True(t, CatalogAccess(s, http.MethodDelete))
	assert.True(t, UserAdminAccess(s))
}

func TestSafeMethod(t *testing.T) {
	assert.True(t, SafeMethod(http.MethodGet))
	assert.True(t, SafeMethod(http.MethodHead))
	assert.True(t, SafeMethod(http.MethodOptions))
	assert.False(t, SafeMethod(http.MethodPost))
	assert.False(t, SafeMethod(http.MethodPatch))
	assert.False(t, SafeMethod(http.MethodDelete))
}
