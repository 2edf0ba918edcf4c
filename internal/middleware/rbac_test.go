package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/lms-papers-api/internal/models"
)

func runRBAC(t *testing.T, claims *models.JWTClaims, roles ...models.UserRole) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/protected", nil)
	if claims != nil {
		c.Set(ContextUserKey, claims)
	}

	RequireRoles(roles...)(c)
	if !c.IsAborted() {
		c.Status(http.StatusOK)
	}
	return rec
}

func TestRequireRolesAllowsMatchingRole(t *testing.T) {
	rec := runRBAC(t, &models.JWTClaims{Role: models.RoleAdmin}, models.RoleAdmin)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRolesRejectsOtherRole(t *testing.T) {
	rec := runRBAC(t, &models.JWTClaims{Role: models.RoleStudent}, models.RoleAdmin)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRolesRejectsUnknownRole(t *testing.T) {
	// A role outside the closed set never passes, even if a matching string
	// were somehow granted.
	rec := runRBAC(t, &models.JWTClaims{Role: "superuser"}, models.RoleAdmin, "superuser")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRolesRejectsMissingClaims(t *testing.T) {
	rec := runRBAC(t, nil, models.RoleAdmin)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
