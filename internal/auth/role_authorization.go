package auth

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/job-board/internal"
	userDatamodel "github.com/frahmantamala/job-board/internal/core/datamodel/user"
)

// RoleAuthorization gates route groups by the session user's role. A role
// mismatch is always a plain 403; ownership checks deeper in the stack answer
// 404 instead (see the job repositories).
type RoleAuthorization struct {
	logger *slog.Logger
}

func NewRoleAuthorization(logger *slog.Logger) *RoleAuthorization {
	return &RoleAuthorization{logger: logger}
}

func (ra *RoleAuthorization) require(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := internal.UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			ra.logger.Warn("access denied: role mismatch",
				"user_id", user.ID,
				"user_role", user.Role,
				"required_roles", roles,
				"path", r.URL.Path)
			http.Error(w, "Forbidden: insufficient role", http.StatusForbidden)
		})
	}
}

func (ra *RoleAuthorization) RequireEmployee() func(http.Handler) http.Handler {
	return ra.require(userDatamodel.RoleEmployee)
}

func (ra *RoleAuthorization) RequireCompany() func(http.Handler) http.Handler {
	return ra.require(userDatamodel.RoleCompany)
}

func (ra *RoleAuthorization) RequireHR() func(http.Handler) http.Handler {
	return ra.require(userDatamodel.RoleHR)
}

func (ra *RoleAuthorization) RequireAdmin() func(http.Handler) http.Handler {
	return ra.require(userDatamodel.RoleAdmin)
}

// RequireCompanyOrHR covers applicant-review endpoints shared by the owning
// company and its HR staff.
func (ra *RoleAuthorization) RequireCompanyOrHR() func(http.Handler) http.Handler {
	return ra.require(userDatamodel.RoleCompany, userDatamodel.RoleHR)
}
