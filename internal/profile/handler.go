package profile

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/job-board/internal"
	userDatamodel "github.com/frahmantamala/job-board/internal/core/datamodel/user"
	"github.com/frahmantamala/job-board/internal/transport"
	"github.com/frahmantamala/job-board/pkg/logger"
)

type ServiceAPI interface {
	GetProfile(user *internal.SessionUser) (interface{}, error)
	UpdateEmployeeProfile(userID int64, dto UpdateEmployeeProfileDTO) (*EmployeeProfile, error)
	UpdateCompanyProfile(userID int64, dto UpdateCompanyProfileDTO) (*CompanyProfile, error)
	UpdateHRProfile(userID int64, dto UpdateHRProfileDTO) (*HRProfile, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	prof, err := h.Service.GetProfile(user)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, prof)
}

// UpdateMyProfile decodes the body according to the caller's role and patches
// the matching profile.
func (h *Handler) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	switch user.Role {
	case userDatamodel.RoleEmployee:
		var dto UpdateEmployeeProfileDTO
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		prof, err := h.Service.UpdateEmployeeProfile(user.ID, dto)
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}
		h.WriteJSON(w, http.StatusOK, prof)

	case userDatamodel.RoleCompany:
		var dto UpdateCompanyProfileDTO
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		prof, err := h.Service.UpdateCompanyProfile(user.ID, dto)
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}
		h.WriteJSON(w, http.StatusOK, prof)

	case userDatamodel.RoleHR:
		var dto UpdateHRProfileDTO
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		prof, err := h.Service.UpdateHRProfile(user.ID, dto)
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}
		h.WriteJSON(w, http.StatusOK, prof)

	default:
		h.HandleServiceError(w, internal.ErrProfileNotFound)
	}
}
