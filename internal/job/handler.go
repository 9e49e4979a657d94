package job

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/job-board/internal"
	"github.com/frahmantamala/job-board/internal/transport"
	"github.com/frahmantamala/job-board/pkg/logger"
)

type ServiceAPI interface {
	CreateJob(companyUserID int64, dto CreateJobDTO) (*Posting, error)
	ListCompanyJobs(companyUserID int64) ([]*Posting, error)
	BrowseJobs(filters BrowseFilters) ([]*Posting, error)
	GetCompanyJob(id, companyUserID int64) (*Posting, error)
	GetActiveJob(id int64) (*Posting, error)
	UpdateJob(id, companyUserID int64, dto UpdateJobDTO) (*Posting, error)
	DeleteJob(id, companyUserID int64) error
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

func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateJobDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	posting, err := h.Service.CreateJob(user.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, posting)
}

// ListCompanyJobs returns the company's own postings, expired ones included.
func (h *Handler) ListCompanyJobs(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	postings, err := h.Service.ListCompanyJobs(user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"jobs": postings})
}

// BrowseJobs is the public search endpoint; no authentication required.
func (h *Handler) BrowseJobs(w http.ResponseWriter, r *http.Request) {
	filters := BrowseFilters{
		Query:           r.URL.Query().Get("q"),
		JobType:         r.URL.Query().Get("job_type"),
		ExperienceLevel: r.URL.Query().Get("experience_level"),
	}

	postings, err := h.Service.BrowseJobs(filters)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"jobs": postings})
}

func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.jobID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid job ID")
		return
	}

	posting, err := h.Service.GetCompanyJob(id, user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, posting)
}

func (h *Handler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.jobID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid job ID")
		return
	}

	var dto UpdateJobDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	posting, err := h.Service.UpdateJob(id, user.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, posting)
}

func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.jobID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid job ID")
		return
	}

	if err := h.Service.DeleteJob(id, user.ID); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) jobID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
