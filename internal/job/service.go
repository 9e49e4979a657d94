package job

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/job-board/internal"
	"github.com/frahmantamala/job-board/internal/core/events"
)

// Repository is the data access surface for postings. Company-scoped lookups
// take the requesting company id so ownership is enforced by the query
// itself: a miss and a foreign job are indistinguishable to the caller.
type Repository interface {
	Create(posting *Posting) error
	GetByIDForCompany(id, companyUserID int64) (*Posting, error)
	GetActiveByID(id int64) (*Posting, error)
	Update(posting *Posting) error
	DeleteByIDForCompany(id, companyUserID int64) error
	DeleteByID(id int64) error
	ListByCompany(companyUserID int64) ([]*Posting, error)
	ListActive(filters BrowseFilters) ([]*Posting, error)
	ListAll(query string, includeInactive bool) ([]*Posting, error)
	ExpireOverdue(today time.Time) (expiredIDs []int64, err error)
}

type Service struct {
	repo   Repository
	bus    *events.EventBus
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the service clock, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) CreateJob(companyUserID int64, dto CreateJobDTO) (*Posting, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	posting := &Posting{
		CompanyUserID:   companyUserID,
		Title:           dto.Title,
		Description:     dto.Description,
		Domain:          dto.Domain,
		JobType:         dto.JobType,
		ExperienceLevel: dto.ExperienceLevel,
		Location:        dto.Location,
		Deadline:        dto.Deadline,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(posting); err != nil {
		s.logger.Error("failed to create job", "error", err, "company_user_id", companyUserID)
		return nil, internal.NewInternalError("failed to create job", err)
	}

	s.logger.Info("job created", "job_id", posting.ID, "company_user_id", companyUserID, "title", posting.Title)
	return posting, nil
}

// ListCompanyJobs returns everything the company owns, expired postings
// included. The sweep runs first so the list reflects current lifecycle state.
func (s *Service) ListCompanyJobs(companyUserID int64) ([]*Posting, error) {
	s.SweepExpired(context.Background())

	postings, err := s.repo.ListByCompany(companyUserID)
	if err != nil {
		s.logger.Error("failed to list company jobs", "error", err, "company_user_id", companyUserID)
		return nil, internal.NewInternalError("failed to list jobs", err)
	}
	return postings, nil
}

// BrowseJobs is the public listing: active postings only, after a sweep.
func (s *Service) BrowseJobs(filters BrowseFilters) ([]*Posting, error) {
	s.SweepExpired(context.Background())

	postings, err := s.repo.ListActive(filters)
	if err != nil {
		s.logger.Error("failed to browse jobs", "error", err)
		return nil, internal.NewInternalError("failed to browse jobs", err)
	}
	return postings, nil
}

func (s *Service) GetCompanyJob(id, companyUserID int64) (*Posting, error) {
	posting, err := s.repo.GetByIDForCompany(id, companyUserID)
	if err != nil {
		return nil, err
	}
	return posting, nil
}

func (s *Service) GetActiveJob(id int64) (*Posting, error) {
	return s.repo.GetActiveByID(id)
}

func (s *Service) UpdateJob(id, companyUserID int64, dto UpdateJobDTO) (*Posting, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	posting, err := s.repo.GetByIDForCompany(id, companyUserID)
	if err != nil {
		return nil, err
	}

	if dto.Title != nil {
		posting.Title = *dto.Title
	}
	if dto.Description != nil {
		posting.Description = *dto.Description
	}
	if dto.Domain != nil {
		posting.Domain = *dto.Domain
	}
	if dto.JobType != nil {
		posting.JobType = *dto.JobType
	}
	if dto.ExperienceLevel != nil {
		posting.ExperienceLevel = *dto.ExperienceLevel
	}
	if dto.Location != nil {
		posting.Location = *dto.Location
	}
	if dto.Deadline != nil {
		posting.Deadline = dto.Deadline
	}
	posting.UpdatedAt = s.now()

	if err := s.repo.Update(posting); err != nil {
		s.logger.Error("failed to update job", "error", err, "job_id", id)
		return nil, internal.NewInternalError("failed to update job", err)
	}

	s.logger.Info("job updated", "job_id", id, "company_user_id", companyUserID)
	return posting, nil
}

// DeleteJob is a hard delete, distinct from expiry, available only to the
// owning company (admins go through AdminDeleteJob).
func (s *Service) DeleteJob(id, companyUserID int64) error {
	if err := s.repo.DeleteByIDForCompany(id, companyUserID); err != nil {
		return err
	}
	s.logger.Info("job deleted", "job_id", id, "company_user_id", companyUserID)
	return nil
}

func (s *Service) AdminListJobs(query string, includeInactive bool) ([]*Posting, error) {
	s.SweepExpired(context.Background())

	postings, err := s.repo.ListAll(query, includeInactive)
	if err != nil {
		s.logger.Error("failed to list jobs for moderation", "error", err)
		return nil, internal.NewInternalError("failed to list jobs", err)
	}
	return postings, nil
}

func (s *Service) AdminDeleteJob(id int64) error {
	if err := s.repo.DeleteByID(id); err != nil {
		return err
	}
	s.logger.Info("job deleted by admin", "job_id", id)
	return nil
}

// SweepExpired deactivates postings whose deadline is strictly before today.
// Idempotent; runs synchronously at the start of every listing read.
func (s *Service) SweepExpired(ctx context.Context) int {
	expiredIDs, err := s.repo.ExpireOverdue(s.now())
	if err != nil {
		// A failed sweep must not break the read it piggybacks on.
		s.logger.Error("lifecycle sweep failed", "error", err)
		return 0
	}

	for _, id := range expiredIDs {
		s.bus.Publish(ctx, events.NewJobExpired(id))
	}

	if len(expiredIDs) > 0 {
		s.logger.Info("lifecycle sweep expired postings", "count", len(expiredIDs))
	}
	return len(expiredIDs)
}
