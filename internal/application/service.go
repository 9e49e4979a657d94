package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/job-board/internal"
	userDatamodel "github.com/frahmantamala/job-board/internal/core/datamodel/user"
	"github.com/frahmantamala/job-board/internal/core/events"
	"github.com/frahmantamala/job-board/internal/job"
	"github.com/frahmantamala/job-board/internal/profile"
)

type Repository interface {
	Create(app *Application) error
	Exists(jobID, applicantID int64) (bool, error)
	ListByJob(jobID int64) ([]*Application, error)
	ListByCompany(companyUserID int64) ([]CompanyApplication, error)
}

// JobStore is the slice of the job service the apply workflow needs.
type JobStore interface {
	GetActiveJob(id int64) (*job.Posting, error)
	GetCompanyJob(id, companyUserID int64) (*job.Posting, error)
}

// ProfileStore resolves employee profiles (for the resume snapshot) and the
// company link behind an HR account (for applicant review access).
type ProfileStore interface {
	GetEmployeeProfile(userID int64) (*profile.EmployeeProfile, error)
	GetCompanyUserIDForHR(hrUserID int64) (int64, error)
}

type Service struct {
	repo     Repository
	jobs     JobStore
	profiles ProfileStore
	bus      *events.EventBus
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(repo Repository, jobs JobStore, profiles ProfileStore, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		jobs:     jobs,
		profiles: profiles,
		bus:      bus,
		logger:   logger,
		now:      time.Now,
	}
}

// Apply runs the submission workflow. Preconditions are checked in a fixed
// order, each with its own user-visible outcome:
//  1. already applied        -> duplicate rejection, no mutation
//  2. no employee profile    -> incomplete-profile rejection
//  3. profile without resume -> missing-resume rejection
//  4. otherwise create, snapshotting the resume reference as it is right now.
//
// The in-code duplicate check is only the friendly fast path; the composite
// unique index closes the check-then-insert race, and a unique violation on
// insert is reported as the same duplicate rejection.
func (s *Service) Apply(jobID, applicantID int64) (*Application, error) {
	posting, err := s.jobs.GetActiveJob(jobID)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.Exists(jobID, applicantID)
	if err != nil {
		s.logger.Error("failed to check existing application", "error", err, "job_id", jobID, "applicant_id", applicantID)
		return nil, internal.NewInternalError("failed to check existing application", err)
	}
	if exists {
		return nil, internal.ErrDuplicateApplication
	}

	prof, err := s.profiles.GetEmployeeProfile(applicantID)
	if err != nil {
		// Only an absent profile means the candidate is incomplete; a storage
		// fault must not masquerade as a precondition rejection.
		if err == internal.ErrProfileNotFound {
			return nil, internal.ErrIncompleteProfile
		}
		s.logger.Error("failed to load applicant profile", "error", err, "applicant_id", applicantID)
		return nil, internal.NewInternalError("failed to load applicant profile", err)
	}
	if prof.ResumeHandle == "" {
		return nil, internal.ErrMissingResume
	}

	app := &Application{
		JobID:          posting.ID,
		ApplicantID:    applicantID,
		ResumeHandle:   prof.ResumeHandle,
		ResumeFileName: prof.ResumeFileName,
		AppliedAt:      s.now(),
	}

	if err := s.repo.Create(app); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to create application", "error", err, "job_id", jobID, "applicant_id", applicantID)
		return nil, internal.NewInternalError("failed to create application", err)
	}

	s.bus.Publish(context.Background(), events.NewApplicationSubmitted(app.ID, app.JobID, app.ApplicantID))
	s.logger.Info("application submitted", "application_id", app.ID, "job_id", jobID, "applicant_id", applicantID)
	return app, nil
}

// ListForJob returns a posting's applicants for its owning company or for HR
// staff linked to that company. The job lookup is owner-scoped, so anyone
// else gets not-found.
func (s *Service) ListForJob(jobID int64, requester *internal.SessionUser) ([]*Application, error) {
	companyUserID, err := s.resolveCompanyUserID(requester)
	if err != nil {
		return nil, err
	}

	if _, err := s.jobs.GetCompanyJob(jobID, companyUserID); err != nil {
		return nil, err
	}

	apps, err := s.repo.ListByJob(jobID)
	if err != nil {
		s.logger.Error("failed to list applicants", "error", err, "job_id", jobID)
		return nil, internal.NewInternalError("failed to list applicants", err)
	}
	return apps, nil
}

// ListForCompanyGrouped returns all applications across the company's
// postings, bucketed by the posting's domain.
func (s *Service) ListForCompanyGrouped(requester *internal.SessionUser) ([]DomainGroup, error) {
	companyUserID, err := s.resolveCompanyUserID(requester)
	if err != nil {
		return nil, err
	}

	apps, err := s.repo.ListByCompany(companyUserID)
	if err != nil {
		s.logger.Error("failed to list company applications", "error", err, "company_user_id", companyUserID)
		return nil, internal.NewInternalError("failed to list applications", err)
	}
	return GroupByDomain(apps), nil
}

func (s *Service) resolveCompanyUserID(requester *internal.SessionUser) (int64, error) {
	switch requester.Role {
	case userDatamodel.RoleCompany:
		return requester.ID, nil
	case userDatamodel.RoleHR:
		companyUserID, err := s.profiles.GetCompanyUserIDForHR(requester.ID)
		if err != nil {
			s.logger.Warn("hr account has no company link", "hr_user_id", requester.ID, "error", err)
			return 0, internal.ErrRoleRequired
		}
		return companyUserID, nil
	}
	return 0, internal.ErrRoleRequired
}
