package admin

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/job-board/internal"
	userDatamodel "github.com/frahmantamala/job-board/internal/core/datamodel/user"
	"github.com/frahmantamala/job-board/internal/core/events"
	"github.com/frahmantamala/job-board/internal/job"
	"github.com/frahmantamala/job-board/internal/user"
)

// DashboardStats is the admin landing summary.
type DashboardStats struct {
	TotalUsers        int64 `json:"total_users"`
	RecentSignups     int64 `json:"recent_signups"`
	TotalJobs         int64 `json:"total_jobs"`
	ActiveJobs        int64 `json:"active_jobs"`
	TotalApplications int64 `json:"total_applications"`
}

const recentSignupWindow = 30 * 24 * time.Hour

type Repository interface {
	ListUsers(role string) ([]*user.User, error)
	GetUser(id int64) (*user.User, error)
	DeleteUserCascade(u *user.User) error
	CountUsers() (int64, error)
	CountSignupsSince(since time.Time) (int64, error)
	CountJobs() (total, active int64, err error)
	CountApplications() (int64, error)
}

// JobModeration is the slice of the job service admins use.
type JobModeration interface {
	AdminListJobs(query string, includeInactive bool) ([]*job.Posting, error)
	AdminDeleteJob(id int64) error
}

type Service struct {
	repo   Repository
	jobs   JobModeration
	bus    *events.EventBus
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, jobs JobModeration, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		jobs:   jobs,
		bus:    bus,
		logger: logger,
		now:    time.Now,
	}
}

// ListUsers returns accounts matching the exact role filter, all non-admin
// accounts when the filter is empty. Admin accounts never appear, so the
// management screen cannot be used for admin self-deletion.
func (s *Service) ListUsers(roleFilter string) ([]*user.User, error) {
	if roleFilter != "" {
		if !userDatamodel.ValidRole(roleFilter) || roleFilter == userDatamodel.RoleAdmin {
			return nil, internal.NewValidationError("unknown user type filter", internal.ErrCodeInvalidRole)
		}
	}

	users, err := s.repo.ListUsers(roleFilter)
	if err != nil {
		s.logger.Error("failed to list users", "error", err, "role", roleFilter)
		return nil, internal.NewInternalError("failed to list users", err)
	}
	return users, nil
}

// DeleteUser removes an account and everything hanging off it: profiles,
// postings with their applications for companies, submitted applications for
// employees. Admin accounts cannot be deleted through this path.
func (s *Service) DeleteUser(id int64) error {
	u, err := s.repo.GetUser(id)
	if err != nil {
		return err
	}
	if u.Role == userDatamodel.RoleAdmin {
		return internal.ErrRoleRequired
	}

	if err := s.repo.DeleteUserCascade(u); err != nil {
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return internal.NewInternalError("failed to delete user", err)
	}

	s.bus.Publish(context.Background(), events.NewUserDeleted(u.ID, u.Role))
	s.logger.Info("user deleted by admin", "user_id", id, "role", u.Role)
	return nil
}

// ListJobs is job moderation across all companies, inactive postings included
// on request.
func (s *Service) ListJobs(query string, includeInactive bool) ([]*job.Posting, error) {
	return s.jobs.AdminListJobs(query, includeInactive)
}

func (s *Service) DeleteJob(id int64) error {
	return s.jobs.AdminDeleteJob(id)
}

func (s *Service) Dashboard() (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.TotalUsers, err = s.repo.CountUsers(); err != nil {
		return nil, internal.NewInternalError("failed to compute dashboard", err)
	}
	if stats.RecentSignups, err = s.repo.CountSignupsSince(s.now().Add(-recentSignupWindow)); err != nil {
		return nil, internal.NewInternalError("failed to compute dashboard", err)
	}
	if stats.TotalJobs, stats.ActiveJobs, err = s.repo.CountJobs(); err != nil {
		return nil, internal.NewInternalError("failed to compute dashboard", err)
	}
	if stats.TotalApplications, err = s.repo.CountApplications(); err != nil {
		return nil, internal.NewInternalError("failed to compute dashboard", err)
	}

	return stats, nil
}
