package user

import (
	"log/slog"

	"github.com/frahmantamala/job-board/internal"
	userDatamodel "github.com/frahmantamala/job-board/internal/core/datamodel/user"
)

type Repository interface {
	Create(u *User, passwordHash string) error
	CreateCompanyWithProfile(u *User, passwordHash, companyName string) error
	CreateHRWithProfile(u *User, passwordHash string, companyProfileID int64, department string) error
	GetByID(id int64) (*User, error)
	UsernameExists(username string) (bool, error)
	EmailExists(email string) (bool, error)
	GetCompanyProfileID(companyUserID int64) (int64, error)
}

// PasswordHasher is satisfied by the auth service so hashing parameters live
// in one place.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type Service struct {
	repo   Repository
	hasher PasswordHasher
	logger *slog.Logger
}

func NewService(repo Repository, hasher PasswordHasher, logger *slog.Logger) *Service {
	return &Service{repo: repo, hasher: hasher, logger: logger}
}

// SignupEmployee registers a candidate account. The profile row is created
// later, on the employee's first profile save.
func (s *Service) SignupEmployee(dto SignupDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.prepareSignup(dto)
	if err != nil {
		return nil, err
	}

	u := &User{Username: dto.Username, Email: dto.Email, Role: userDatamodel.RoleEmployee}
	if err := s.repo.Create(u, hash); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to create employee account", "error", err, "username", dto.Username)
		return nil, internal.NewInternalError("failed to create account", err)
	}

	s.logger.Info("employee account created", "user_id", u.ID, "username", u.Username)
	return u, nil
}

// SignupCompany registers a company account and its profile in one
// transaction so a company user can never exist without a named profile.
func (s *Service) SignupCompany(dto CompanySignupDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.prepareSignup(dto.SignupDTO)
	if err != nil {
		return nil, err
	}

	u := &User{Username: dto.Username, Email: dto.Email, Role: userDatamodel.RoleCompany}
	if err := s.repo.CreateCompanyWithProfile(u, hash, dto.CompanyName); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to create company account", "error", err, "username", dto.Username)
		return nil, internal.NewInternalError("failed to create account", err)
	}

	s.logger.Info("company account created", "user_id", u.ID, "username", u.Username)
	return u, nil
}

// CreateHR registers an HR account under the calling company. User and HR
// profile are created atomically; an HR account without a company link would
// be unable to review anything.
func (s *Service) CreateHR(companyUserID int64, dto AddHRDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	companyProfileID, err := s.repo.GetCompanyProfileID(companyUserID)
	if err != nil {
		return nil, internal.ErrProfileNotFound
	}

	hash, err := s.prepareSignup(dto.SignupDTO)
	if err != nil {
		return nil, err
	}

	u := &User{Username: dto.Username, Email: dto.Email, Role: userDatamodel.RoleHR}
	if err := s.repo.CreateHRWithProfile(u, hash, companyProfileID, dto.HRDepartment); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to create hr account", "error", err, "username", dto.Username, "company_user_id", companyUserID)
		return nil, internal.NewInternalError("failed to create account", err)
	}

	s.logger.Info("hr account created", "user_id", u.ID, "username", u.Username, "company_user_id", companyUserID)
	return u, nil
}

func (s *Service) GetByID(id int64) (*User, error) {
	return s.repo.GetByID(id)
}

// prepareSignup runs the friendly uniqueness checks and hashes the password.
// The DB unique indexes remain authoritative for concurrent signups.
func (s *Service) prepareSignup(dto SignupDTO) (string, error) {
	taken, err := s.repo.UsernameExists(dto.Username)
	if err != nil {
		return "", internal.NewInternalError("failed to check username", err)
	}
	if taken {
		return "", internal.ErrUsernameTaken
	}

	taken, err = s.repo.EmailExists(dto.Email)
	if err != nil {
		return "", internal.NewInternalError("failed to check email", err)
	}
	if taken {
		return "", internal.ErrEmailTaken
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		return "", internal.NewInternalError("failed to hash password", err)
	}
	return hash, nil
}
