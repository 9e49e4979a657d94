package profile

import (
	"log/slog"

	"github.com/frahmantamala/job-board/internal"
	userDatamodel "github.com/frahmantamala/job-board/internal/core/datamodel/user"
)

type Repository interface {
	GetEmployeeProfile(userID int64) (*EmployeeProfile, error)
	SaveEmployeeProfile(p *EmployeeProfile) error
	GetCompanyProfile(userID int64) (*CompanyProfile, error)
	SaveCompanyProfile(p *CompanyProfile) error
	GetHRProfile(userID int64) (*HRProfile, error)
	SaveHRProfile(p *HRProfile) error
	GetCompanyUserIDForHR(hrUserID int64) (int64, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// GetProfile returns the profile matching the session user's role. Employee
// and company profiles are created lazily on first write, so a fresh account
// gets not-found here until it saves something.
func (s *Service) GetProfile(user *internal.SessionUser) (interface{}, error) {
	switch user.Role {
	case userDatamodel.RoleEmployee:
		return s.repo.GetEmployeeProfile(user.ID)
	case userDatamodel.RoleCompany:
		return s.repo.GetCompanyProfile(user.ID)
	case userDatamodel.RoleHR:
		return s.repo.GetHRProfile(user.ID)
	}
	return nil, internal.ErrProfileNotFound
}

func (s *Service) UpdateEmployeeProfile(userID int64, dto UpdateEmployeeProfileDTO) (*EmployeeProfile, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	prof, err := s.repo.GetEmployeeProfile(userID)
	if err != nil {
		if _, ok := internal.IsAppError(err); !ok {
			return nil, internal.NewInternalError("failed to load profile", err)
		}
		prof = &EmployeeProfile{UserID: userID}
	}

	if dto.Bio != nil {
		prof.Bio = *dto.Bio
	}
	if dto.Location != nil {
		prof.Location = *dto.Location
	}
	if dto.Birthdate != nil {
		prof.Birthdate = dto.ParsedBirthdate()
	}
	if dto.Skills != nil {
		prof.Skills = *dto.Skills
	}
	if dto.PictureHandle != nil {
		prof.PictureHandle = *dto.PictureHandle
	}
	if dto.ResumeHandle != nil {
		prof.ResumeHandle = *dto.ResumeHandle
	}
	if dto.ResumeFileName != nil {
		prof.ResumeFileName = *dto.ResumeFileName
	}

	if err := s.repo.SaveEmployeeProfile(prof); err != nil {
		s.logger.Error("failed to save employee profile", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to save profile", err)
	}
	return prof, nil
}

func (s *Service) UpdateCompanyProfile(userID int64, dto UpdateCompanyProfileDTO) (*CompanyProfile, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	prof, err := s.repo.GetCompanyProfile(userID)
	if err != nil {
		if _, ok := internal.IsAppError(err); !ok {
			return nil, internal.NewInternalError("failed to load profile", err)
		}
		if dto.CompanyName == nil || *dto.CompanyName == "" {
			return nil, internal.NewValidationError("company_name is required", internal.ErrCodeValidationFailed)
		}
		prof = &CompanyProfile{UserID: userID}
	}

	if dto.CompanyName != nil {
		prof.CompanyName = *dto.CompanyName
	}
	if dto.Industry != nil {
		prof.Industry = *dto.Industry
	}
	if dto.Website != nil {
		prof.Website = *dto.Website
	}
	if dto.About != nil {
		prof.About = *dto.About
	}
	if dto.LogoHandle != nil {
		prof.LogoHandle = *dto.LogoHandle
	}

	if err := s.repo.SaveCompanyProfile(prof); err != nil {
		s.logger.Error("failed to save company profile", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to save profile", err)
	}
	return prof, nil
}

// UpdateHRProfile patches an HR profile. Unlike the other two, the row must
// already exist: it is created together with the account and carries the
// immutable company link.
func (s *Service) UpdateHRProfile(userID int64, dto UpdateHRProfileDTO) (*HRProfile, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	prof, err := s.repo.GetHRProfile(userID)
	if err != nil {
		return nil, err
	}

	if dto.Bio != nil {
		prof.Bio = *dto.Bio
	}
	if dto.HRDepartment != nil {
		prof.HRDepartment = *dto.HRDepartment
	}
	if dto.PictureHandle != nil {
		prof.PictureHandle = *dto.PictureHandle
	}

	if err := s.repo.SaveHRProfile(prof); err != nil {
		s.logger.Error("failed to save hr profile", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to save profile", err)
	}
	return prof, nil
}

// GetEmployeeProfile exposes the raw lookup for the application workflow.
func (s *Service) GetEmployeeProfile(userID int64) (*EmployeeProfile, error) {
	return s.repo.GetEmployeeProfile(userID)
}

// GetCompanyUserIDForHR resolves the company account an HR user works for.
func (s *Service) GetCompanyUserIDForHR(hrUserID int64) (int64, error) {
	return s.repo.GetCompanyUserIDForHR(hrUserID)
}
