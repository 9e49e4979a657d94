package postgres

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/frahmantamala/job-board/internal"
	profileDatamodel "github.com/frahmantamala/job-board/internal/core/datamodel/profile"
	"github.com/frahmantamala/job-board/internal/profile"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) profile.Repository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetEmployeeProfile(userID int64) (*profile.EmployeeProfile, error) {
	var model profileDatamodel.EmployeeProfile
	if err := r.db.Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrProfileNotFound
		}
		return nil, err
	}
	return profile.EmployeeFromDataModel(&model), nil
}

func (r *ProfileRepository) SaveEmployeeProfile(p *profile.EmployeeProfile) error {
	model := profileDatamodel.EmployeeProfile{
		UserID:         p.UserID,
		Bio:            p.Bio,
		Location:       p.Location,
		Birthdate:      p.Birthdate,
		Skills:         p.Skills,
		PictureHandle:  p.PictureHandle,
		ResumeHandle:   p.ResumeHandle,
		ResumeFileName: p.ResumeFileName,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"bio", "location", "birthdate", "skills",
			"picture_handle", "resume_handle", "resume_filename", "updated_at",
		}),
	}).Create(&model).Error
}

func (r *ProfileRepository) GetCompanyProfile(userID int64) (*profile.CompanyProfile, error) {
	var model profileDatamodel.CompanyProfile
	if err := r.db.Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrProfileNotFound
		}
		return nil, err
	}
	return profile.CompanyFromDataModel(&model), nil
}

func (r *ProfileRepository) SaveCompanyProfile(p *profile.CompanyProfile) error {
	model := profileDatamodel.CompanyProfile{
		UserID:      p.UserID,
		CompanyName: p.CompanyName,
		Industry:    p.Industry,
		Website:     p.Website,
		About:       p.About,
		LogoHandle:  p.LogoHandle,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"company_name", "industry", "website", "about", "logo_handle", "updated_at",
		}),
	}).Create(&model).Error
}

func (r *ProfileRepository) GetHRProfile(userID int64) (*profile.HRProfile, error) {
	var model profileDatamodel.HRProfile
	if err := r.db.Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrProfileNotFound
		}
		return nil, err
	}
	return profile.HRFromDataModel(&model), nil
}

// SaveHRProfile updates mutable fields only; the company link set at account
// creation is never touched here.
func (r *ProfileRepository) SaveHRProfile(p *profile.HRProfile) error {
	result := r.db.Model(&profileDatamodel.HRProfile{}).
		Where("user_id = ?", p.UserID).
		Updates(map[string]interface{}{
			"bio":            p.Bio,
			"hr_department":  p.HRDepartment,
			"picture_handle": p.PictureHandle,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepository) GetCompanyUserIDForHR(hrUserID int64) (int64, error) {
	var companyUserID int64
	err := r.db.
		Table("hr_profiles").
		Select("company_profiles.user_id").
		Joins("JOIN company_profiles ON company_profiles.id = hr_profiles.company_profile_id").
		Where("hr_profiles.user_id = ?", hrUserID).
		Scan(&companyUserID).Error
	if err != nil {
		return 0, err
	}
	if companyUserID == 0 {
		return 0, internal.ErrProfileNotFound
	}
	return companyUserID, nil
}
