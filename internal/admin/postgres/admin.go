package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/frahmantamala/job-board/internal"
	"github.com/frahmantamala/job-board/internal/admin"
	applicationDatamodel "github.com/frahmantamala/job-board/internal/core/datamodel/application"
	jobDatamodel "github.com/frahmantamala/job-board/internal/core/datamodel/job"
	profileDatamodel "github.com/frahmantamala/job-board/internal/core/datamodel/profile"
	userDatamodel "github.com/frahmantamala/job-board/internal/core/datamodel/user"
	"github.com/frahmantamala/job-board/internal/user"
)

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) admin.Repository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) ListUsers(role string) ([]*user.User, error) {
	query := r.db.Where("role <> ?", userDatamodel.RoleAdmin)
	if role != "" {
		query = query.Where("role = ?", role)
	}

	var models []*userDatamodel.User
	if err := query.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	return user.FromDataModelSlice(models), nil
}

func (r *AdminRepository) GetUser(id int64) (*user.User, error) {
	var model userDatamodel.User
	if err := r.db.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&model), nil
}

// DeleteUserCascade removes the account and its role-dependent records in one
// transaction. Deleting a company also removes the HR accounts attached to
// it; an HR user whose company is gone has nothing left to review.
func (r *AdminRepository) DeleteUserCascade(u *user.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		switch u.Role {
		case userDatamodel.RoleEmployee:
			if err := tx.Where("applicant_id = ?", u.ID).
				Delete(&applicationDatamodel.Application{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", u.ID).
				Delete(&profileDatamodel.EmployeeProfile{}).Error; err != nil {
				return err
			}

		case userDatamodel.RoleCompany:
			if err := deleteCompanyGraph(tx, u.ID); err != nil {
				return err
			}

		case userDatamodel.RoleHR:
			if err := tx.Where("user_id = ?", u.ID).
				Delete(&profileDatamodel.HRProfile{}).Error; err != nil {
				return err
			}
		}

		result := tx.Delete(&userDatamodel.User{}, u.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return internal.ErrUserNotFound
		}
		return nil
	})
}

func deleteCompanyGraph(tx *gorm.DB, companyUserID int64) error {
	// Applications to any of the company's postings.
	if err := tx.Where("job_id IN (?)",
		tx.Model(&jobDatamodel.Posting{}).Select("id").Where("company_user_id = ?", companyUserID),
	).Delete(&applicationDatamodel.Application{}).Error; err != nil {
		return err
	}

	if err := tx.Where("company_user_id = ?", companyUserID).
		Delete(&jobDatamodel.Posting{}).Error; err != nil {
		return err
	}

	var companyProfile profileDatamodel.CompanyProfile
	err := tx.Select("id").Where("user_id = ?", companyUserID).First(&companyProfile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	// HR accounts linked through the company profile go with it.
	var hrUserIDs []int64
	if err := tx.Model(&profileDatamodel.HRProfile{}).
		Where("company_profile_id = ?", companyProfile.ID).
		Pluck("user_id", &hrUserIDs).Error; err != nil {
		return err
	}
	if err := tx.Where("company_profile_id = ?", companyProfile.ID).
		Delete(&profileDatamodel.HRProfile{}).Error; err != nil {
		return err
	}
	if len(hrUserIDs) > 0 {
		if err := tx.Delete(&userDatamodel.User{}, hrUserIDs).Error; err != nil {
			return err
		}
	}

	return tx.Delete(&profileDatamodel.CompanyProfile{}, companyProfile.ID).Error
}

func (r *AdminRepository) CountUsers() (int64, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).
		Where("role <> ?", userDatamodel.RoleAdmin).
		Count(&count).Error
	return count, err
}

func (r *AdminRepository) CountSignupsSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).
		Where("role <> ? AND created_at >= ?", userDatamodel.RoleAdmin, since).
		Count(&count).Error
	return count, err
}

func (r *AdminRepository) CountJobs() (total, active int64, err error) {
	if err = r.db.Model(&jobDatamodel.Posting{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err = r.db.Model(&jobDatamodel.Posting{}).
		Where("is_active = ?", true).
		Count(&active).Error
	return total, active, err
}

func (r *AdminRepository) CountApplications() (int64, error) {
	var count int64
	err := r.db.Model(&applicationDatamodel.Application{}).Count(&count).Error
	return count, err
}
