package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/job-board/internal"
	profileDatamodel "github.com/frahmantamala/job-board/internal/core/datamodel/profile"
	userDatamodel "github.com/frahmantamala/job-board/internal/core/datamodel/user"
	"github.com/frahmantamala/job-board/internal/user"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *user.User, passwordHash string) error {
	model := &userDatamodel.User{
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: passwordHash,
		Role:         u.Role,
	}
	if err := r.db.Create(model).Error; err != nil {
		return translateUniqueViolation(err)
	}
	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	return nil
}

func (r *UserRepository) CreateCompanyWithProfile(u *user.User, passwordHash, companyName string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		model := &userDatamodel.User{
			Username:     u.Username,
			Email:        u.Email,
			PasswordHash: passwordHash,
			Role:         u.Role,
		}
		if err := tx.Create(model).Error; err != nil {
			return err
		}

		profileModel := &profileDatamodel.CompanyProfile{
			UserID:      model.ID,
			CompanyName: companyName,
		}
		if err := tx.Create(profileModel).Error; err != nil {
			return err
		}

		u.ID = model.ID
		u.CreatedAt = model.CreatedAt
		return nil
	})
	if err != nil {
		return translateUniqueViolation(err)
	}
	return nil
}

// CreateHRWithProfile creates the user row and its company-linked HR profile
// in one transaction. A partial failure must not leave an HR user with no
// company attachment.
func (r *UserRepository) CreateHRWithProfile(u *user.User, passwordHash string, companyProfileID int64, department string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		model := &userDatamodel.User{
			Username:     u.Username,
			Email:        u.Email,
			PasswordHash: passwordHash,
			Role:         u.Role,
		}
		if err := tx.Create(model).Error; err != nil {
			return err
		}

		profileModel := &profileDatamodel.HRProfile{
			UserID:           model.ID,
			HRDepartment:     department,
			CompanyProfileID: companyProfileID,
		}
		if err := tx.Create(profileModel).Error; err != nil {
			return err
		}

		u.ID = model.ID
		u.CreatedAt = model.CreatedAt
		return nil
	})
	if err != nil {
		return translateUniqueViolation(err)
	}
	return nil
}

func (r *UserRepository) GetByID(id int64) (*user.User, error) {
	var model userDatamodel.User
	if err := r.db.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&model), nil
}

func (r *UserRepository) UsernameExists(username string) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).
		Where("username = ?", username).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) GetCompanyProfileID(companyUserID int64) (int64, error) {
	var model profileDatamodel.CompanyProfile
	if err := r.db.Select("id").Where("user_id = ?", companyUserID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, internal.ErrProfileNotFound
		}
		return 0, err
	}
	return model.ID, nil
}

// translateUniqueViolation maps the unique-index race on concurrent signups
// to the same conflict the fast-path check reports. The index does not say
// which column collided, so username is the assumed culprit.
func translateUniqueViolation(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return internal.ErrUsernameTaken
	}
	return err
}
