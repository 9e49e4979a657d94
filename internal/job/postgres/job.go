package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/frahmantamala/job-board/internal"
	applicationDatamodel "github.com/frahmantamala/job-board/internal/core/datamodel/application"
	jobDatamodel "github.com/frahmantamala/job-board/internal/core/datamodel/job"
	"github.com/frahmantamala/job-board/internal/job"
)

// JobRepository implements job.Repository using GORM.
type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) job.Repository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(posting *job.Posting) error {
	model := job.ToDataModel(posting)
	if err := r.db.Create(model).Error; err != nil {
		return err
	}
	posting.ID = model.ID
	return nil
}

// GetByIDForCompany scopes the lookup by owner so a non-owner probing a
// foreign id gets not-found, never forbidden.
func (r *JobRepository) GetByIDForCompany(id, companyUserID int64) (*job.Posting, error) {
	var model jobDatamodel.Posting
	err := r.db.Where("id = ? AND company_user_id = ?", id, companyUserID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrJobNotFound
		}
		return nil, err
	}
	return job.FromDataModel(&model), nil
}

func (r *JobRepository) GetActiveByID(id int64) (*job.Posting, error) {
	var model jobDatamodel.Posting
	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrJobNotFound
		}
		return nil, err
	}
	return job.FromDataModel(&model), nil
}

func (r *JobRepository) Update(posting *job.Posting) error {
	return r.db.Save(job.ToDataModel(posting)).Error
}

func (r *JobRepository) DeleteByIDForCompany(id, companyUserID int64) error {
	return r.deleteScoped(func(tx *gorm.DB) *gorm.DB {
		return tx.Where("id = ? AND company_user_id = ?", id, companyUserID)
	}, id)
}

func (r *JobRepository) DeleteByID(id int64) error {
	return r.deleteScoped(func(tx *gorm.DB) *gorm.DB {
		return tx.Where("id = ?", id)
	}, id)
}

// deleteScoped removes a posting and its applications in one transaction.
// The applications delete mirrors the FK cascade so the behavior holds on
// stores without enforced foreign keys.
func (r *JobRepository) deleteScoped(scope func(*gorm.DB) *gorm.DB, id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := scope(tx).Delete(&jobDatamodel.Posting{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return internal.ErrJobNotFound
		}
		return tx.Where("job_id = ?", id).Delete(&applicationDatamodel.Application{}).Error
	})
}

func (r *JobRepository) ListByCompany(companyUserID int64) ([]*job.Posting, error) {
	var models []*jobDatamodel.Posting
	err := r.db.Where("company_user_id = ?", companyUserID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return job.FromDataModelSlice(models), nil
}

func (r *JobRepository) ListActive(filters job.BrowseFilters) ([]*job.Posting, error) {
	q := r.db.Where("is_active = ?", true)

	if filters.Query != "" {
		like := "%" + filters.Query + "%"
		q = q.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	if filters.JobType != "" {
		q = q.Where("job_type = ?", filters.JobType)
	}
	if filters.ExperienceLevel != "" {
		q = q.Where("experience_level = ?", filters.ExperienceLevel)
	}

	var models []*jobDatamodel.Posting
	if err := q.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	return job.FromDataModelSlice(models), nil
}

func (r *JobRepository) ListAll(query string, includeInactive bool) ([]*job.Posting, error) {
	q := r.db.Session(&gorm.Session{})

	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	var models []*jobDatamodel.Posting
	if err := q.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	return job.FromDataModelSlice(models), nil
}

// ExpireOverdue flips is_active for postings whose deadline passed before
// today. Returns the affected ids so the service can publish expiry events.
func (r *JobRepository) ExpireOverdue(today time.Time) ([]int64, error) {
	// Midnight in the clock's own zone; epoch truncation would shift the
	// boundary by the zone offset on non-UTC hosts.
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	var ids []int64
	err := r.db.Model(&jobDatamodel.Posting{}).
		Where("is_active = ? AND deadline IS NOT NULL AND deadline < ?", true, day).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	err = r.db.Model(&jobDatamodel.Posting{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
