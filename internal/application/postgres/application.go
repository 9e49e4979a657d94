package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/job-board/internal"
	"github.com/frahmantamala/job-board/internal/application"
	applicationDatamodel "github.com/frahmantamala/job-board/internal/core/datamodel/application"
)

// ApplicationRepository implements application.Repository using GORM. The DB
// is expected to be opened with TranslateError so unique violations surface
// as gorm.ErrDuplicatedKey regardless of driver.
type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) application.Repository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(app *application.Application) error {
	model := application.ToDataModel(app)
	if err := r.db.Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Two concurrent applies both passed the fast-path check; the
			// composite unique index is the authoritative guard.
			return internal.ErrDuplicateApplication
		}
		return err
	}
	app.ID = model.ID
	return nil
}

func (r *ApplicationRepository) Exists(jobID, applicantID int64) (bool, error) {
	var count int64
	err := r.db.Model(&applicationDatamodel.Application{}).
		Where("job_id = ? AND applicant_id = ?", jobID, applicantID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ApplicationRepository) ListByJob(jobID int64) ([]*application.Application, error) {
	var models []*applicationDatamodel.Application
	err := r.db.Where("job_id = ?", jobID).
		Order("applied_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return application.FromDataModelSlice(models), nil
}

func (r *ApplicationRepository) ListByCompany(companyUserID int64) ([]application.CompanyApplication, error) {
	rows, err := r.db.
		Table("job_applications").
		Select("job_applications.id, job_applications.job_id, job_applications.applicant_id, "+
			"job_applications.resume_handle, job_applications.resume_filename, job_applications.applied_at, "+
			"job_postings.title AS job_title, job_postings.domain AS job_domain").
		Joins("JOIN job_postings ON job_postings.id = job_applications.job_id").
		Where("job_postings.company_user_id = ?", companyUserID).
		Order("job_postings.domain ASC, job_applications.applied_at ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []application.CompanyApplication
	for rows.Next() {
		var ca application.CompanyApplication
		if err := rows.Scan(&ca.ID, &ca.JobID, &ca.ApplicantID,
			&ca.ResumeHandle, &ca.ResumeFileName, &ca.AppliedAt,
			&ca.JobTitle, &ca.JobDomain); err != nil {
			return nil, err
		}
		results = append(results, ca)
	}
	return results, rows.Err()
}
