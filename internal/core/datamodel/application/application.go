package application

import "time"

// Application rows are immutable after creation. The composite unique index on
// (job_id, applicant_id) is the authoritative guard against double applies;
// the service-level check only exists for a friendlier error message.
type Application struct {
	ID             int64     `gorm:"primaryKey"`
	JobID          int64     `gorm:"column:job_id;not null;uniqueIndex:idx_job_applicant"`
	ApplicantID    int64     `gorm:"column:applicant_id;not null;uniqueIndex:idx_job_applicant"`
	ResumeHandle   string    `gorm:"column:resume_handle;not null"`
	ResumeFileName string    `gorm:"column:resume_filename"`
	AppliedAt      time.Time `gorm:"column:applied_at;default:now()"`
}

func (Application) TableName() string {
	return "job_applications"
}
