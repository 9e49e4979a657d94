package job

import (
	"time"

	"github.com/frahmantamala/job-board/internal"
	"github.com/frahmantamala/job-board/internal/core/common/validation"
)

type CreateJobDTO struct {
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Domain          string     `json:"domain,omitempty"`
	JobType         string     `json:"job_type,omitempty"`
	ExperienceLevel string     `json:"experience_level,omitempty"`
	Location        string     `json:"location,omitempty"`
	Deadline        *time.Time `json:"deadline,omitempty"`
}

func (dto CreateJobDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("title", dto.Title).Required().MinLength(3).MaxLength(255)
	v.Field("description", dto.Description).Required().MaxLength(10000)
	v.Field("job_type", dto.JobType).
		OneOf(JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship)
	v.Field("experience_level", dto.ExperienceLevel).
		OneOf(ExperienceEntry, ExperienceMid, ExperienceSenior)
	return v.Validate()
}

// UpdateJobDTO uses pointers so absent fields are left untouched.
type UpdateJobDTO struct {
	Title           *string    `json:"title,omitempty"`
	Description     *string    `json:"description,omitempty"`
	Domain          *string    `json:"domain,omitempty"`
	JobType         *string    `json:"job_type,omitempty"`
	ExperienceLevel *string    `json:"experience_level,omitempty"`
	Location        *string    `json:"location,omitempty"`
	Deadline        *time.Time `json:"deadline,omitempty"`
}

func (dto UpdateJobDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	if dto.Title != nil {
		v.Field("title", *dto.Title).Required().MinLength(3).MaxLength(255)
	}
	if dto.Description != nil {
		v.Field("description", *dto.Description).Required().MaxLength(10000)
	}
	if dto.JobType != nil {
		v.Field("job_type", *dto.JobType).
			OneOf(JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship)
	}
	if dto.ExperienceLevel != nil {
		v.Field("experience_level", *dto.ExperienceLevel).
			OneOf(ExperienceEntry, ExperienceMid, ExperienceSenior)
	}
	return v.Validate()
}

// BrowseFilters is the public job search: free-text plus exact facet matches.
type BrowseFilters struct {
	Query           string
	JobType         string
	ExperienceLevel string
}
