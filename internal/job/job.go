package job

import (
	"time"

	jobDatamodel "github.com/frahmantamala/job-board/internal/core/datamodel/job"
)

// Posting lifecycle: ACTIVE -> EXPIRED, one way. The sweep flips is_active
// once the deadline has passed; there is no reactivation path, only deletion.

const (
	JobTypeFullTime   = "full_time"
	JobTypePartTime   = "part_time"
	JobTypeContract   = "contract"
	JobTypeInternship = "internship"

	ExperienceEntry  = "entry"
	ExperienceMid    = "mid"
	ExperienceSenior = "senior"
)

type Posting struct {
	ID              int64      `json:"id"`
	CompanyUserID   int64      `json:"company_user_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Domain          string     `json:"domain,omitempty"`
	JobType         string     `json:"job_type,omitempty"`
	ExperienceLevel string     `json:"experience_level,omitempty"`
	Location        string     `json:"location,omitempty"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	IsActive        bool       `json:"is_active"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// IsExpiredAt reports whether the posting's deadline is strictly before the
// given day. Postings without a deadline never expire.
func (p *Posting) IsExpiredAt(today time.Time) bool {
	if p.Deadline == nil {
		return false
	}
	day := today.Truncate(24 * time.Hour)
	return p.Deadline.Before(day)
}

func ToDataModel(p *Posting) *jobDatamodel.Posting {
	return &jobDatamodel.Posting{
		ID:              p.ID,
		CompanyUserID:   p.CompanyUserID,
		Title:           p.Title,
		Description:     p.Description,
		Domain:          p.Domain,
		JobType:         p.JobType,
		ExperienceLevel: p.ExperienceLevel,
		Location:        p.Location,
		Deadline:        p.Deadline,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func FromDataModel(p *jobDatamodel.Posting) *Posting {
	return &Posting{
		ID:              p.ID,
		CompanyUserID:   p.CompanyUserID,
		Title:           p.Title,
		Description:     p.Description,
		Domain:          p.Domain,
		JobType:         p.JobType,
		ExperienceLevel: p.ExperienceLevel,
		Location:        p.Location,
		Deadline:        p.Deadline,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func FromDataModelSlice(postings []*jobDatamodel.Posting) []*Posting {
	result := make([]*Posting, len(postings))
	for i, p := range postings {
		result[i] = FromDataModel(p)
	}
	return result
}
