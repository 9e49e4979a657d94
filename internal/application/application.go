package application

import (
	"time"

	applicationDatamodel "github.com/frahmantamala/job-board/internal/core/datamodel/application"
)

// Application is a terminal record: once an employee applies to a job, the
// row is never updated and there is no withdrawal operation. The resume
// reference is a snapshot taken at submission time.
type Application struct {
	ID             int64     `json:"id"`
	JobID          int64     `json:"job_id"`
	ApplicantID    int64     `json:"applicant_id"`
	ResumeHandle   string    `json:"resume_handle"`
	ResumeFileName string    `json:"resume_filename,omitempty"`
	AppliedAt      time.Time `json:"applied_at"`
}

// CompanyApplication is an application joined with the posting it targets,
// used for the company review listing.
type CompanyApplication struct {
	Application
	JobTitle  string `json:"job_title"`
	JobDomain string `json:"job_domain,omitempty"`
}

// DomainGroup buckets a company's incoming applications by the posting's
// declared domain. Postings without a domain form their own bucket.
type DomainGroup struct {
	Domain       string               `json:"domain"`
	Applications []CompanyApplication `json:"applications"`
}

const UncategorizedDomain = "uncategorized"

func ToDataModel(a *Application) *applicationDatamodel.Application {
	return &applicationDatamodel.Application{
		ID:             a.ID,
		JobID:          a.JobID,
		ApplicantID:    a.ApplicantID,
		ResumeHandle:   a.ResumeHandle,
		ResumeFileName: a.ResumeFileName,
		AppliedAt:      a.AppliedAt,
	}
}

func FromDataModel(a *applicationDatamodel.Application) *Application {
	return &Application{
		ID:             a.ID,
		JobID:          a.JobID,
		ApplicantID:    a.ApplicantID,
		ResumeHandle:   a.ResumeHandle,
		ResumeFileName: a.ResumeFileName,
		AppliedAt:      a.AppliedAt,
	}
}

func FromDataModelSlice(models []*applicationDatamodel.Application) []*Application {
	result := make([]*Application, len(models))
	for i, m := range models {
		result[i] = FromDataModel(m)
	}
	return result
}

// GroupByDomain preserves first-seen order of domains so review pages are
// stable across reloads.
func GroupByDomain(apps []CompanyApplication) []DomainGroup {
	index := make(map[string]int)
	var groups []DomainGroup

	for _, app := range apps {
		domain := app.JobDomain
		if domain == "" {
			domain = UncategorizedDomain
		}
		i, ok := index[domain]
		if !ok {
			i = len(groups)
			index[domain] = i
			groups = append(groups, DomainGroup{Domain: domain})
		}
		groups[i].Applications = append(groups[i].Applications, app)
	}

	return groups
}
