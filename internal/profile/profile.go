package profile

import (
	"strings"
	"time"

	profileDatamodel "github.com/frahmantamala/job-board/internal/core/datamodel/profile"
)

// EmployeeProfile is the candidate-facing profile. The resume reference here
// is the live one; applications copy it at submission time.
type EmployeeProfile struct {
	UserID         int64      `json:"user_id"`
	Bio            string     `json:"bio,omitempty"`
	Location       string     `json:"location,omitempty"`
	Birthdate      *time.Time `json:"birthdate,omitempty"`
	Skills         string     `json:"skills,omitempty"`
	PictureHandle  string     `json:"picture_handle,omitempty"`
	ResumeHandle   string     `json:"resume_handle,omitempty"`
	ResumeFileName string     `json:"resume_filename,omitempty"`
}

// SkillsList splits the comma-separated skills field, trimming whitespace and
// dropping empty entries.
func (p *EmployeeProfile) SkillsList() []string {
	if p.Skills == "" {
		return nil
	}
	parts := strings.Split(p.Skills, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

type CompanyProfile struct {
	UserID      int64  `json:"user_id"`
	CompanyName string `json:"company_name"`
	Industry    string `json:"industry,omitempty"`
	Website     string `json:"website,omitempty"`
	About       string `json:"about,omitempty"`
	LogoHandle  string `json:"logo_handle,omitempty"`
}

// HRProfile always carries the company link it was created with; an HR
// account never changes companies.
type HRProfile struct {
	UserID           int64  `json:"user_id"`
	Bio              string `json:"bio,omitempty"`
	HRDepartment     string `json:"hr_department,omitempty"`
	PictureHandle    string `json:"picture_handle,omitempty"`
	CompanyProfileID int64  `json:"company_profile_id"`
}

func EmployeeFromDataModel(m *profileDatamodel.EmployeeProfile) *EmployeeProfile {
	return &EmployeeProfile{
		UserID:         m.UserID,
		Bio:            m.Bio,
		Location:       m.Location,
		Birthdate:      m.Birthdate,
		Skills:         m.Skills,
		PictureHandle:  m.PictureHandle,
		ResumeHandle:   m.ResumeHandle,
		ResumeFileName: m.ResumeFileName,
	}
}

func CompanyFromDataModel(m *profileDatamodel.CompanyProfile) *CompanyProfile {
	return &CompanyProfile{
		UserID:      m.UserID,
		CompanyName: m.CompanyName,
		Industry:    m.Industry,
		Website:     m.Website,
		About:       m.About,
		LogoHandle:  m.LogoHandle,
	}
}

func HRFromDataModel(m *profileDatamodel.HRProfile) *HRProfile {
	return &HRProfile{
		UserID:           m.UserID,
		Bio:              m.Bio,
		HRDepartment:     m.HRDepartment,
		PictureHandle:    m.PictureHandle,
		CompanyProfileID: m.CompanyProfileID,
	}
}
