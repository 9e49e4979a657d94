package profile

import (
	"time"

	"github.com/frahmantamala/job-board/internal"
	"github.com/frahmantamala/job-board/internal/core/common/validation"
)

const birthdateLayout = "2006-01-02"

type UpdateEmployeeProfileDTO struct {
	Bio            *string `json:"bio"`
	Location       *string `json:"location"`
	Birthdate      *string `json:"birthdate"`
	Skills         *string `json:"skills"`
	PictureHandle  *string `json:"picture_handle"`
	ResumeHandle   *string `json:"resume_handle"`
	ResumeFileName *string `json:"resume_filename"`
}

func (d *UpdateEmployeeProfileDTO) Validate() error {
	v := validation.NewValidator()
	if d.Bio != nil {
		v.Field("bio", *d.Bio).MaxLength(2000)
	}
	if d.Location != nil {
		v.Field("location", *d.Location).MaxLength(255)
	}
	if d.Skills != nil {
		v.Field("skills", *d.Skills).MaxLength(1000)
	}
	if d.Birthdate != nil && *d.Birthdate != "" {
		if _, err := time.Parse(birthdateLayout, *d.Birthdate); err != nil {
			return internal.NewValidationError("birthdate must use YYYY-MM-DD format", internal.ErrCodeValidationFailed)
		}
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// ParsedBirthdate returns the parsed birthdate, nil when absent or empty.
// Validate must have been called first.
func (d *UpdateEmployeeProfileDTO) ParsedBirthdate() *time.Time {
	if d.Birthdate == nil || *d.Birthdate == "" {
		return nil
	}
	t, err := time.Parse(birthdateLayout, *d.Birthdate)
	if err != nil {
		return nil
	}
	return &t
}

type UpdateCompanyProfileDTO struct {
	CompanyName *string `json:"company_name"`
	Industry    *string `json:"industry"`
	Website     *string `json:"website"`
	About       *string `json:"about"`
	LogoHandle  *string `json:"logo_handle"`
}

func (d *UpdateCompanyProfileDTO) Validate() error {
	v := validation.NewValidator()
	if d.CompanyName != nil {
		v.Field("company_name", *d.CompanyName).Required().MaxLength(255)
	}
	if d.Website != nil {
		v.Field("website", *d.Website).MaxLength(255)
	}
	if d.About != nil {
		v.Field("about", *d.About).MaxLength(5000)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type UpdateHRProfileDTO struct {
	Bio           *string `json:"bio"`
	HRDepartment  *string `json:"hr_department"`
	PictureHandle *string `json:"picture_handle"`
}

func (d *UpdateHRProfileDTO) Validate() error {
	v := validation.NewValidator()
	if d.Bio != nil {
		v.Field("bio", *d.Bio).MaxLength(2000)
	}
	if d.HRDepartment != nil {
		v.Field("hr_department", *d.HRDepartment).MaxLength(255)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
