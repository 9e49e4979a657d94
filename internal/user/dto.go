package user

import (
	"github.com/frahmantamala/job-board/internal/core/common/validation"
)

type SignupDTO struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d *SignupDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("username", d.Username).Required().MinLength(3).MaxLength(150)
	v.Field("email", d.Email).Required().Email()
	v.Field("password", d.Password).Required().MinLength(8).MaxLength(128)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// CompanySignupDTO registers a company account together with its profile; a
// company without a name cannot publish postings.
type CompanySignupDTO struct {
	SignupDTO
	CompanyName string `json:"company_name"`
}

func (d *CompanySignupDTO) Validate() error {
	if err := d.SignupDTO.Validate(); err != nil {
		return err
	}
	v := validation.NewValidator()
	v.Field("company_name", d.CompanyName).Required().MaxLength(255)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// AddHRDTO creates an HR account under the calling company.
type AddHRDTO struct {
	SignupDTO
	HRDepartment string `json:"hr_department"`
}

func (d *AddHRDTO) Validate() error {
	if err := d.SignupDTO.Validate(); err != nil {
		return err
	}
	v := validation.NewValidator()
	v.Field("hr_department", d.HRDepartment).MaxLength(255)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
