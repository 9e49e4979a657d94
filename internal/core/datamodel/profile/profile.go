package profile

import "time"

// One profile row per user, matching the user's role. File blobs (pictures,
// logos, resumes) are referenced by opaque storage handles only.

type EmployeeProfile struct {
	ID             int64      `gorm:"primaryKey"`
	UserID         int64      `gorm:"column:user_id;uniqueIndex;not null"`
	Bio            string     `gorm:"column:bio"`
	Location       string     `gorm:"column:location"`
	Birthdate      *time.Time `gorm:"column:birthdate;type:date"`
	Skills         string     `gorm:"column:skills"`
	PictureHandle  string     `gorm:"column:picture_handle"`
	ResumeHandle   string     `gorm:"column:resume_handle"`
	ResumeFileName string     `gorm:"column:resume_filename"`
	CreatedAt      time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;default:now()"`
}

func (EmployeeProfile) TableName() string {
	return "employee_profiles"
}

type CompanyProfile struct {
	ID          int64     `gorm:"primaryKey"`
	UserID      int64     `gorm:"column:user_id;uniqueIndex;not null"`
	CompanyName string    `gorm:"column:company_name;not null"`
	Industry    string    `gorm:"column:industry"`
	Website     string    `gorm:"column:website"`
	About       string    `gorm:"column:about"`
	LogoHandle  string    `gorm:"column:logo_handle"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time `gorm:"column:updated_at;default:now()"`
}

func (CompanyProfile) TableName() string {
	return "company_profiles"
}

type HRProfile struct {
	ID               int64     `gorm:"primaryKey"`
	UserID           int64     `gorm:"column:user_id;uniqueIndex;not null"`
	Bio              string    `gorm:"column:bio"`
	HRDepartment     string    `gorm:"column:hr_department"`
	PictureHandle    string    `gorm:"column:picture_handle"`
	CompanyProfileID int64     `gorm:"column:company_profile_id;not null"`
	CreatedAt        time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt        time.Time `gorm:"column:updated_at;default:now()"`
}

func (HRProfile) TableName() string {
	return "hr_profiles"
}
