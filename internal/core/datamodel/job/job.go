package job

import "time"

type Posting struct {
	ID              int64      `gorm:"primaryKey"`
	CompanyUserID   int64      `gorm:"column:company_user_id;index;not null"`
	Title           string     `gorm:"column:title;not null"`
	Description     string     `gorm:"column:description;not null"`
	Domain          string     `gorm:"column:domain"`
	JobType         string     `gorm:"column:job_type"`
	ExperienceLevel string     `gorm:"column:experience_level"`
	Location        string     `gorm:"column:location"`
	Deadline        *time.Time `gorm:"column:deadline;type:date"`
	IsActive        bool       `gorm:"column:is_active;default:true"`
	CreatedAt       time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;default:now()"`
}

func (Posting) TableName() string {
	return "job_postings"
}
