package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/frahmantamala/job-board/internal"
	"github.com/frahmantamala/job-board/internal/job"
)

func TestJobRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "JobRepository Suite")
}

type SQLiteJobPosting struct {
	ID              int64      `gorm:"primaryKey"`
	CompanyUserID   int64      `gorm:"column:company_user_id;index;not null"`
	Title           string     `gorm:"column:title;not null"`
	Description     string     `gorm:"column:description"`
	Domain          string     `gorm:"column:domain"`
	JobType         string     `gorm:"column:job_type"`
	ExperienceLevel string     `gorm:"column:experience_level"`
	Location        string     `gorm:"column:location"`
	Deadline        *time.Time `gorm:"column:deadline"`
	IsActive        bool       `gorm:"column:is_active"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (SQLiteJobPosting) TableName() string {
	return "job_postings"
}

type SQLiteApplication struct {
	ID           int64     `gorm:"primaryKey"`
	JobID        int64     `gorm:"column:job_id;not null;uniqueIndex:idx_job_applicant"`
	ApplicantID  int64     `gorm:"column:applicant_id;not null;uniqueIndex:idx_job_applicant"`
	ResumeHandle string    `gorm:"column:resume_handle"`
	AppliedAt    time.Time `gorm:"column:applied_at"`
}

func (SQLiteApplication) TableName() string {
	return "job_applications"
}

var _ = Describe("JobRepository", func() {
	var (
		db   *gorm.DB
		repo job.Repository
		now  time.Time
	)

	datePtr := func(t time.Time) *time.Time { return &t }

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteJobPosting{}, &SQLiteApplication{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewJobRepository(db)
		now = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	createPosting := func(companyID int64, title string, active bool, deadline *time.Time) *job.Posting {
		p := &job.Posting{
			CompanyUserID: companyID,
			Title:         title,
			Description:   "role description",
			IsActive:      active,
			Deadline:      deadline,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		Expect(repo.Create(p)).To(Succeed())
		return p
	}

	Describe("ownership scoping", func() {
		It("should fetch an owned posting", func() {
			p := createPosting(7, "Backend Engineer", true, nil)

			found, err := repo.GetByIDForCompany(p.ID, 7)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Title).To(Equal("Backend Engineer"))
		})

		It("should answer not-found for another company's posting", func() {
			p := createPosting(7, "Backend Engineer", true, nil)

			_, err := repo.GetByIDForCompany(p.ID, 99)
			Expect(err).To(Equal(internal.ErrJobNotFound))
		})

		It("should answer not-found for a missing id", func() {
			_, err := repo.GetByIDForCompany(12345, 7)
			Expect(err).To(Equal(internal.ErrJobNotFound))
		})
	})

	Describe("GetActiveByID", func() {
		It("should not return an inactive posting", func() {
			p := createPosting(7, "Expired Role", false, nil)

			_, err := repo.GetActiveByID(p.ID)
			Expect(err).To(Equal(internal.ErrJobNotFound))
		})
	})

	Describe("ExpireOverdue", func() {
		It("should expire postings with a deadline before today", func() {
			overdue := createPosting(7, "Overdue", true,
				datePtr(now.AddDate(0, 0, -1).Truncate(24*time.Hour)))
			dueToday := createPosting(7, "Due today", true,
				datePtr(now.Truncate(24*time.Hour)))
			open := createPosting(7, "Open ended", true, nil)

			ids, err := repo.ExpireOverdue(now)

			Expect(err).NotTo(HaveOccurred())
			Expect(ids).To(ConsistOf(overdue.ID))

			var count int64
			db.Model(&SQLiteJobPosting{}).Where("is_active = ?", true).Count(&count)
			Expect(count).To(Equal(int64(2)))

			_, err = repo.GetActiveByID(dueToday.ID)
			Expect(err).NotTo(HaveOccurred())
			_, err = repo.GetActiveByID(open.ID)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should not report already-inactive postings", func() {
			createPosting(7, "Long gone", false,
				datePtr(now.AddDate(0, 0, -30).Truncate(24*time.Hour)))

			ids, err := repo.ExpireOverdue(now)
			Expect(err).NotTo(HaveOccurred())
			Expect(ids).To(BeEmpty())
		})

		It("should derive the day boundary from the clock's zone", func() {
			zone := time.FixedZone("UTC-10", -10*60*60)
			localNow := time.Date(2025, 6, 14, 20, 0, 0, 0, zone)
			dueToday := createPosting(7, "Due today local", true,
				datePtr(time.Date(2025, 6, 14, 0, 0, 0, 0, zone)))

			ids, err := repo.ExpireOverdue(localNow)

			Expect(err).NotTo(HaveOccurred())
			Expect(ids).To(BeEmpty())
			_, err = repo.GetActiveByID(dueToday.ID)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should be idempotent across runs", func() {
			createPosting(7, "Overdue", true,
				datePtr(now.AddDate(0, 0, -1).Truncate(24*time.Hour)))

			first, err := repo.ExpireOverdue(now)
			Expect(err).NotTo(HaveOccurred())
			Expect(first).To(HaveLen(1))

			second, err := repo.ExpireOverdue(now)
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(BeEmpty())
		})
	})

	Describe("delete", func() {
		It("should remove the posting and its applications", func() {
			p := createPosting(7, "Backend Engineer", true, nil)
			apps := []SQLiteApplication{
				{JobID: p.ID, ApplicantID: 42, AppliedAt: now},
				{JobID: p.ID, ApplicantID: 43, AppliedAt: now},
			}
			Expect(db.Create(&apps).Error).To(Succeed())

			Expect(repo.DeleteByIDForCompany(p.ID, 7)).To(Succeed())

			var count int64
			db.Model(&SQLiteApplication{}).Where("job_id = ?", p.ID).Count(&count)
			Expect(count).To(Equal(int64(0)))
		})

		It("should refuse a delete by a non-owner and keep everything", func() {
			p := createPosting(7, "Backend Engineer", true, nil)
			Expect(db.Create(&SQLiteApplication{JobID: p.ID, ApplicantID: 42, AppliedAt: now}).Error).To(Succeed())

			err := repo.DeleteByIDForCompany(p.ID, 99)
			Expect(err).To(Equal(internal.ErrJobNotFound))

			var count int64
			db.Model(&SQLiteApplication{}).Where("job_id = ?", p.ID).Count(&count)
			Expect(count).To(Equal(int64(1)))
		})

		It("should let an unscoped delete remove any posting", func() {
			p := createPosting(7, "Backend Engineer", true, nil)
			Expect(repo.DeleteByID(p.ID)).To(Succeed())

			_, err := repo.GetByIDForCompany(p.ID, 7)
			Expect(err).To(Equal(internal.ErrJobNotFound))
		})
	})

	Describe("ListActive", func() {
		BeforeEach(func() {
			createPosting(7, "Go Backend Engineer", true, nil)
			createPosting(7, "Frontend Developer", true, nil)
			createPosting(7, "Retired Role", false, nil)
		})

		It("should return active postings only", func() {
			postings, err := repo.ListActive(job.BrowseFilters{})
			Expect(err).NotTo(HaveOccurred())
			Expect(postings).To(HaveLen(2))
		})

		It("should match free text against the title", func() {
			postings, err := repo.ListActive(job.BrowseFilters{Query: "Backend"})
			Expect(err).NotTo(HaveOccurred())
			Expect(postings).To(HaveLen(1))
			Expect(postings[0].Title).To(Equal("Go Backend Engineer"))
		})
	})
})
