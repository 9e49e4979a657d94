package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/frahmantamala/job-board/internal"
	"github.com/frahmantamala/job-board/internal/application"
)

func TestApplicationRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ApplicationRepository Suite")
}

// SQLite shadow models: same tables and indexes, no postgres-only defaults.

type SQLiteApplication struct {
	ID             int64     `gorm:"primaryKey"`
	JobID          int64     `gorm:"column:job_id;not null;uniqueIndex:idx_job_applicant"`
	ApplicantID    int64     `gorm:"column:applicant_id;not null;uniqueIndex:idx_job_applicant"`
	ResumeHandle   string    `gorm:"column:resume_handle;not null"`
	ResumeFileName string    `gorm:"column:resume_filename"`
	AppliedAt      time.Time `gorm:"column:applied_at"`
}

func (SQLiteApplication) TableName() string {
	return "job_applications"
}

type SQLiteJobPosting struct {
	ID            int64      `gorm:"primaryKey"`
	CompanyUserID int64      `gorm:"column:company_user_id;not null"`
	Title         string     `gorm:"column:title;not null"`
	Description   string     `gorm:"column:description"`
	Domain        string     `gorm:"column:domain"`
	Deadline      *time.Time `gorm:"column:deadline"`
	IsActive      bool       `gorm:"column:is_active"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (SQLiteJobPosting) TableName() string {
	return "job_postings"
}

var _ = Describe("ApplicationRepository", func() {
	var (
		db   *gorm.DB
		repo application.Repository
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteApplication{}, &SQLiteJobPosting{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewApplicationRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	newApplication := func(jobID, applicantID int64, appliedAt time.Time) *application.Application {
		return &application.Application{
			JobID:        jobID,
			ApplicantID:  applicantID,
			ResumeHandle: "resumes/applicant.pdf",
			AppliedAt:    appliedAt,
		}
	}

	Describe("Create", func() {
		It("should create an application", func() {
			app := newApplication(1, 42, time.Now())

			Expect(repo.Create(app)).To(Succeed())
			Expect(app.ID).To(BeNumerically(">", 0))
		})

		It("should reject a second application for the same job and applicant", func() {
			Expect(repo.Create(newApplication(1, 42, time.Now()))).To(Succeed())

			err := repo.Create(newApplication(1, 42, time.Now()))
			Expect(err).To(Equal(internal.ErrDuplicateApplication))
		})

		It("should allow the same applicant on different jobs", func() {
			Expect(repo.Create(newApplication(1, 42, time.Now()))).To(Succeed())
			Expect(repo.Create(newApplication(2, 42, time.Now()))).To(Succeed())
		})

		It("should allow different applicants on the same job", func() {
			Expect(repo.Create(newApplication(1, 42, time.Now()))).To(Succeed())
			Expect(repo.Create(newApplication(1, 43, time.Now()))).To(Succeed())
		})
	})

	Describe("Exists", func() {
		It("should report a stored pair", func() {
			Expect(repo.Create(newApplication(1, 42, time.Now()))).To(Succeed())

			exists, err := repo.Exists(1, 42)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())
		})

		It("should report an absent pair", func() {
			exists, err := repo.Exists(1, 42)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})
	})

	Describe("ListByJob", func() {
		It("should return applicants in submission order", func() {
			base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
			Expect(repo.Create(newApplication(1, 43, base.Add(2*time.Hour)))).To(Succeed())
			Expect(repo.Create(newApplication(1, 42, base))).To(Succeed())
			Expect(repo.Create(newApplication(2, 44, base.Add(time.Hour)))).To(Succeed())

			apps, err := repo.ListByJob(1)

			Expect(err).NotTo(HaveOccurred())
			Expect(apps).To(HaveLen(2))
			Expect(apps[0].ApplicantID).To(Equal(int64(42)))
			Expect(apps[1].ApplicantID).To(Equal(int64(43)))
		})
	})

	Describe("ListByCompany", func() {
		BeforeEach(func() {
			postings := []SQLiteJobPosting{
				{ID: 1, CompanyUserID: 7, Title: "Backend Engineer", Domain: "engineering", IsActive: true},
				{ID: 2, CompanyUserID: 7, Title: "Data Analyst", Domain: "data", IsActive: true},
				{ID: 3, CompanyUserID: 99, Title: "Other Co Role", Domain: "engineering", IsActive: true},
			}
			Expect(db.Create(&postings).Error).To(Succeed())

			Expect(repo.Create(newApplication(1, 42, time.Now()))).To(Succeed())
			Expect(repo.Create(newApplication(2, 42, time.Now()))).To(Succeed())
			Expect(repo.Create(newApplication(3, 42, time.Now()))).To(Succeed())
		})

		It("should join postings and scope to the owning company", func() {
			apps, err := repo.ListByCompany(7)

			Expect(err).NotTo(HaveOccurred())
			Expect(apps).To(HaveLen(2))

			titles := []string{apps[0].JobTitle, apps[1].JobTitle}
			Expect(titles).To(ContainElements("Backend Engineer", "Data Analyst"))
			for _, app := range apps {
				Expect(app.JobDomain).NotTo(BeEmpty())
			}
		})

		It("should return nothing for a company with no postings", func() {
			apps, err := repo.ListByCompany(1234)
			Expect(err).NotTo(HaveOccurred())
			Expect(apps).To(BeEmpty())
		})
	})
})
