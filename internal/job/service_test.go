package job_test

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/job-board/internal"
	"github.com/frahmantamala/job-board/internal/core/events"
	"github.com/frahmantamala/job-board/internal/job"
)

func TestJobService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "JobService Suite")
}

type mockJobRepository struct {
	postings    map[int64]*job.Posting
	nextID      int64
	createError error
	expireError error
}

func newMockJobRepository() *mockJobRepository {
	return &mockJobRepository{
		postings: make(map[int64]*job.Posting),
		nextID:   1,
	}
}

func (m *mockJobRepository) Create(posting *job.Posting) error {
	if m.createError != nil {
		return m.createError
	}
	posting.ID = m.nextID
	m.nextID++
	copied := *posting
	m.postings[posting.ID] = &copied
	return nil
}

func (m *mockJobRepository) GetByIDForCompany(id, companyUserID int64) (*job.Posting, error) {
	p, ok := m.postings[id]
	if !ok || p.CompanyUserID != companyUserID {
		return nil, internal.ErrJobNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *mockJobRepository) GetActiveByID(id int64) (*job.Posting, error) {
	p, ok := m.postings[id]
	if !ok || !p.IsActive {
		return nil, internal.ErrJobNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *mockJobRepository) Update(posting *job.Posting) error {
	copied := *posting
	m.postings[posting.ID] = &copied
	return nil
}

func (m *mockJobRepository) DeleteByIDForCompany(id, companyUserID int64) error {
	p, ok := m.postings[id]
	if !ok || p.CompanyUserID != companyUserID {
		return internal.ErrJobNotFound
	}
	delete(m.postings, id)
	return nil
}

func (m *mockJobRepository) DeleteByID(id int64) error {
	if _, ok := m.postings[id]; !ok {
		return internal.ErrJobNotFound
	}
	delete(m.postings, id)
	return nil
}

func (m *mockJobRepository) ListByCompany(companyUserID int64) ([]*job.Posting, error) {
	var result []*job.Posting
	for _, p := range m.postings {
		if p.CompanyUserID == companyUserID {
			copied := *p
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *mockJobRepository) ListActive(filters job.BrowseFilters) ([]*job.Posting, error) {
	var result []*job.Posting
	for _, p := range m.postings {
		if !p.IsActive {
			continue
		}
		if filters.Query != "" &&
			!strings.Contains(p.Title, filters.Query) &&
			!strings.Contains(p.Description, filters.Query) {
			continue
		}
		if filters.JobType != "" && p.JobType != filters.JobType {
			continue
		}
		if filters.ExperienceLevel != "" && p.ExperienceLevel != filters.ExperienceLevel {
			continue
		}
		copied := *p
		result = append(result, &copied)
	}
	return result, nil
}

func (m *mockJobRepository) ListAll(query string, includeInactive bool) ([]*job.Posting, error) {
	var result []*job.Posting
	for _, p := range m.postings {
		if !includeInactive && !p.IsActive {
			continue
		}
		copied := *p
		result = append(result, &copied)
	}
	return result, nil
}

func (m *mockJobRepository) ExpireOverdue(today time.Time) ([]int64, error) {
	if m.expireError != nil {
		return nil, m.expireError
	}
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	var ids []int64
	for id, p := range m.postings {
		if p.IsActive && p.Deadline != nil && p.Deadline.Before(day) {
			p.IsActive = false
			ids = append(ids, id)
		}
	}
	return ids, nil
}

var _ = Describe("JobService", func() {
	var (
		service *job.Service
		repo    *mockJobRepository
		logger  *slog.Logger
		now     time.Time
	)

	strPtr := func(s string) *string { return &s }
	datePtr := func(t time.Time) *time.Time { return &t }

	BeforeEach(func() {
		repo = newMockJobRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		now = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
		service = job.NewService(repo, events.NewEventBus(logger), logger).
			WithClock(func() time.Time { return now })
	})

	Describe("CreateJob", func() {
		It("should create an active posting", func() {
			deadline := now.AddDate(0, 0, 14)
			posting, err := service.CreateJob(7, job.CreateJobDTO{
				Title:           "Backend Engineer",
				Description:     "Build services",
				JobType:         job.JobTypeFullTime,
				ExperienceLevel: job.ExperienceMid,
				Deadline:        &deadline,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(posting.ID).To(BeNumerically(">", 0))
			Expect(posting.CompanyUserID).To(Equal(int64(7)))
			Expect(posting.IsActive).To(BeTrue())
		})

		It("should reject a missing title", func() {
			_, err := service.CreateJob(7, job.CreateJobDTO{Description: "no title"})
			Expect(err).To(HaveOccurred())
		})

		It("should reject an unknown job type", func() {
			_, err := service.CreateJob(7, job.CreateJobDTO{
				Title:       "Backend Engineer",
				Description: "Build services",
				JobType:     "weekend_only",
			})
			Expect(err).To(HaveOccurred())
		})

		It("should accept a deadline already in the past and let the sweep expire it", func() {
			deadline := now.AddDate(0, 0, -1)
			posting, err := service.CreateJob(7, job.CreateJobDTO{
				Title:       "Backend Engineer",
				Description: "Build services",
				Deadline:    &deadline,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(posting.IsActive).To(BeTrue())

			postings, err := service.ListCompanyJobs(7)
			Expect(err).ToNot(HaveOccurred())
			Expect(postings).To(HaveLen(1))
			Expect(postings[0].IsActive).To(BeFalse())
		})
	})

	Describe("lifecycle sweep", func() {
		var overdueID, dueTodayID, noDeadlineID int64

		BeforeEach(func() {
			overdue := &job.Posting{CompanyUserID: 7, Title: "Overdue", IsActive: true,
				Deadline: datePtr(now.AddDate(0, 0, -1).Truncate(24 * time.Hour))}
			Expect(repo.Create(overdue)).To(Succeed())
			overdueID = overdue.ID

			dueToday := &job.Posting{CompanyUserID: 7, Title: "Due today", IsActive: true,
				Deadline: datePtr(now.Truncate(24 * time.Hour))}
			Expect(repo.Create(dueToday)).To(Succeed())
			dueTodayID = dueToday.ID

			noDeadline := &job.Posting{CompanyUserID: 7, Title: "Open ended", IsActive: true}
			Expect(repo.Create(noDeadline)).To(Succeed())
			noDeadlineID = noDeadline.ID
		})

		It("should expire only postings whose deadline passed before today", func() {
			count := service.SweepExpired(context.Background())

			Expect(count).To(Equal(1))
			Expect(repo.postings[overdueID].IsActive).To(BeFalse())
			Expect(repo.postings[dueTodayID].IsActive).To(BeTrue())
			Expect(repo.postings[noDeadlineID].IsActive).To(BeTrue())
		})

		It("should be idempotent", func() {
			Expect(service.SweepExpired(context.Background())).To(Equal(1))
			Expect(service.SweepExpired(context.Background())).To(Equal(0))
		})

		It("should run before the public browse listing", func() {
			postings, err := service.BrowseJobs(job.BrowseFilters{})

			Expect(err).ToNot(HaveOccurred())
			titles := make([]string, len(postings))
			for i, p := range postings {
				titles[i] = p.Title
			}
			Expect(titles).ToNot(ContainElement("Overdue"))
			Expect(titles).To(ContainElement("Due today"))
			Expect(titles).To(ContainElement("Open ended"))
		})

		It("should keep expired postings visible in the company listing", func() {
			postings, err := service.ListCompanyJobs(7)

			Expect(err).ToNot(HaveOccurred())
			Expect(postings).To(HaveLen(3))
			for _, p := range postings {
				if p.ID == overdueID {
					Expect(p.IsActive).To(BeFalse())
				}
			}
		})

		It("should not fail the read when the sweep errors", func() {
			repo.expireError = internal.NewInternalError("db down", nil)

			postings, err := service.BrowseJobs(job.BrowseFilters{})
			Expect(err).ToNot(HaveOccurred())
			Expect(postings).ToNot(BeEmpty())
		})
	})

	Describe("ownership", func() {
		var posting *job.Posting

		BeforeEach(func() {
			var err error
			posting, err = service.CreateJob(7, job.CreateJobDTO{
				Title:       "Backend Engineer",
				Description: "Build services",
			})
			Expect(err).ToNot(HaveOccurred())
		})

		It("should return not-found for another company's posting", func() {
			_, err := service.GetCompanyJob(posting.ID, 99)
			Expect(err).To(Equal(internal.ErrJobNotFound))
		})

		It("should refuse updates from a non-owner", func() {
			_, err := service.UpdateJob(posting.ID, 99, job.UpdateJobDTO{Title: strPtr("Hijacked")})
			Expect(err).To(Equal(internal.ErrJobNotFound))
			Expect(repo.postings[posting.ID].Title).To(Equal("Backend Engineer"))
		})

		It("should refuse deletes from a non-owner", func() {
			Expect(service.DeleteJob(posting.ID, 99)).To(Equal(internal.ErrJobNotFound))
			Expect(repo.postings).To(HaveKey(posting.ID))
		})

		It("should let the owner update selected fields only", func() {
			updated, err := service.UpdateJob(posting.ID, 7, job.UpdateJobDTO{
				Location: strPtr("Remote"),
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Location).To(Equal("Remote"))
			Expect(updated.Title).To(Equal("Backend Engineer"))
		})
	})

	Describe("BrowseJobs filters", func() {
		BeforeEach(func() {
			for _, p := range []*job.Posting{
				{CompanyUserID: 7, Title: "Go Backend", Description: "services", JobType: job.JobTypeFullTime, ExperienceLevel: job.ExperienceMid, IsActive: true},
				{CompanyUserID: 7, Title: "Frontend Intern", Description: "react", JobType: job.JobTypeInternship, ExperienceLevel: job.ExperienceEntry, IsActive: true},
			} {
				Expect(repo.Create(p)).To(Succeed())
			}
		})

		It("should match free text against title and description", func() {
			postings, err := service.BrowseJobs(job.BrowseFilters{Query: "react"})
			Expect(err).ToNot(HaveOccurred())
			Expect(postings).To(HaveLen(1))
			Expect(postings[0].Title).To(Equal("Frontend Intern"))
		})

		It("should filter by job type", func() {
			postings, err := service.BrowseJobs(job.BrowseFilters{JobType: job.JobTypeFullTime})
			Expect(err).ToNot(HaveOccurred())
			Expect(postings).To(HaveLen(1))
			Expect(postings[0].Title).To(Equal("Go Backend"))
		})
	})
})
