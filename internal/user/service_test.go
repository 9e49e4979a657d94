package user_test

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/job-board/internal"
	userDatamodel "github.com/frahmantamala/job-board/internal/core/datamodel/user"
	"github.com/frahmantamala/job-board/internal/user"
)

func TestUserService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "UserService Suite")
}

type mockUserRepository struct {
	users             map[int64]*user.User
	companyProfiles   map[int64]int64 // company user id -> company profile id
	hrLinks           map[int64]int64 // hr user id -> company profile id
	nextID            int64
	createError       error
	hrTransactionFail bool
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:           make(map[int64]*user.User),
		companyProfiles: make(map[int64]int64),
		hrLinks:         make(map[int64]int64),
		nextID:          1,
	}
}

func (m *mockUserRepository) Create(u *user.User, passwordHash string) error {
	if m.createError != nil {
		return m.createError
	}
	u.ID = m.nextID
	m.nextID++
	copied := *u
	m.users[u.ID] = &copied
	return nil
}

func (m *mockUserRepository) CreateCompanyWithProfile(u *user.User, passwordHash, companyName string) error {
	if err := m.Create(u, passwordHash); err != nil {
		return err
	}
	m.companyProfiles[u.ID] = u.ID + 1000
	return nil
}

func (m *mockUserRepository) CreateHRWithProfile(u *user.User, passwordHash string, companyProfileID int64, department string) error {
	if m.hrTransactionFail {
		return internal.NewInternalError("insert failed", nil)
	}
	if err := m.Create(u, passwordHash); err != nil {
		return err
	}
	m.hrLinks[u.ID] = companyProfileID
	return nil
}

func (m *mockUserRepository) GetByID(id int64) (*user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepository) UsernameExists(username string) (bool, error) {
	for _, u := range m.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepository) EmailExists(email string) (bool, error) {
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepository) GetCompanyProfileID(companyUserID int64) (int64, error) {
	id, ok := m.companyProfiles[companyUserID]
	if !ok {
		return 0, internal.ErrProfileNotFound
	}
	return id, nil
}

type mockHasher struct{}

func (mockHasher) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

var _ = Describe("UserService", func() {
	var (
		service *user.Service
		repo    *mockUserRepository
	)

	BeforeEach(func() {
		repo = newMockUserRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = user.NewService(repo, mockHasher{}, logger)
	})

	Describe("SignupEmployee", func() {
		It("should create an employee account", func() {
			u, err := service.SignupEmployee(user.SignupDTO{
				Username: "jane", Email: "jane@mail.example", Password: "s3cret-enough",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(u.ID).To(BeNumerically(">", 0))
			Expect(u.Role).To(Equal(userDatamodel.RoleEmployee))
		})

		It("should reject a taken username", func() {
			_, err := service.SignupEmployee(user.SignupDTO{
				Username: "jane", Email: "jane@mail.example", Password: "s3cret-enough",
			})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.SignupEmployee(user.SignupDTO{
				Username: "jane", Email: "other@mail.example", Password: "s3cret-enough",
			})
			Expect(err).To(Equal(internal.ErrUsernameTaken))
		})

		It("should reject a taken email", func() {
			_, err := service.SignupEmployee(user.SignupDTO{
				Username: "jane", Email: "jane@mail.example", Password: "s3cret-enough",
			})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.SignupEmployee(user.SignupDTO{
				Username: "janet", Email: "jane@mail.example", Password: "s3cret-enough",
			})
			Expect(err).To(Equal(internal.ErrEmailTaken))
		})

		It("should reject a short password", func() {
			_, err := service.SignupEmployee(user.SignupDTO{
				Username: "jane", Email: "jane@mail.example", Password: "short",
			})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("SignupCompany", func() {
		It("should create the account together with its profile", func() {
			u, err := service.SignupCompany(user.CompanySignupDTO{
				SignupDTO:   user.SignupDTO{Username: "acme", Email: "jobs@acme.example", Password: "s3cret-enough"},
				CompanyName: "Acme Corp",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(u.Role).To(Equal(userDatamodel.RoleCompany))
			Expect(repo.companyProfiles).To(HaveKey(u.ID))
		})

		It("should require a company name", func() {
			_, err := service.SignupCompany(user.CompanySignupDTO{
				SignupDTO: user.SignupDTO{Username: "acme", Email: "jobs@acme.example", Password: "s3cret-enough"},
			})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("CreateHR", func() {
		var companyID int64

		BeforeEach(func() {
			u, err := service.SignupCompany(user.CompanySignupDTO{
				SignupDTO:   user.SignupDTO{Username: "acme", Email: "jobs@acme.example", Password: "s3cret-enough"},
				CompanyName: "Acme Corp",
			})
			Expect(err).ToNot(HaveOccurred())
			companyID = u.ID
		})

		It("should create an HR account linked to the calling company", func() {
			u, err := service.CreateHR(companyID, user.AddHRDTO{
				SignupDTO:    user.SignupDTO{Username: "hr1", Email: "hr1@acme.example", Password: "s3cret-enough"},
				HRDepartment: "recruiting",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(u.Role).To(Equal(userDatamodel.RoleHR))
			Expect(repo.hrLinks[u.ID]).To(Equal(repo.companyProfiles[companyID]))
		})

		It("should refuse when the company has no profile", func() {
			_, err := service.CreateHR(999, user.AddHRDTO{
				SignupDTO: user.SignupDTO{Username: "hr1", Email: "hr1@acme.example", Password: "s3cret-enough"},
			})
			Expect(err).To(Equal(internal.ErrProfileNotFound))
		})

		It("should not leave a user behind when the transaction fails", func() {
			repo.hrTransactionFail = true

			_, err := service.CreateHR(companyID, user.AddHRDTO{
				SignupDTO: user.SignupDTO{Username: "hr1", Email: "hr1@acme.example", Password: "s3cret-enough"},
			})

			Expect(err).To(HaveOccurred())
			taken, _ := repo.UsernameExists("hr1")
			Expect(taken).To(BeFalse())
		})
	})
})
