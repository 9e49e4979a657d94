package auth_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/job-board/internal"
	"github.com/frahmantamala/job-board/internal/auth"
	userDatamodel "github.com/frahmantamala/job-board/internal/core/datamodel/user"
)

func TestAuth(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Suite")
}

type mockUserRepository struct {
	hashes map[string]string
	users  map[string]*internal.SessionUser
	byID   map[int64]*internal.SessionUser
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		hashes: make(map[string]string),
		users:  make(map[string]*internal.SessionUser),
		byID:   make(map[int64]*internal.SessionUser),
	}
}

func (m *mockUserRepository) addUser(username, password string, user *internal.SessionUser) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	m.hashes[username] = string(hash)
	m.users[username] = user
	m.byID[user.ID] = user
}

func (m *mockUserRepository) GetCredentials(username string) (string, *internal.SessionUser, error) {
	user, ok := m.users[username]
	if !ok {
		return "", nil, internal.ErrUserNotFound
	}
	return m.hashes[username], user, nil
}

func (m *mockUserRepository) GetSessionUser(userID int64) (*internal.SessionUser, error) {
	user, ok := m.byID[userID]
	if !ok {
		return nil, internal.ErrUserNotFound
	}
	return user, nil
}

var _ = Describe("AuthService", func() {
	var (
		service *auth.Service
		repo    *mockUserRepository
	)

	BeforeEach(func() {
		repo = newMockUserRepository()
		tokenGen := auth.NewJWTTokenGenerator(
			"test-access-secret-0123456789abcdef",
			"test-refresh-secret-0123456789abcdef",
			15*time.Minute,
			7*24*time.Hour,
		)
		service = auth.NewService(repo, tokenGen)

		repo.addUser("jane", "correct-horse", &internal.SessionUser{
			ID: 42, Username: "jane", Email: "jane@mail.example", Role: userDatamodel.RoleEmployee,
		})
	})

	Describe("Authenticate", func() {
		It("should issue tokens and the role landing route for valid credentials", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{Username: "jane", Password: "correct-horse"})

			Expect(err).ToNot(HaveOccurred())
			Expect(tokens.AccessToken).ToNot(BeEmpty())
			Expect(tokens.RefreshToken).ToNot(BeEmpty())
			Expect(tokens.RedirectTo).To(Equal("/candidate-home"))
		})

		It("should reject a wrong password", func() {
			_, err := service.Authenticate(auth.LoginDTO{Username: "jane", Password: "wrong"})
			Expect(err).To(Equal(auth.ErrInvalidCredentials))
		})

		It("should reject an unknown username with the same error", func() {
			_, err := service.Authenticate(auth.LoginDTO{Username: "ghost", Password: "whatever"})
			Expect(err).To(Equal(auth.ErrInvalidCredentials))
		})

		It("should reject empty credentials", func() {
			_, err := service.Authenticate(auth.LoginDTO{})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("RedirectForRole", func() {
		It("should map each role to its landing route", func() {
			Expect(auth.RedirectForRole(userDatamodel.RoleEmployee)).To(Equal("/candidate-home"))
			Expect(auth.RedirectForRole(userDatamodel.RoleHR)).To(Equal("/hr-dashboard"))
			Expect(auth.RedirectForRole(userDatamodel.RoleCompany)).To(Equal("/company-dashboard"))
			Expect(auth.RedirectForRole(userDatamodel.RoleAdmin)).To(Equal("/admin-dashboard"))
		})

		It("should fall back to login for an unknown role", func() {
			Expect(auth.RedirectForRole("alien")).To(Equal("/login"))
		})
	})

	Describe("token validation", func() {
		It("should validate an issued access token", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{Username: "jane", Password: "correct-horse"})
			Expect(err).ToNot(HaveOccurred())

			claims, err := service.ValidateAccessToken(tokens.AccessToken)
			Expect(err).ToNot(HaveOccurred())
			Expect(claims.UserID).To(Equal("42"))
			Expect(claims.Role).To(Equal(userDatamodel.RoleEmployee))
		})

		It("should reject garbage tokens", func() {
			_, err := service.ValidateAccessToken("not.a.token")
			Expect(err).To(Equal(auth.ErrInvalidToken))
		})
	})

	Describe("RefreshTokens", func() {
		It("should issue a fresh pair from a valid refresh token", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{Username: "jane", Password: "correct-horse"})
			Expect(err).ToNot(HaveOccurred())

			refreshed, err := service.RefreshTokens(tokens.RefreshToken)
			Expect(err).ToNot(HaveOccurred())
			Expect(refreshed.AccessToken).ToNot(BeEmpty())
			Expect(refreshed.RedirectTo).To(Equal("/candidate-home"))
		})

		It("should refuse refreshing for a deleted account", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{Username: "jane", Password: "correct-horse"})
			Expect(err).ToNot(HaveOccurred())

			delete(repo.byID, 42)

			_, err = service.RefreshTokens(tokens.RefreshToken)
			Expect(err).To(Equal(auth.ErrInvalidToken))
		})
	})

	Describe("HashPassword", func() {
		It("should produce a verifiable bcrypt hash", func() {
			hash, err := service.HashPassword("s3cret-enough")
			Expect(err).ToNot(HaveOccurred())
			Expect(bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret-enough"))).To(Succeed())
		})
	})
})
