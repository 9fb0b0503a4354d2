package auth

import (
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/permit-management/internal"
	userDatamodel "github.com/frahmantamala/permit-management/internal/core/datamodel/user"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

// Mock UserRepository for testing
type mockUserRepository struct {
	usersByEmail map[string]*userDatamodel.User
	usersByID    map[int64]*userDatamodel.User
}

func newMockUserRepository() *mockUserRepository {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.DefaultCost)

	users := []*userDatamodel.User{
		{ID: 1, Name: "HR Admin", Email: "hr@company.com", PasswordHash: string(hashedPassword), Role: userDatamodel.RoleAdmin, IsActive: true},
		{ID: 2, Name: "HR Manager", Email: "hrmanager@company.com", PasswordHash: string(hashedPassword), Role: userDatamodel.RoleHR, IsActive: true},
		{ID: 3, Name: "Former Employee", Email: "former@company.com", PasswordHash: string(hashedPassword), Role: userDatamodel.RoleEmployee, IsActive: false},
	}

	repo := &mockUserRepository{
		usersByEmail: make(map[string]*userDatamodel.User),
		usersByID:    make(map[int64]*userDatamodel.User),
	}
	for _, u := range users {
		repo.usersByEmail[u.Email] = u
		repo.usersByID[u.ID] = u
	}
	return repo
}

func (m *mockUserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	if u, exists := m.usersByEmail[email]; exists {
		return u, nil
	}
	return nil, internal.ErrUserNotFound
}

func (m *mockUserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	if u, exists := m.usersByID[id]; exists {
		return u, nil
	}
	return nil, internal.ErrUserNotFound
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		service  *Service
		mockRepo *mockUserRepository
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockUserRepository()
		tokenGen := NewJWTTokenGenerator(
			"test-access-secret-0123456789-0123456789",
			"test-refresh-secret-0123456789-0123456789",
			15*time.Minute,
			7*24*time.Hour,
		)
		service = NewService(mockRepo, tokenGen)
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.It("should return a token pair for valid credentials", func() {
			tokens, err := service.Authenticate(LoginDTO{Email: "hr@company.com", Password: "correct_password"})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(tokens.AccessToken).ToNot(gomega.BeEmpty())
			gomega.Expect(tokens.RefreshToken).ToNot(gomega.BeEmpty())
		})

		ginkgo.It("should reject a wrong password", func() {
			_, err := service.Authenticate(LoginDTO{Email: "hr@company.com", Password: "wrong_password"})
			gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidCredentials))
		})

		ginkgo.It("should reject an unknown email", func() {
			_, err := service.Authenticate(LoginDTO{Email: "nobody@company.com", Password: "correct_password"})
			gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidCredentials))
		})

		ginkgo.It("should reject an inactive account", func() {
			_, err := service.Authenticate(LoginDTO{Email: "former@company.com", Password: "correct_password"})
			gomega.Expect(err).To(gomega.Equal(internal.ErrUserInactive))
		})

		ginkgo.It("should reject an empty payload", func() {
			_, err := service.Authenticate(LoginDTO{})
			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("ValidateAccessToken", func() {
		ginkgo.It("should round-trip the user ID through the token", func() {
			tokens, err := service.Authenticate(LoginDTO{Email: "hrmanager@company.com", Password: "correct_password"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			claims, err := service.ValidateAccessToken(tokens.AccessToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.UserID).To(gomega.Equal("2"))
		})

		ginkgo.It("should reject a garbage token", func() {
			_, err := service.ValidateAccessToken("not.a.token")
			gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidToken))
		})

		ginkgo.It("should reject a token signed with a different secret", func() {
			otherGen := NewJWTTokenGenerator(
				"other-access-secret-0123456789-012345678",
				"other-refresh-secret-0123456789-01234567",
				15*time.Minute,
				7*24*time.Hour,
			)
			token, err := otherGen.GenerateAccessToken("1")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.ValidateAccessToken(token)
			gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidToken))
		})

		ginkgo.It("should reject a refresh token presented as an access token", func() {
			tokens, err := service.Authenticate(LoginDTO{Email: "hr@company.com", Password: "correct_password"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.ValidateAccessToken(tokens.RefreshToken)
			gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidToken))
		})
	})

	ginkgo.Describe("RefreshTokens", func() {
		ginkgo.It("should rotate the pair from a refresh token", func() {
			tokens, err := service.Authenticate(LoginDTO{Email: "hr@company.com", Password: "correct_password"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			rotated, err := service.RefreshTokens(tokens.RefreshToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(rotated.AccessToken).ToNot(gomega.BeEmpty())
			gomega.Expect(rotated.RefreshToken).ToNot(gomega.BeEmpty())
		})

		ginkgo.It("should reject an invalid refresh token", func() {
			_, err := service.RefreshTokens("bogus")
			gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidToken))
		})

		ginkgo.It("should reject an access token presented as a refresh token", func() {
			tokens, err := service.Authenticate(LoginDTO{Email: "hr@company.com", Password: "correct_password"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.RefreshTokens(tokens.AccessToken)
			gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidToken))
		})
	})

	ginkgo.Describe("ResolveUser", func() {
		ginkgo.It("should load the account behind the claims", func() {
			user, err := service.ResolveUser(&Claims{UserID: "1"})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(user.Email).To(gomega.Equal("hr@company.com"))
			gomega.Expect(user.IsHR()).To(gomega.BeTrue())
		})

		ginkgo.It("should reject claims for a deleted account", func() {
			_, err := service.ResolveUser(&Claims{UserID: "99"})
			gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidToken))
		})

		ginkgo.It("should reject claims for an inactive account", func() {
			_, err := service.ResolveUser(&Claims{UserID: "3"})
			gomega.Expect(err).To(gomega.Equal(internal.ErrUserInactive))
		})
	})
})
