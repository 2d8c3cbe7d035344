package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jcmexdev/ecommerce-api/internal/core/domain/apperror"
	"github.com/jcmexdev/ecommerce-api/internal/core/domain/identity"
	"github.com/jcmexdev/ecommerce-api/internal/infra/storage/gormstore"
)

type AuthServiceSuite struct {
	suite.Suite

	db   *gorm.DB
	auth *AuthService
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.db = testStore(s.T())
	users := gormstore.NewUserRepository(s.db)
	roles := gormstore.NewRoleRepository(s.db)
	s.auth = NewAuthService(users, roles, "test-secret", time.Hour)
}

func (s *AuthServiceSuite) register(name, email, password string) {
	s.T().Helper()
	_, err := s.auth.Register(context.Background(), RegisterInput{Name: name, Email: email, Password: password})
	s.Require().NoError(err)
}

func (s *AuthServiceSuite) TestRegisterDefaultsToUserRole() {
	user, err := s.auth.Register(context.Background(), RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "s3cret!",
	})
	s.Require().NoError(err)

	s.NotEmpty(user.ID)
	s.NotEqual("s3cret!", user.PasswordHash)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret!")))

	fetched, err := s.auth.users.FindByID(context.Background(), user.ID)
	s.Require().NoError(err)
	s.Require().NotNil(fetched.Role)
	s.Equal(identity.RoleUser, fetched.Role.Name)
}

func (s *AuthServiceSuite) TestRegisterDuplicateEmail() {
	s.register("Alice", "alice@example.com", "s3cret!")

	_, err := s.auth.Register(context.Background(), RegisterInput{
		Name: "Impostor", Email: "alice@example.com", Password: "another1",
	})
	s.Equal(apperror.KindValidation, apperror.KindOf(err))
}

func (s *AuthServiceSuite) TestRegisterValidation() {
	cases := []struct {
		name string
		in   RegisterInput
	}{
		{"missing name", RegisterInput{Email: "a@example.com", Password: "s3cret!"}},
		{"missing email", RegisterInput{Name: "A", Password: "s3cret!"}},
		{"missing password", RegisterInput{Name: "A", Email: "a@example.com"}},
		{"short password", RegisterInput{Name: "A", Email: "a@example.com", Password: "abc"}},
	}
	for _, tc := range cases {
		_, err := s.auth.Register(context.Background(), tc.in)
		s.Equal(apperror.KindValidation, apperror.KindOf(err), tc.name)
	}
}

func (s *AuthServiceSuite) TestLoginAndVerifyTokenRoundtrip() {
	s.register("Alice", "alice@example.com", "s3cret!")

	token, user, err := s.auth.Login(context.Background(), "alice@example.com", "s3cret!")
	s.Require().NoError(err)
	s.NotEmpty(token)

	ident, err := s.auth.VerifyToken(token)
	s.Require().NoError(err)
	s.Equal(user.ID, ident.UserID)
	s.Equal(identity.RoleUser, ident.Role)
}

func (s *AuthServiceSuite) TestLoginWrongPassword() {
	s.register("Alice", "alice@example.com", "s3cret!")

	_, _, err := s.auth.Login(context.Background(), "alice@example.com", "wrong-one")
	s.Equal(apperror.KindAuthorization, apperror.KindOf(err))
}

func (s *AuthServiceSuite) TestLoginUnknownEmail() {
	_, _, err := s.auth.Login(context.Background(), "nobody@example.com", "whatever1")
	s.Equal(apperror.KindNotFound, apperror.KindOf(err))
}

func (s *AuthServiceSuite) TestVerifyTokenRejectsForgery() {
	s.register("Alice", "alice@example.com", "s3cret!")
	token, _, err := s.auth.Login(context.Background(), "alice@example.com", "s3cret!")
	s.Require().NoError(err)

	// A token signed with a different secret must not verify.
	other := NewAuthService(s.auth.users, s.auth.roles, "other-secret", time.Hour)
	_, err = other.VerifyToken(token)
	s.Equal(apperror.KindAuthorization, apperror.KindOf(err))

	_, err = s.auth.VerifyToken("not-a-token")
	s.Equal(apperror.KindAuthorization, apperror.KindOf(err))
}

func (s *AuthServiceSuite) TestVerifyTokenRejectsExpired() {
	s.register("Alice", "alice@example.com", "s3cret!")

	shortLived := NewAuthService(s.auth.users, s.auth.roles, "test-secret", -time.Minute)
	token, _, err := shortLived.Login(context.Background(), "alice@example.com", "s3cret!")
	s.Require().NoError(err)

	_, err = s.auth.VerifyToken(token)
	s.Equal(apperror.KindAuthorization, apperror.KindOf(err))
}

func (s *AuthServiceSuite) TestUpdateProfile() {
	ctx := context.Background()
	s.register("Alice", "alice@example.com", "s3cret!")
	s.register("Bob", "bob@example.com", "s3cret!")
	_, alice, err := s.auth.Login(ctx, "alice@example.com", "s3cret!")
	s.Require().NoError(err)

	updated, err := s.auth.UpdateProfile(ctx, alice.ID, UpdateProfileInput{Name: "Alice B", Password: "newpass1"})
	s.Require().NoError(err)
	s.Equal("Alice B", updated.Name)
	s.Equal("alice@example.com", updated.Email)

	_, _, err = s.auth.Login(ctx, "alice@example.com", "newpass1")
	s.NoError(err)

	// Taking another account's email is rejected.
	_, err = s.auth.UpdateProfile(ctx, alice.ID, UpdateProfileInput{Email: "bob@example.com"})
	s.Equal(apperror.KindValidation, apperror.KindOf(err))
}

func (s *AuthServiceSuite) TestRoles() {
	ctx := context.Background()

	seeded, err := s.auth.ListRoles(ctx)
	s.Require().NoError(err)
	s.Len(seeded, 2)

	_, err = s.auth.CreateRole(ctx, "support")
	s.Require().NoError(err)
	_, err = s.auth.CreateRole(ctx, "")
	s.Equal(apperror.KindValidation, apperror.KindOf(err))

	roles, err := s.auth.ListRoles(ctx)
	s.Require().NoError(err)
	s.Len(roles, 3)
}
