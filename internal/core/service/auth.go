package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jcmexdev/ecommerce-api/internal/core/domain/apperror"
	"github.com/jcmexdev/ecommerce-api/internal/core/domain/entity"
	"github.com/jcmexdev/ecommerce-api/internal/core/domain/identity"
	"github.com/jcmexdev/ecommerce-api/internal/core/ports"
)

const minPasswordLength = 6

// AuthService owns user accounts, roles, and bearer tokens.
type AuthService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	secret []byte
	ttl    time.Duration
}

func NewAuthService(users ports.UserRepository, roles ports.RoleRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{users: users, roles: roles, secret: []byte(secret), ttl: ttl}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	RoleID   string
}

// Register creates a user with a bcrypt-hashed password. When no role is
// given the built-in "user" role is attached.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, apperror.Validationf("missing_fields", "name, email, and password are required")
	}
	if len(in.Password) < minPasswordLength {
		return nil, apperror.Validationf("password_too_short",
			"password must be at least %d characters long", minPasswordLength)
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, apperror.Validationf("email_in_use", "email already in use")
	} else if apperror.KindOf(err) != apperror.KindNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	roleID := in.RoleID
	if roleID == "" {
		role, err := s.roles.FindByName(ctx, identity.RoleUser)
		if err != nil {
			return nil, err
		}
		roleID = role.ID
	}

	user := &entity.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		RoleID:       roleID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and issues a signed bearer token carrying
// the user id and role name.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, apperror.Authorizationf("invalid_credentials", "invalid credentials")
	}

	roleName := ""
	if user.Role != nil {
		roleName = user.Role.Name
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": roleName,
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, user, nil
}

// VerifyToken resolves a bearer token into the caller's identity.
func (s *AuthService) VerifyToken(tokenString string) (identity.Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return identity.Identity{}, apperror.Authorizationf("invalid_token", "invalid or expired token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return identity.Identity{}, apperror.Authorizationf("invalid_token", "invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" {
		return identity.Identity{}, apperror.Authorizationf("invalid_token", "token missing subject")
	}
	return identity.Identity{UserID: sub, Role: role}, nil
}

type UpdateProfileInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateProfile applies a partial update to the caller's own account.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Email != "" && in.Email != user.Email {
		existing, err := s.users.FindByEmail(ctx, in.Email)
		if err == nil && existing.ID != userID {
			return nil, apperror.Validationf("email_in_use", "email already in use")
		}
		if err != nil && apperror.KindOf(err) != apperror.KindNotFound {
			return nil, err
		}
		user.Email = in.Email
	}
	if in.Password != "" {
		if len(in.Password) < minPasswordLength {
			return nil, apperror.Validationf("password_too_short",
				"password must be at least %d characters long", minPasswordLength)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]entity.User, error) {
	return s.users.List(ctx)
}

func (s *AuthService) ListRoles(ctx context.Context) ([]entity.Role, error) {
	return s.roles.List(ctx)
}

func (s *AuthService) CreateRole(ctx context.Context, name string) (*entity.Role, error) {
	if name == "" {
		return nil, apperror.Validationf("missing_name", "role name is required")
	}
	role := &entity.Role{ID: uuid.NewString(), Name: name}
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}
