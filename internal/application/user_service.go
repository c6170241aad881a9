package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/recipe-share-api/internal/domain/entity"
	repo "github.com/oksasatya/recipe-share-api/internal/domain/repository"
	"github.com/oksasatya/recipe-share-api/pkg/helpers"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRequired      = errors.New("users must have an email address")
	ErrEmailTaken         = errors.New("email already registered")
	ErrTokenNotValid      = errors.New("token is invalid or expired")
)

type UserService struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewUserService(r repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *UserService {
	return &UserService{Repo: r, JWT: jwt, Logger: logger}
}

type TokenPair struct {
	AccessToken  string
	AccessExpiry int64
	RefreshToken string
}

type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// Register creates an active, non-staff user with a hashed password.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if in.Email == "" {
		return nil, ErrEmailRequired
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Email:    helpers.NormalizeEmail(in.Email),
		Name:     in.Name,
		Password: hash,
		IsActive: true,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// CreateSuperuser registers a user and promotes it to staff + superuser.
func (s *UserService) CreateSuperuser(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Register(ctx, RegisterInput{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	u.IsStaff = true
	u.IsSuperuser = true
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate verifies the credentials. Unknown email and wrong password
// fail identically.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, helpers.NormalizeEmail(email))
	if err != nil || u == nil || !u.IsActive {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueTokens generates a stateless access/refresh token pair for the user.
func (s *UserService) IssueTokens(u *entity.User) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		}
		return TokenPair{}, err
	}
	refresh, _, err := s.JWT.GenerateRefreshToken(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate refresh token failed")
		}
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, AccessExpiry: aexp.Unix(), RefreshToken: refresh}, nil
}

// Login authenticates and issues tokens in one step.
func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// Refresh mints a new access token from a valid refresh token. The subject
// user must still exist and be active.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return "", ErrTokenNotValid
	}
	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil || u == nil || !u.IsActive {
		return "", ErrTokenNotValid
	}
	access, _, err := s.JWT.GenerateAccessToken(u.ID)
	if err != nil {
		return "", err
	}
	return access, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID int64) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

type UpdateProfileInput struct {
	Email    *string
	Name     *string
	Password *string
}

// UpdateProfile applies the supplied fields only; a new password is hashed
// before persisting.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	if in.Email != nil {
		if *in.Email == "" {
			return nil, ErrEmailRequired
		}
		u.Email = helpers.NormalizeEmail(*in.Email)
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Password != nil {
		hash, err := helpers.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// DeleteAccount removes the user; owned tags, ingredients and recipes go
// with it through the FK cascades.
func (s *UserService) DeleteAccount(ctx context.Context, userID int64) error {
	err := s.Repo.Delete(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

func (s *UserService) Follow(ctx context.Context, userID, followedID int64) error {
	if _, err := s.Repo.GetByID(ctx, followedID); err != nil {
		return ErrUserNotFound
	}
	return s.Repo.Follow(ctx, userID, followedID)
}

func (s *UserService) Unfollow(ctx context.Context, userID, followedID int64) error {
	return s.Repo.Unfollow(ctx, userID, followedID)
}

func (s *UserService) Following(ctx context.Context, userID int64) ([]entity.User, error) {
	return s.Repo.Following(ctx, userID)
}

func (s *UserService) Followers(ctx context.Context, userID int64) ([]entity.User, error) {
	return s.Repo.Followers(ctx, userID)
}
