package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"helpify.com/helpify/internal/auth"
	"helpify.com/helpify/internal/constants"
	apperrors "helpify.com/helpify/internal/errors"
	model "helpify.com/helpify/internal/models"
	repository "helpify.com/helpify/internal/repositories"
)

type TokenIssuer interface {
	Issue(userID string, userType constants.UserType) (string, time.Time, error)
}

type RegisterInput struct {
	Fullname string
	Email    string
	Password string
	UserType constants.UserType
}

type Session struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      *model.User `json:"user"`
}

type AccountService struct {
	repos  *repository.Repositories
	tokens TokenIssuer
	logger *zap.Logger
	now    func() time.Time

	checkPassword func(password, hash string) bool
}

func NewAccountService(repos *repository.Repositories, tokens TokenIssuer, logger *zap.Logger) *AccountService {
	return &AccountService{
		repos:  repos,
		tokens: tokens,
		logger: logger,
		now:    time.Now,

		checkPassword: auth.CheckPassword,
	}
}

func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.Fullname = strings.TrimSpace(in.Fullname)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if utf8.RuneCountInString(in.Fullname) < minFullnameLength {
		return nil, apperrors.Validation("fullname must be at least 2 characters")
	}
	if err := validateEmail(in.Email); err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(in.Password) < minPasswordLength {
		return nil, apperrors.Validation("password must be at least 8 characters")
	}
	if !in.UserType.Valid() {
		return nil, apperrors.Validation("user_type must be client or helper")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperrors.Infrastructure(err)
	}

	user := &model.User{
		Fullname:     in.Fullname,
		Email:        in.Email,
		PasswordHash: hash,
		UserType:     in.UserType,
		CreatedAt:    s.now().UTC(),
	}
	// The unique index on email decides concurrent registrations.
	if err := s.repos.Users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, apperrors.Infrastructure(err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("user_type", string(user.UserType)))
	return user, nil
}

func (s *AccountService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.repos.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Unknown emails still pay for a bcrypt comparison.
			s.checkPassword(password, auth.DummyHash())
		}
		return nil, storeErr(err, apperrors.ErrInvalidCredentials)
	}
	if !s.checkPassword(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.UserType)
	if err != nil {
		return nil, apperrors.Infrastructure(err)
	}
	return &Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *AccountService) GetProfile(ctx context.Context, actor Actor) (*model.User, error) {
	if err := actor.requireUser(); err != nil {
		return nil, err
	}
	user, err := s.repos.Users.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, storeErr(err, apperrors.ErrUserNotFound)
	}
	return user, nil
}

func (s *AccountService) UpdateProfile(ctx context.Context, actor Actor, fullname, bio string) (*model.User, error) {
	user, err := s.GetProfile(ctx, actor)
	if err != nil {
		return nil, err
	}

	fullname = strings.TrimSpace(fullname)
	if utf8.RuneCountInString(fullname) < minFullnameLength {
		return nil, apperrors.Validation("fullname must be at least 2 characters")
	}
	user.Fullname = fullname
	user.Bio = strings.TrimSpace(bio)

	if err := s.repos.Users.UpdateProfile(ctx, user); err != nil {
		return nil, apperrors.Infrastructure(err)
	}
	return user, nil
}
