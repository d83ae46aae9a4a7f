package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	autherrors "leavedesk/internal/auth/errors"
	"leavedesk/internal/authz"
	"leavedesk/internal/shared/mailer"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (AuthResponse, error)
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
	GetMe(ctx context.Context, userID string) (AuthResponse, error)
}

type service struct {
	repo   Repository
	mail   mailer.Mailer
	logger *zap.Logger
}

func NewService(repo Repository, mail mailer.Mailer, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, mail: mail, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		// Same response for unknown email and wrong password.
		return AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	s.logger.Info("login success", zap.String("user_id", user.ID.String()))
	return mapToAuthResponse(user), nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return AuthResponse{}, autherrors.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return AuthResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	user := &User{
		ID:         uuid.New(),
		Name:       req.Name,
		Email:      req.Email,
		Password:   string(hash),
		Role:       authz.RoleEmployee,
		Department: req.Department,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		s.logger.Error("register persist failed", zap.Error(err))
		return AuthResponse{}, err
	}
	s.logger.Info("register success", zap.String("user_id", user.ID.String()))

	// Fire-and-forget; a mail failure never fails the registration.
	go func(to, name string) {
		msg := mailer.Message{
			To:      to,
			Subject: "Welcome to LeaveDesk",
			Text:    fmt.Sprintf("Hi %s,\n\nYour account has been created. You can now log in and submit leave requests.", name),
		}
		if err := s.mail.Send(msg); err != nil {
			s.logger.Warn("welcome email failed", zap.String("email", to), zap.Error(err))
		}
	}(user.Email, user.Name)

	return mapToAuthResponse(user), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (AuthResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, autherrors.ErrUserNotFound
		}
		return AuthResponse{}, err
	}
	return mapToAuthResponse(user), nil
}

func mapToAuthResponse(u *User) AuthResponse {
	return AuthResponse{
		ID:         u.ID.String(),
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Department: u.Department,
	}
}
