package service

import (
	"coachpro_backend/internal/config"
	"coachpro_backend/internal/model"
	"coachpro_backend/internal/repository"
	"coachpro_backend/internal/util"
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrEmailRegistered = errors.New("email is already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

func (s *AuthService) Register(ctx context.Context, user *model.User) error {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	_, err := s.UserRepo.FindByEmail(ctx, user.Email)
	if err == nil {
		return ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)

	if user.Role == "" {
		user.Role = model.Student
	}
	return s.UserRepo.Create(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	user, err := s.UserRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if user.Disabled {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	go s.UserRepo.UpdateLastLogin(user.ID)

	return util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

func (s *AuthService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()
	return s.UserRepo.FindByID(ctx, id)
}
