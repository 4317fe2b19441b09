package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"samplemarine-backend/internal/domains/user/model"
	"samplemarine-backend/internal/domains/user/repository"
	"samplemarine-backend/pkg/jwt"
)

type UserService interface {
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
}

type userService struct {
	repo repository.UserRepository
	jwt  *jwt.Manager
}

func NewUserService(repo repository.UserRepository, jwtManager *jwt.Manager) UserService {
	return &userService{repo: repo, jwt: jwtManager}
}

// Login verifies credentials and issues an access token. A missing user and
// a wrong password return the same error so the endpoint leaks nothing about
// which accounts exist.
func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateAccessToken(user.ID.String(), user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{AccessToken: token, User: user}, nil
}
