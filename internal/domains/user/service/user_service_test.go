package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"samplemarine-backend/internal/domains/user/model"
	"samplemarine-backend/pkg/jwt"
)

type mockUserRepo struct {
	users map[string]*model.User
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	return nil, model.ErrUserNotFound
}

func newLoginFixture(t *testing.T) (UserService, *model.User) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	admin := &model.User{
		ID:           uuid.New(),
		Email:        "admin@example.com",
		Name:         "Admin",
		Role:         "admin",
		PasswordHash: string(hash),
	}
	repo := &mockUserRepo{users: map[string]*model.User{admin.Email: admin}}
	return NewUserService(repo, jwt.NewManager("test-secret", 60)), admin
}

func TestLogin_Success(t *testing.T) {
	svc, admin := newLoginFixture(t)

	result, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "admin@example.com",
		Password: "s3cret",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, admin.Email, result.User.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newLoginFixture(t)

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "admin@example.com",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLogin_UnknownUserSameError(t *testing.T) {
	svc, _ := newLoginFixture(t)

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "s3cret",
	})

	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}
