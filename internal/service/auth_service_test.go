package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learntrack_backend/internal/config"
	"learntrack_backend/internal/model"
	"learntrack_backend/internal/repository"
	"learntrack_backend/internal/util"
)

func newAuthService(t *testing.T) (*AuthService, *repository.UserRepository) {
	t.Helper()
	env := newTestEnv(t)
	userRepo := repository.NewUserRepository(env.db)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-not-for-production-use"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(userRepo, cfg), userRepo
}

func TestRegisterAndLogin(t *testing.T) {
	auth, _ := newAuthService(t)

	user := &model.User{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct-horse",
		Active:   true,
		Role:     model.Admin, // must be ignored on self-registration
	}
	token, err := auth.Register(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, model.Student, user.Role)

	loginToken, loggedIn, err := auth.Login("ada@example.com", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, loginToken)
	assert.Equal(t, user.ID, loggedIn.ID)

	_, _, err = auth.Login("ada@example.com", "wrong")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, _, err = auth.Login("nobody@example.com", "correct-horse")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth, _ := newAuthService(t)

	first := &model.User{Name: "Ada", Email: "ada@example.com", Password: "pw-one-two-3", Active: true}
	_, err := auth.Register(first)
	require.NoError(t, err)

	dup := &model.User{Name: "Other", Email: "ada@example.com", Password: "pw-four-five", Active: true}
	_, err = auth.Register(dup)
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestAdminLoginRequiresAdminRole(t *testing.T) {
	auth, userRepo := newAuthService(t)

	student := &model.User{Name: "Ada", Email: "ada@example.com", Password: "correct-horse", Active: true}
	_, err := auth.Register(student)
	require.NoError(t, err)

	_, _, err = auth.AdminLogin("ada@example.com", "correct-horse")
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	student.Role = model.Admin
	require.NoError(t, userRepo.Save(student))

	token, user, err := auth.AdminLogin("ada@example.com", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, user.IsAdmin())
}
