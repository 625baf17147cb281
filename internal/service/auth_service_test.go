package service

import (
	"testing"

	"go-stock-ledger/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, f *fixture, email, password string, active bool) *model.User {
	t.Helper()
	user := &model.User{
		Email:    email,
		FullName: "Test Operator",
		IsActive: active,
	}
	require.NoError(t, user.SetPassword(password))
	require.NoError(t, f.userRepo.Create(user))
	if !active {
		// The column default is true; force the flag past the insert.
		require.NoError(t, f.db.Model(user).Update("is_active", false).Error)
	}
	return user
}

func TestLogin_Success(t *testing.T) {
	f := newFixture(t)
	seedUser(t, f, "op@example.com", "secret123", true)

	resp, err := f.auth.Login("op@example.com", "secret123")
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "op@example.com", resp.User.Email)

	user, err := f.auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "op@example.com", user.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newFixture(t)
	seedUser(t, f, "op@example.com", "secret123", true)

	_, err := f.auth.Login("op@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	f := newFixture(t)
	seedUser(t, f, "gone@example.com", "secret123", false)

	_, err := f.auth.Login("gone@example.com", "secret123")
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestResetPassword(t *testing.T) {
	f := newFixture(t)
	seedUser(t, f, "op@example.com", "oldpass1", true)

	require.NoError(t, f.auth.ResetPassword("op@example.com", "oldpass1", "newpass1"))

	_, err := f.auth.Login("op@example.com", "oldpass1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.auth.Login("op@example.com", "newpass1")
	assert.NoError(t, err)
}

func TestResetPassword_WrongCurrent(t *testing.T) {
	f := newFixture(t)
	seedUser(t, f, "op@example.com", "oldpass1", true)

	err := f.auth.ResetPassword("op@example.com", "bogus", "newpass1")
	assert.ErrorIs(t, err, ErrWrongPassword)
}
