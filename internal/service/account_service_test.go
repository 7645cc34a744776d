package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bondi-app/bondi/internal/auth"
	"github.com/bondi-app/bondi/internal/models"
	"github.com/bondi-app/bondi/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.New(t.TempDir())
	require.NoError(t, err)
	return st
}

func newAccountService(t *testing.T) *AccountService {
	t.Helper()
	return NewAccountService(newTestStore(t), auth.NewSessionManager("test-secret", time.Hour))
}

func validSignup() SignupInput {
	return SignupInput{
		Username:       "Ana ",
		FullName:       "Ana García",
		Email:          "ana@example.com",
		Password:       "correct horse",
		PasswordRepeat: "correct horse",
		RecoveryAnswer: "Blue Penguin",
	}
}

func TestSignup(t *testing.T) {
	svc := newAccountService(t)
	db := models.NewDatabase()

	require.NoError(t, svc.Signup(db, validSignup()))

	// The identifier is normalized before storage.
	user, ok := db.Users["ana"]
	require.True(t, ok)
	assert.Equal(t, "Ana García", user.FullName)
	assert.NotEqual(t, "correct horse", user.PasswordHash, "password must be stored hashed")
	assert.True(t, auth.CheckSecret(user.PasswordHash, "correct horse"))
	assert.True(t, auth.CheckSecret(user.RecoveryHash, "blue penguin"), "recovery answer is lowercased before hashing")
	assert.NotNil(t, user.Expenses)
	assert.Equal(t, 0, user.Streak.Count)
}

func TestSignupValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SignupInput)
		wantErr error
	}{
		{
			name:    "missing full name",
			mutate:  func(in *SignupInput) { in.FullName = "  " },
			wantErr: ErrMissingField,
		},
		{
			name:    "missing email",
			mutate:  func(in *SignupInput) { in.Email = "" },
			wantErr: ErrMissingField,
		},
		{
			name:    "missing recovery answer",
			mutate:  func(in *SignupInput) { in.RecoveryAnswer = "" },
			wantErr: ErrMissingField,
		},
		{
			name:    "password repeat differs",
			mutate:  func(in *SignupInput) { in.PasswordRepeat = "other words" },
			wantErr: ErrPasswordMismatch,
		},
		{
			name: "weak password",
			mutate: func(in *SignupInput) {
				in.Password = "short"
				in.PasswordRepeat = "short"
			},
			wantErr: auth.ErrWeakPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newAccountService(t)
			db := models.NewDatabase()

			in := validSignup()
			tt.mutate(&in)

			err := svc.Signup(db, in)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, db.Users, "no state may be mutated on validation failure")
		})
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	svc := newAccountService(t)
	db := models.NewDatabase()

	require.NoError(t, svc.Signup(db, validSignup()))

	// Same username with different case still collides.
	in := validSignup()
	in.Username = "ANA"
	assert.ErrorIs(t, svc.Signup(db, in), ErrUsernameTaken)
	assert.Len(t, db.Users, 1)
}

func TestLogin(t *testing.T) {
	svc := newAccountService(t)
	db := models.NewDatabase()
	require.NoError(t, svc.Signup(db, validSignup()))

	token, err := svc.Login(db, " ANA", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = svc.Login(db, "nobody", "correct horse")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Login(db, "ana", "wrong words")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRecoverUsernames(t *testing.T) {
	svc := newAccountService(t)
	db := models.NewDatabase()
	require.NoError(t, svc.Signup(db, validSignup()))

	second := validSignup()
	second.Username = "ana2"
	require.NoError(t, svc.Signup(db, second))

	found := svc.RecoverUsernames(db, "ANA@example.com", " Blue Penguin ")
	assert.Equal(t, []string{"ana", "ana2"}, found)

	assert.Empty(t, svc.RecoverUsernames(db, "ana@example.com", "wrong answer"))
	assert.Empty(t, svc.RecoverUsernames(db, "other@example.com", "Blue Penguin"))
}

func TestResetPassword(t *testing.T) {
	svc := newAccountService(t)
	db := models.NewDatabase()
	require.NoError(t, svc.Signup(db, validSignup()))

	require.NoError(t, svc.ResetPassword(db, "ana", "blue penguin", "new password"))

	_, err := svc.Login(db, "ana", "new password")
	assert.NoError(t, err)
	_, err = svc.Login(db, "ana", "correct horse")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestResetPasswordWrongAnswer(t *testing.T) {
	svc := newAccountService(t)
	db := models.NewDatabase()
	require.NoError(t, svc.Signup(db, validSignup()))

	err := svc.ResetPassword(db, "ana", "red penguin", "new password")
	assert.ErrorIs(t, err, ErrWrongRecovery)

	_, err = svc.Login(db, "ana", "correct horse")
	assert.NoError(t, err, "old password must still work after a failed reset")
}
