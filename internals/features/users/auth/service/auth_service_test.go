package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	authModel "gradhub_backend/internals/features/users/auth/model"
	userModel "gradhub_backend/internals/features/users/user/model"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&authModel.TokenBlacklist{},
	))
	return NewAuthService(db)
}

func registerTestStudent(t *testing.T, svc *AuthService, email, number, password string) *userModel.UserModel {
	t.Helper()

	user, err := svc.RegisterStudent(RegisterInput{
		FullName:      "Test Student",
		Email:         email,
		Password:      password,
		StudentNumber: number,
		CourseCode:    "CENG",
	})
	require.NoError(t, err)
	return user
}

func TestRegisterStudentHashesPassword(t *testing.T) {
	svc := newTestAuthService(t)

	user := registerTestStudent(t, svc, "Ali@Example.EDU", "20201234", "s3cret-pass")

	assert.Equal(t, "ali@example.edu", user.UserEmail)
	assert.NotEqual(t, "s3cret-pass", user.UserPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte("s3cret-pass")))
	require.NotNil(t, user.UserStudentNumber)
	assert.Equal(t, "20201234", *user.UserStudentNumber)
	assert.True(t, user.IsStudent())
}

func TestRegisterStudentUniqueness(t *testing.T) {
	svc := newTestAuthService(t)
	registerTestStudent(t, svc, "ali@example.edu", "20201234", "s3cret-pass")

	_, err := svc.RegisterStudent(RegisterInput{
		FullName:      "Clone",
		Email:         "ali@example.edu",
		Password:      "whatever1",
		StudentNumber: "20209999",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.RegisterStudent(RegisterInput{
		FullName:      "Clone",
		Email:         "veli@example.edu",
		Password:      "whatever1",
		StudentNumber: "20201234",
	})
	assert.ErrorIs(t, err, ErrStudentNumberTaken)
}

func TestLoginByEmailOrStudentNumber(t *testing.T) {
	svc := newTestAuthService(t)
	registerTestStudent(t, svc, "ali@example.edu", "20201234", "s3cret-pass")

	byEmail, err := svc.Login("ali@example.edu", "s3cret-pass")
	require.NoError(t, err)

	byNumber, err := svc.Login("20201234", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, byEmail.UserID, byNumber.UserID)

	_, err = svc.Login("ali@example.edu", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody@example.edu", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	svc := newTestAuthService(t)
	user := registerTestStudent(t, svc, "ali@example.edu", "20201234", "s3cret-pass")

	require.NoError(t, svc.DB.Model(user).Update("user_is_active", false).Error)

	_, err := svc.Login("ali@example.edu", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc := newTestAuthService(t)

	require.NoError(t, svc.Logout("some.opaque.token"))
	require.NoError(t, svc.Logout("some.opaque.token"))

	var count int64
	require.NoError(t, svc.DB.Model(&authModel.TokenBlacklist{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestChangePassword(t *testing.T) {
	svc := newTestAuthService(t)
	user := registerTestStudent(t, svc, "ali@example.edu", "20201234", "old-pass-123")

	assert.ErrorIs(t, svc.ChangePassword(user.UserID, "bad-guess", "new-pass-123"), ErrWrongPassword)

	require.NoError(t, svc.ChangePassword(user.UserID, "old-pass-123", "new-pass-123"))

	_, err := svc.Login("ali@example.edu", "old-pass-123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login("ali@example.edu", "new-pass-123")
	assert.NoError(t, err)
}

func TestGetUserByIDString(t *testing.T) {
	svc := newTestAuthService(t)
	user := registerTestStudent(t, svc, "ali@example.edu", "20201234", "s3cret-pass")

	found, err := svc.GetUserByIDString(user.UserID.String())
	require.NoError(t, err)
	assert.Equal(t, user.UserID, found.UserID)

	_, err = svc.GetUserByIDString("not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, svc.DB.Model(user).Update("user_is_active", false).Error)
	_, err = svc.GetUserByIDString(user.UserID.String())
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
