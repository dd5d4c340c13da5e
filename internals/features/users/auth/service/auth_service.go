package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gradhub_backend/internals/constants"
	authModel "gradhub_backend/internals/features/users/auth/model"
	userModel "gradhub_backend/internals/features/users/user/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrStudentNumberTaken = errors.New("student number already registered")
	ErrWrongPassword      = errors.New("current password is wrong")
)

// AuthService handles registration, login, logout and password changes.
// Teacher and admin accounts are created by admins; self-registration is
// students only.
type AuthService struct {
	DB *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db}
}

type RegisterInput struct {
	FullName      string
	Email         string
	Password      string
	StudentNumber string
	CourseCode    string
}

func (s *AuthService) RegisterStudent(in RegisterInput) (*userModel.UserModel, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	studentNumber := strings.TrimSpace(in.StudentNumber)

	var count int64
	if err := s.DB.Model(&userModel.UserModel{}).
		Where("user_email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	if err := s.DB.Model(&userModel.UserModel{}).
		Where("user_student_number = ?", studentNumber).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrStudentNumberTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	courseCode := strings.TrimSpace(in.CourseCode)
	user := userModel.UserModel{
		UserFullName:      strings.TrimSpace(in.FullName),
		UserEmail:         email,
		UserPassword:      string(hashed),
		UserRole:          constants.RoleStudent,
		UserStudentNumber: &studentNumber,
		UserIsActive:      true,
	}
	if courseCode != "" {
		user.UserCourseCode = &courseCode
	}

	if err := s.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Login accepts an email or a student number as identifier.
func (s *AuthService) Login(identifier, password string) (*userModel.UserModel, error) {
	identifier = strings.TrimSpace(identifier)

	var user userModel.UserModel
	err := s.DB.
		Where("user_email = ? OR user_student_number = ?", strings.ToLower(identifier), identifier).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.UserIsActive {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// Logout blacklists the presented token until its own expiry.
func (s *AuthService) Logout(rawToken string) error {
	expiredAt := time.Now().Add(AccessTokenTTL)

	// best effort: read exp from the token so the sweep can drop the row
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(rawToken, claims); err == nil {
		if exp, ok := claims["exp"].(float64); ok {
			expiredAt = time.Unix(int64(exp), 0)
		}
	}

	entry := authModel.TokenBlacklist{
		Token:     rawToken,
		ExpiredAt: expiredAt,
	}
	err := s.DB.Create(&entry).Error
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "unique") {
		// already blacklisted, logout is idempotent
		return nil
	}
	return err
}

func (s *AuthService) ChangePassword(userID uuid.UUID, oldPassword, newPassword string) error {
	var user userModel.UserModel
	if err := s.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte(oldPassword)); err != nil {
		return ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.DB.Model(&user).Update("user_password", string(hashed)).Error
}

func (s *AuthService) GetUser(userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := s.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByIDString resolves a user from the string form carried in claims.
// Inactive users are rejected so a refresh token dies with the account.
func (s *AuthService) GetUserByIDString(raw string) (*userModel.UserModel, error) {
	userID, err := uuid.Parse(raw)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if !user.UserIsActive {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
