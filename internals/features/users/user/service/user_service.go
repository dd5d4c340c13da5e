package service

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gradhub_backend/internals/constants"
	userModel "gradhub_backend/internals/features/users/user/model"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
	ErrInvalidRole  = errors.New("invalid role")
)

// UserService covers the admin-side account management.
type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

type CreateUserInput struct {
	FullName      string
	Email         string
	Password      string
	Role          string
	StudentNumber string
	CourseCode    string
	SicilNumber   string
	ProjectQuota  *int
}

type UpdateUserInput struct {
	FullName     *string
	Email        *string
	CourseCode   *string
	ProjectQuota *int
}

type ListUsersFilter struct {
	Role   string
	Search string
}

func (s *UserService) List(filter ListUsersFilter, offset, limit int) ([]userModel.UserModel, int64, error) {
	q := s.DB.Model(&userModel.UserModel{})

	if filter.Role != "" {
		q = q.Where("user_role = ?", filter.Role)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(user_full_name) LIKE ? OR LOWER(user_email) LIKE ? OR user_student_number LIKE ?",
			like, like, "%"+search+"%",
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []userModel.UserModel
	err := q.Order("user_created_at DESC").Offset(offset).Limit(limit).Find(&users).Error
	return users, total, err
}

func (s *UserService) Get(userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	err := s.DB.Where("user_id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Create(in CreateUserInput) (*userModel.UserModel, error) {
	if !validRole(in.Role) {
		return nil, ErrInvalidRole
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	var count int64
	if err := s.DB.Model(&userModel.UserModel{}).
		Where("user_email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := userModel.UserModel{
		UserFullName: strings.TrimSpace(in.FullName),
		UserEmail:    email,
		UserPassword: string(hashed),
		UserRole:     in.Role,
		UserIsActive: true,
	}

	switch in.Role {
	case constants.RoleStudent:
		if sn := strings.TrimSpace(in.StudentNumber); sn != "" {
			user.UserStudentNumber = &sn
		}
		if cc := strings.TrimSpace(in.CourseCode); cc != "" {
			user.UserCourseCode = &cc
		}
	case constants.RoleTeacher:
		if sicil := strings.TrimSpace(in.SicilNumber); sicil != "" {
			user.UserSicilNumber = &sicil
		}
		user.UserProjectQuota = in.ProjectQuota
	}

	if err := s.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Update(userID uuid.UUID, in UpdateUserInput) (*userModel.UserModel, error) {
	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.FullName != nil {
		updates["user_full_name"] = strings.TrimSpace(*in.FullName)
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email != user.UserEmail {
			var count int64
			if err := s.DB.Model(&userModel.UserModel{}).
				Where("user_email = ? AND user_id <> ?", email, userID).Count(&count).Error; err != nil {
				return nil, err
			}
			if count > 0 {
				return nil, ErrEmailTaken
			}
			updates["user_email"] = email
		}
	}
	if in.CourseCode != nil {
		updates["user_course_code"] = strings.TrimSpace(*in.CourseCode)
	}
	if in.ProjectQuota != nil {
		updates["user_project_quota"] = *in.ProjectQuota
	}

	if len(updates) == 0 {
		return user, nil
	}
	if err := s.DB.Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(userID)
}

func (s *UserService) SetActive(userID uuid.UUID, active bool) error {
	res := s.DB.Model(&userModel.UserModel{}).
		Where("user_id = ?", userID).
		Update("user_is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *UserService) Delete(userID uuid.UUID) error {
	res := s.DB.Where("user_id = ?", userID).Delete(&userModel.UserModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// BulkUploadResult reports what happened to each spreadsheet row.
type BulkUploadResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

// expected sheet layout, first row is the header:
// full_name | email | password | role | student_number | course_code | sicil_number | project_quota
func (s *UserService) BulkUpload(r io.Reader) (*BulkUploadResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %q: %w", sheet, err)
	}

	result := &BulkUploadResult{Errors: []string{}}
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		rowNum := i + 1

		in := CreateUserInput{
			FullName:      cell(row, 0),
			Email:         cell(row, 1),
			Password:      cell(row, 2),
			Role:          strings.ToLower(cell(row, 3)),
			StudentNumber: cell(row, 4),
			CourseCode:    cell(row, 5),
			SicilNumber:   cell(row, 6),
		}
		if quota := cell(row, 7); quota != "" {
			n, convErr := strconv.Atoi(quota)
			if convErr != nil {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: invalid project_quota %q", rowNum, quota))
				continue
			}
			in.ProjectQuota = &n
		}

		if in.FullName == "" || in.Email == "" || in.Password == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: full_name, email and password are required", rowNum))
			continue
		}

		if _, err := s.Create(in); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		result.Created++
	}

	return result, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func validRole(role string) bool {
	for _, r := range constants.AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
