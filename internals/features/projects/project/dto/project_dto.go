package dto

import (
	projectModel "gradhub_backend/internals/features/projects/project/model"
)

type CreateProjectRequest struct {
	Title       string `json:"title" validate:"required,min=5,max=200"`
	Description string `json:"description" validate:"omitempty,max=5000"`
	MaxStudents int    `json:"max_students" validate:"required,min=1,max=10"`
}

type UpdateProjectRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=5,max=200"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	MaxStudents *int    `json:"max_students" validate:"omitempty,min=1,max=10"`
	IsActive    *bool   `json:"is_active"`
}

type ProjectItem struct {
	ProjectID         string `json:"project_id"`
	TeacherID         string `json:"teacher_id"`
	TeacherName       string `json:"teacher_name,omitempty"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	MaxStudents       int    `json:"max_students"`
	CurrentStudents   int    `json:"current_students"`
	TotalApplications int    `json:"total_applications"`
	MaxApplications   int    `json:"max_applications"`
	IsFull            bool   `json:"is_full"`
	AcceptsNew        bool   `json:"accepts_applications"`
	IsActive          bool   `json:"is_active"`
	CreatedAt         string `json:"created_at"`
}

func ToProjectItem(p *projectModel.ProjectModel) ProjectItem {
	return ProjectItem{
		ProjectID:         p.ProjectID.String(),
		TeacherID:         p.ProjectTeacherID.String(),
		Title:             p.ProjectTitle,
		Description:       p.ProjectDescription,
		MaxStudents:       p.ProjectMaxStudents,
		CurrentStudents:   p.ProjectCurrentStudents,
		TotalApplications: p.ProjectTotalApplications,
		MaxApplications:   p.MaxApplications(),
		IsFull:            p.IsFull(),
		AcceptsNew:        p.ProjectIsActive && !p.ApplicationsFull(),
		IsActive:          p.ProjectIsActive,
		CreatedAt:         p.ProjectCreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func ToProjectItems(projects []projectModel.ProjectModel) []ProjectItem {
	items := make([]ProjectItem, 0, len(projects))
	for i := range projects {
		items = append(items, ToProjectItem(&projects[i]))
	}
	return items
}
