package dto

import (
	applicationModel "gradhub_backend/internals/features/projects/application/model"
)

type ApplyRequest struct {
	ProjectID string `json:"project_id" validate:"required,uuid4"`
	Message   string `json:"message" validate:"omitempty,max=2000"`
}

type ReviewRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject"`
	Note     string `json:"note" validate:"omitempty,max=2000"`
}

type ApplicationItem struct {
	ApplicationID string  `json:"application_id"`
	StudentID     string  `json:"student_id"`
	ProjectID     string  `json:"project_id"`
	ProjectTitle  string  `json:"project_title,omitempty"`
	Status        string  `json:"status"`
	Message       string  `json:"message"`
	ReviewNote    *string `json:"review_note,omitempty"`
	ReviewedAt    *string `json:"reviewed_at,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

func ToApplicationItem(a *applicationModel.ApplicationModel) ApplicationItem {
	item := ApplicationItem{
		ApplicationID: a.ApplicationID.String(),
		StudentID:     a.ApplicationStudentID.String(),
		ProjectID:     a.ApplicationProjectID.String(),
		Status:        string(a.ApplicationStatus),
		Message:       a.ApplicationMessage,
		ReviewNote:    a.ApplicationReviewNote,
		CreatedAt:     a.ApplicationCreatedAt.Format("2006-01-02 15:04:05"),
	}
	if a.Project != nil {
		item.ProjectTitle = a.Project.ProjectTitle
	}
	if a.ApplicationReviewedAt != nil {
		reviewed := a.ApplicationReviewedAt.Format("2006-01-02 15:04:05")
		item.ReviewedAt = &reviewed
	}
	return item
}

func ToApplicationItems(apps []applicationModel.ApplicationModel) []ApplicationItem {
	items := make([]ApplicationItem, 0, len(apps))
	for i := range apps {
		items = append(items, ToApplicationItem(&apps[i]))
	}
	return items
}
