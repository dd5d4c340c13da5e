package dto

type UpsertSettingRequest struct {
	Value       string `json:"value" validate:"required,max=500"`
	Description string `json:"description" validate:"omitempty,max=500"`
}
