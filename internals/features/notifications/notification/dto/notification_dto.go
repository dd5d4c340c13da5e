package dto

import (
	notifService "gradhub_backend/internals/features/notifications/notification/service"
)

type NotificationItem struct {
	NotificationID string      `json:"notification_id"`
	Type           string      `json:"type"`
	Title          string      `json:"title"`
	Message        string      `json:"message"`
	ProjectID      *string     `json:"project_id,omitempty"`
	ProjectTitle   *string     `json:"project_title,omitempty"`
	ApplicationID  *string     `json:"application_id,omitempty"`
	Metadata       interface{} `json:"metadata,omitempty"`
	IsRead         bool        `json:"is_read"`
	ReadAt         *string     `json:"read_at,omitempty"`
	CreatedAt      string      `json:"created_at"`
}

func ToNotificationItem(n *notifService.NotificationWithProject) NotificationItem {
	item := NotificationItem{
		NotificationID: n.NotificationID.String(),
		Type:           n.NotificationType,
		Title:          n.NotificationTitle,
		Message:        n.NotificationMessage,
		ProjectTitle:   n.ProjectTitle,
		IsRead:         n.NotificationIsRead,
		CreatedAt:      n.NotificationCreatedAt.Format("2006-01-02 15:04:05"),
	}
	if n.NotificationProjectID != nil {
		id := n.NotificationProjectID.String()
		item.ProjectID = &id
	}
	if n.NotificationApplicationID != nil {
		id := n.NotificationApplicationID.String()
		item.ApplicationID = &id
	}
	if len(n.NotificationMetadata) > 0 {
		item.Metadata = n.NotificationMetadata
	}
	if n.NotificationReadAt != nil {
		readAt := n.NotificationReadAt.Format("2006-01-02 15:04:05")
		item.ReadAt = &readAt
	}
	return item
}

func ToNotificationItems(rows []notifService.NotificationWithProject) []NotificationItem {
	items := make([]NotificationItem, 0, len(rows))
	for i := range rows {
		items = append(items, ToNotificationItem(&rows[i]))
	}
	return items
}
