package constants

// Notification types written by the notification service. The background
// checks match on these when enforcing the once-per-day guard.
const (
	NotificationTypeApplicationReceived = "application_received"
	NotificationTypeApplicationApproved = "application_approved"
	NotificationTypeApplicationRejected = "application_rejected"
	NotificationTypeQuotaAvailable      = "quota_available"
	NotificationTypeDeadlineWarning     = "deadline_warning"
	NotificationTypeReviewWarning       = "review_deadline_warning"
)

// SystemSettings keys read by the time-based rules.
const (
	SettingApplicationDeadline = "application_deadline"
	SettingReviewDeadline      = "review_deadline"
)
