package enums

type NotificationType string

const (
	NotificationTypeLike  NotificationType = "like"
	NotificationTypeMatch NotificationType = "match"
)
