package model

import (
	"time"

	"github.com/ivankudzin/datebot/internal/domain/enums"
)

// Notification is an append-only record addressed to one user. Created by the
// matching engine, marked read in bulk when the user opens the list.
type Notification struct {
	ID           int64
	UserID       string
	FromUserID   string
	FromName     string
	FromUsername string
	Type         enums.NotificationType
	Message      string
	Read         bool
	CreatedAt    time.Time
}
