package model

import "time"

type Message struct {
	ID         int64
	FromUserID string
	ToUserID   string
	Text       string
	Read       bool
	CreatedAt  time.Time
}
