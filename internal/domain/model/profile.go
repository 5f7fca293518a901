package model

import (
	"time"

	"github.com/ivankudzin/datebot/internal/domain/enums"
)

// Profile is a durable user record. UserID is the opaque platform identity
// and never changes; everything else is editable.
type Profile struct {
	UserID     string
	Username   string
	Name       string
	Age        int
	Gender     enums.Gender
	Bio        string
	Categories []enums.Category
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (p Profile) HasCategory(c enums.Category) bool {
	for _, existing := range p.Categories {
		if existing == c {
			return true
		}
	}
	return false
}
