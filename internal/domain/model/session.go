package model

import "github.com/ivankudzin/datebot/internal/domain/enums"

// SessionState is a user's current dialog step plus the context that step
// needs. Context is a tagged union: at most one variant is populated, and
// entering a new state always replaces the whole value, so leftovers from an
// unrelated state cannot leak forward.
type SessionState struct {
	State   enums.State    `json:"state"`
	Context SessionContext `json:"context"`
}

type SessionContext struct {
	Signup  *SignupDraft    `json:"signup,omitempty"`
	Editing *EditingField   `json:"editing,omitempty"`
	Viewing *ViewingProfile `json:"viewing,omitempty"`
	Chat    *ChatPartner    `json:"chat,omitempty"`
}

// SignupDraft accumulates profile fields during the linear registration flow.
type SignupDraft struct {
	Username   string           `json:"username,omitempty"`
	Name       string           `json:"name,omitempty"`
	Age        int              `json:"age,omitempty"`
	Gender     enums.Gender     `json:"gender,omitempty"`
	Bio        string           `json:"bio,omitempty"`
	Categories []enums.Category `json:"categories,omitempty"`
}

// EditingField marks a single-field state as an edit of an existing profile
// rather than a registration step. Categories carries the in-progress set
// while re-choosing categories.
type EditingField struct {
	Categories []enums.Category `json:"categories,omitempty"`
}

type ViewingProfile struct {
	ProfileID string         `json:"profile_id"`
	Category  enums.Category `json:"category"`
}

type ChatPartner struct {
	PartnerID string `json:"partner_id"`
}
