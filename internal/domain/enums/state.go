package enums

// State is the single current step of a user's guided dialog.
type State string

const (
	StateMainMenu         State = "MAIN_MENU"
	StateEnterName        State = "ENTER_NAME"
	StateEnterAge         State = "ENTER_AGE"
	StateEnterGender      State = "ENTER_GENDER"
	StateEnterBio         State = "ENTER_BIO"
	StateChooseCategories State = "CHOOSE_CATEGORIES"
	StateChooseCategory   State = "CHOOSE_CATEGORY"
	StateViewingProfile   State = "VIEWING_PROFILE"
	StateChooseMatch      State = "CHOOSE_MATCH"
	StateInChat           State = "IN_CHAT"
)
