package enums

// ProfileField names a single editable profile attribute.
type ProfileField string

const (
	FieldName       ProfileField = "name"
	FieldAge        ProfileField = "age"
	FieldGender     ProfileField = "gender"
	FieldBio        ProfileField = "bio"
	FieldCategories ProfileField = "categories"
)
