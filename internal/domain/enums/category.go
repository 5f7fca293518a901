package enums

// Category is one entry of the fixed interest vocabulary.
type Category string

const (
	CategoryLove       Category = "love"
	CategoryFriendship Category = "friendship"
	CategoryHobby      Category = "hobby"
)

var categoryLabels = map[Category]string{
	CategoryLove:       "Любовь и отношения",
	CategoryFriendship: "Дружба",
	CategoryHobby:      "Общие увлечения",
}

func Categories() []Category {
	return []Category{CategoryLove, CategoryFriendship, CategoryHobby}
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}
