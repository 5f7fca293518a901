package rules

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/ivankudzin/datebot/internal/domain/enums"
)

const (
	NameMinLen = 2
	NameMaxLen = 50
	BioMinLen  = 5
	BioMaxLen  = 500
	AgeMin     = 18
	AgeMax     = 99
)

// ValidationError carries a user-facing reason for rejecting a field input.
// The dialog re-prompts the same state with this message.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return e.Reason
}

func IsValidation(err error) bool {
	_, ok := err.(ValidationError)
	return ok
}

func ValidateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if len([]rune(name)) < NameMinLen || len([]rune(name)) > NameMaxLen {
		return "", ValidationError{Reason: fmt.Sprintf("Имя должно быть от %d до %d символов", NameMinLen, NameMaxLen)}
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) && r != '-' && r != '\'' {
			return "", ValidationError{Reason: "Имя может содержать только буквы, пробелы и дефис"}
		}
	}
	return name, nil
}

func ValidateAge(raw string, min, max int) (int, error) {
	if min <= 0 {
		min = AgeMin
	}
	if max <= 0 {
		max = AgeMax
	}

	age, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, ValidationError{Reason: "Возраст должен быть числом"}
	}
	if age < min || age > max {
		return 0, ValidationError{Reason: fmt.Sprintf("Возраст должен быть от %d до %d", min, max)}
	}
	return age, nil
}

func ValidateBio(raw string) (string, error) {
	bio := strings.TrimSpace(raw)
	if len([]rune(bio)) < BioMinLen || len([]rune(bio)) > BioMaxLen {
		return "", ValidationError{Reason: fmt.Sprintf("Описание должно быть от %d до %d символов", BioMinLen, BioMaxLen)}
	}
	return bio, nil
}

func ValidateGender(raw string) (enums.Gender, error) {
	gender := enums.Gender(strings.ToLower(strings.TrimSpace(raw)))
	if !gender.Valid() {
		return "", ValidationError{Reason: "Выбери корректный пол: мужской или женский"}
	}
	return gender, nil
}

func ValidateCategory(raw string) (enums.Category, error) {
	category := enums.Category(strings.ToLower(strings.TrimSpace(raw)))
	if !category.Valid() {
		return "", ValidationError{Reason: "Выбери категорию из списка"}
	}
	return category, nil
}
