package validator

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	emailRegex  = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex  = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	policyRegex = regexp.MustCompile(`^[0-9]{16}$`)
)

func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func ValidatePhone(phone string) bool {
	cleanPhone := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '+' {
			return r
		}
		return -1
	}, phone)

	return phoneRegex.MatchString(cleanPhone)
}

func ValidatePassword(password string) bool {
	return len(password) >= 6
}

// ValidateInsurancePolicy проверяет номер полиса ОМС единого образца:
// 16 цифр, пробелы и дефисы допускаются как разделители.
func ValidateInsurancePolicy(policy string) bool {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, policy)

	return policyRegex.MatchString(clean)
}

func ValidateNamePart(name string) bool {
	if utf8.RuneCountInString(name) < 2 {
		return false
	}

	for _, r := range name {
		if !unicode.IsLetter(r) && r != '-' && r != ' ' && r != '\'' {
			return false
		}
	}

	return true
}
