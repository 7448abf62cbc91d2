package validator

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{"user@example.com", "a.b+c@mail.ru", "doctor_1@clinic.org"}
	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = false, want true", email)
		}
	}
	invalid := []string{"", "user", "user@", "@example.com", "user@example"}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = true, want false", email)
		}
	}
}

func TestValidatePhone(t *testing.T) {
	valid := []string{"+79161234567", "8 (916) 123-45-67", "79161234567"}
	for _, phone := range valid {
		if !ValidatePhone(phone) {
			t.Errorf("ValidatePhone(%q) = false, want true", phone)
		}
	}
	invalid := []string{"", "123", "abc", "+7916"}
	for _, phone := range invalid {
		if ValidatePhone(phone) {
			t.Errorf("ValidatePhone(%q) = true, want false", phone)
		}
	}
}

func TestValidateInsurancePolicy(t *testing.T) {
	valid := []string{"1234567890123456", "1234 5678 9012 3456", "1234-5678-9012-3456"}
	for _, policy := range valid {
		if !ValidateInsurancePolicy(policy) {
			t.Errorf("ValidateInsurancePolicy(%q) = false, want true", policy)
		}
	}
	invalid := []string{"", "12345", "123456789012345678", "abcdefghijklmnop"}
	for _, policy := range invalid {
		if ValidateInsurancePolicy(policy) {
			t.Errorf("ValidateInsurancePolicy(%q) = true, want false", policy)
		}
	}
}

func TestValidateNamePart(t *testing.T) {
	valid := []string{"Иванов", "Анна-Мария", "O'Neill"}
	for _, name := range valid {
		if !ValidateNamePart(name) {
			t.Errorf("ValidateNamePart(%q) = false, want true", name)
		}
	}
	invalid := []string{"", "А", "Иванов1", "x_y"}
	for _, name := range invalid {
		if ValidateNamePart(name) {
			t.Errorf("ValidateNamePart(%q) = true, want false", name)
		}
	}
}
