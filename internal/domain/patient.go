package domain

import (
	"time"
)

type PatientGender string

const (
	PatientGenderMale   PatientGender = "M"
	PatientGenderFemale PatientGender = "F"
)

type Patient struct {
	ID               int64         `json:"id"`
	UserID           int64         `json:"user_id"`
	BirthDate        time.Time     `json:"birth_date"`
	Gender           PatientGender `json:"gender"`
	InsurancePolicy  string        `json:"insurance_policy"`
	BloodType        string        `json:"blood_type,omitempty"`
	Allergies        string        `json:"allergies,omitempty"`
	ChronicDiseases  string        `json:"chronic_diseases,omitempty"`
	Phone            string        `json:"phone"`
	Address          string        `json:"address"`
	EmergencyContact string        `json:"emergency_contact,omitempty"`
	EmergencyPhone   string        `json:"emergency_phone,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`

	FullName string `json:"full_name,omitempty"`
}

func (p *Patient) Age(now time.Time) int {
	years := now.Year() - p.BirthDate.Year()
	if now.Month() < p.BirthDate.Month() ||
		(now.Month() == p.BirthDate.Month() && now.Day() < p.BirthDate.Day()) {
		years--
	}
	return years
}

type CreatePatientDTO struct {
	BirthDate        string        `json:"birth_date" binding:"required"`
	Gender           PatientGender `json:"gender" binding:"required,oneof=M F"`
	InsurancePolicy  string        `json:"insurance_policy" binding:"required,max=20"`
	BloodType        string        `json:"blood_type"`
	Allergies        string        `json:"allergies"`
	ChronicDiseases  string        `json:"chronic_diseases"`
	Phone            string        `json:"phone" binding:"required"`
	Address          string        `json:"address" binding:"required"`
	EmergencyContact string        `json:"emergency_contact"`
	EmergencyPhone   string        `json:"emergency_phone"`
}

type UpdatePatientDTO struct {
	BirthDate        *string        `json:"birth_date"`
	Gender           *PatientGender `json:"gender" binding:"omitempty,oneof=M F"`
	InsurancePolicy  *string        `json:"insurance_policy" binding:"omitempty,max=20"`
	BloodType        *string        `json:"blood_type"`
	Allergies        *string        `json:"allergies"`
	ChronicDiseases  *string        `json:"chronic_diseases"`
	Phone            *string        `json:"phone"`
	Address          *string        `json:"address"`
	EmergencyContact *string        `json:"emergency_contact"`
	EmergencyPhone   *string        `json:"emergency_phone"`
}
