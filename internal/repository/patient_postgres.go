package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"clinic/internal/domain"
)

type PatientRepo struct {
	db *pgxpool.Pool
}

func NewPatientRepository(db *pgxpool.Pool) *PatientRepo {
	return &PatientRepo{
		db: db,
	}
}

const patientColumns = `
	p.id, p.user_id, p.birth_date, p.gender, p.insurance_policy, p.blood_type,
	p.allergies, p.chronic_diseases, p.phone, p.address, p.emergency_contact,
	p.emergency_phone, p.created_at, p.updated_at,
	u.last_name || ' ' || u.first_name AS full_name
`

const patientJoins = `
	FROM patients p
	JOIN users u ON u.id = p.user_id
`

func (r *PatientRepo) Create(ctx context.Context, userID int64, dto domain.CreatePatientDTO) (int64, error) {
	birthDate, err := time.Parse("2006-01-02", dto.BirthDate)
	if err != nil {
		return 0, fmt.Errorf("некорректная дата рождения: %w", err)
	}

	query := `
		INSERT INTO patients (
			user_id, birth_date, gender, insurance_policy, blood_type, allergies,
			chronic_diseases, phone, address, emergency_contact, emergency_phone,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
		RETURNING id
	`

	var id int64
	err = r.db.QueryRow(ctx, query,
		userID,
		birthDate,
		dto.Gender,
		dto.InsurancePolicy,
		dto.BloodType,
		dto.Allergies,
		dto.ChronicDiseases,
		dto.Phone,
		dto.Address,
		dto.EmergencyContact,
		dto.EmergencyPhone,
		time.Now(),
	).Scan(&id)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, domain.ErrPolicyTaken
		}
		return 0, fmt.Errorf("ошибка создания пациента: %w", err)
	}

	return id, nil
}

func (r *PatientRepo) GetByID(ctx context.Context, id int64) (*domain.Patient, error) {
	query := "SELECT " + patientColumns + patientJoins + " WHERE p.id = $1"
	return r.scanPatient(r.db.QueryRow(ctx, query, id))
}

func (r *PatientRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Patient, error) {
	query := "SELECT " + patientColumns + patientJoins + " WHERE p.user_id = $1"
	return r.scanPatient(r.db.QueryRow(ctx, query, userID))
}

func (r *PatientRepo) scanPatient(row pgx.Row) (*domain.Patient, error) {
	var p domain.Patient
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.BirthDate,
		&p.Gender,
		&p.InsurancePolicy,
		&p.BloodType,
		&p.Allergies,
		&p.ChronicDiseases,
		&p.Phone,
		&p.Address,
		&p.EmergencyContact,
		&p.EmergencyPhone,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.FullName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения пациента: %w", err)
	}
	return &p, nil
}

func (r *PatientRepo) Update(ctx context.Context, id int64, dto domain.UpdatePatientDTO) error {
	setValues := make([]string, 0)
	args := make([]interface{}, 0)
	argID := 1

	add := func(column string, value interface{}) {
		setValues = append(setValues, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if dto.BirthDate != nil {
		birthDate, err := time.Parse("2006-01-02", *dto.BirthDate)
		if err != nil {
			return fmt.Errorf("некорректная дата рождения: %w", err)
		}
		add("birth_date", birthDate)
	}
	if dto.Gender != nil {
		add("gender", *dto.Gender)
	}
	if dto.InsurancePolicy != nil {
		add("insurance_policy", *dto.InsurancePolicy)
	}
	if dto.BloodType != nil {
		add("blood_type", *dto.BloodType)
	}
	if dto.Allergies != nil {
		add("allergies", *dto.Allergies)
	}
	if dto.ChronicDiseases != nil {
		add("chronic_diseases", *dto.ChronicDiseases)
	}
	if dto.Phone != nil {
		add("phone", *dto.Phone)
	}
	if dto.Address != nil {
		add("address", *dto.Address)
	}
	if dto.EmergencyContact != nil {
		add("emergency_contact", *dto.EmergencyContact)
	}
	if dto.EmergencyPhone != nil {
		add("emergency_phone", *dto.EmergencyPhone)
	}

	add("updated_at", time.Now())
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE patients
		SET %s
		WHERE id = $%d
	`, strings.Join(setValues, ", "), argID)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrPolicyTaken
		}
		return fmt.Errorf("ошибка обновления пациента: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *PatientRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM patients WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("ошибка удаления пациента: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *PatientRepo) List(ctx context.Context, limit, offset int) ([]domain.Patient, error) {
	query := "SELECT " + patientColumns + patientJoins + `
		ORDER BY u.last_name, u.first_name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка пациентов: %w", err)
	}
	defer rows.Close()

	patients := make([]domain.Patient, 0)
	for rows.Next() {
		p, err := r.scanPatient(rows)
		if err != nil {
			return nil, err
		}
		patients = append(patients, *p)
	}

	return patients, rows.Err()
}
