package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clinic/internal/domain"
)

type DoctorRepo struct {
	db *pgxpool.Pool
}

func NewDoctorRepository(db *pgxpool.Pool) *DoctorRepo {
	return &DoctorRepo{
		db: db,
	}
}

const doctorColumns = `
	d.id, d.user_id, d.first_name, d.last_name, d.middle_name,
	d.specialization_id, d.department_id, d.category, d.experience_years,
	d.education, d.qualifications, d.phone, d.email, d.photo_url, d.bio,
	d.is_active, d.consultation_duration, d.consultation_price,
	d.display_order, d.created_at,
	s.name AS specialization_name,
	COALESCE(dep.name, '') AS department_name,
	COALESCE((SELECT AVG(r.rating) FROM reviews r WHERE r.doctor_id = d.id AND r.is_published), 0) AS rating
`

const doctorJoins = `
	FROM doctors d
	JOIN specializations s ON s.id = d.specialization_id
	LEFT JOIN departments dep ON dep.id = d.department_id
`

func (r *DoctorRepo) Create(ctx context.Context, userID int64, dto domain.CreateDoctorDTO) (int64, error) {
	query := `
		INSERT INTO doctors (
			user_id, first_name, last_name, middle_name, specialization_id,
			department_id, category, experience_years, education, qualifications,
			phone, email, bio, is_active, consultation_duration, consultation_price,
			display_order, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, true, $14, $15, 0, $16)
		RETURNING id
	`

	category := dto.Category
	if category == "" {
		category = domain.DoctorCategoryNone
	}
	duration := dto.ConsultationDuration
	if duration == 0 {
		duration = 30
	}

	var id int64
	err := r.db.QueryRow(ctx, query,
		userID,
		dto.FirstName,
		dto.LastName,
		dto.MiddleName,
		dto.SpecializationID,
		dto.DepartmentID,
		category,
		dto.ExperienceYears,
		dto.Education,
		dto.Qualifications,
		dto.Phone,
		dto.Email,
		dto.Bio,
		duration,
		dto.ConsultationPrice,
		time.Now(),
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания врача: %w", err)
	}

	return id, nil
}

func (r *DoctorRepo) GetByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	query := "SELECT " + doctorColumns + doctorJoins + " WHERE d.id = $1"
	return r.scanDoctor(r.db.QueryRow(ctx, query, id))
}

func (r *DoctorRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Doctor, error) {
	query := "SELECT " + doctorColumns + doctorJoins + " WHERE d.user_id = $1"
	return r.scanDoctor(r.db.QueryRow(ctx, query, userID))
}

func (r *DoctorRepo) scanDoctor(row pgx.Row) (*domain.Doctor, error) {
	var d domain.Doctor
	err := row.Scan(
		&d.ID,
		&d.UserID,
		&d.FirstName,
		&d.LastName,
		&d.MiddleName,
		&d.SpecializationID,
		&d.DepartmentID,
		&d.Category,
		&d.ExperienceYears,
		&d.Education,
		&d.Qualifications,
		&d.Phone,
		&d.Email,
		&d.PhotoURL,
		&d.Bio,
		&d.IsActive,
		&d.ConsultationDuration,
		&d.ConsultationPrice,
		&d.DisplayOrder,
		&d.CreatedAt,
		&d.SpecializationName,
		&d.DepartmentName,
		&d.Rating,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения врача: %w", err)
	}
	return &d, nil
}

func (r *DoctorRepo) Update(ctx context.Context, id int64, dto domain.UpdateDoctorDTO) error {
	setValues := make([]string, 0)
	args := make([]interface{}, 0)
	argID := 1

	add := func(column string, value interface{}) {
		setValues = append(setValues, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if dto.FirstName != nil {
		add("first_name", *dto.FirstName)
	}
	if dto.LastName != nil {
		add("last_name", *dto.LastName)
	}
	if dto.MiddleName != nil {
		add("middle_name", *dto.MiddleName)
	}
	if dto.SpecializationID != nil {
		add("specialization_id", *dto.SpecializationID)
	}
	if dto.DepartmentID != nil {
		add("department_id", *dto.DepartmentID)
	}
	if dto.Category != nil {
		add("category", *dto.Category)
	}
	if dto.ExperienceYears != nil {
		add("experience_years", *dto.ExperienceYears)
	}
	if dto.Education != nil {
		add("education", *dto.Education)
	}
	if dto.Qualifications != nil {
		add("qualifications", *dto.Qualifications)
	}
	if dto.Phone != nil {
		add("phone", *dto.Phone)
	}
	if dto.Email != nil {
		add("email", *dto.Email)
	}
	if dto.Bio != nil {
		add("bio", *dto.Bio)
	}
	if dto.IsActive != nil {
		add("is_active", *dto.IsActive)
	}
	if dto.ConsultationDuration != nil {
		add("consultation_duration", *dto.ConsultationDuration)
	}
	if dto.ConsultationPrice != nil {
		add("consultation_price", *dto.ConsultationPrice)
	}
	if dto.DisplayOrder != nil {
		add("display_order", *dto.DisplayOrder)
	}

	if len(setValues) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE doctors
		SET %s
		WHERE id = $%d
	`, strings.Join(setValues, ", "), argID)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления врача: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *DoctorRepo) UpdatePhoto(ctx context.Context, id int64, photoURL string) error {
	tag, err := r.db.Exec(ctx, "UPDATE doctors SET photo_url = $1 WHERE id = $2", photoURL, id)
	if err != nil {
		return fmt.Errorf("ошибка обновления фото врача: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *DoctorRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM doctors WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("ошибка удаления врача: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *DoctorRepo) List(ctx context.Context, filter domain.DoctorFilter) ([]domain.Doctor, error) {
	where, args := doctorConditions(filter)
	argID := len(args) + 1

	query := fmt.Sprintf(`
		SELECT %s %s %s
		ORDER BY d.display_order, d.last_name, d.first_name
		LIMIT $%d OFFSET $%d
	`, doctorColumns, doctorJoins, where, argID, argID+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка врачей: %w", err)
	}
	defer rows.Close()

	doctors := make([]domain.Doctor, 0)
	for rows.Next() {
		d, err := r.scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		doctors = append(doctors, *d)
	}

	return doctors, rows.Err()
}

func (r *DoctorRepo) CountByFilter(ctx context.Context, filter domain.DoctorFilter) (int, error) {
	where, args := doctorConditions(filter)

	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM doctors d "+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта врачей: %w", err)
	}

	return count, nil
}

func doctorConditions(filter domain.DoctorFilter) (string, []interface{}) {
	conditions := make([]string, 0)
	args := make([]interface{}, 0)
	argID := 1

	if filter.SpecializationID != nil {
		conditions = append(conditions, fmt.Sprintf("d.specialization_id = $%d", argID))
		args = append(args, *filter.SpecializationID)
		argID++
	}
	if filter.DepartmentID != nil {
		conditions = append(conditions, fmt.Sprintf("d.department_id = $%d", argID))
		args = append(args, *filter.DepartmentID)
		argID++
	}
	if filter.OnlyActive {
		conditions = append(conditions, "d.is_active")
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(d.last_name ILIKE $%d OR d.first_name ILIKE $%d)", argID, argID))
		args = append(args, "%"+filter.Search+"%")
		argID++
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}
