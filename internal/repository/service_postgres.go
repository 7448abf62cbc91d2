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

type ServiceRepo struct {
	db *pgxpool.Pool
}

func NewServiceRepository(db *pgxpool.Pool) *ServiceRepo {
	return &ServiceRepo{
		db: db,
	}
}

const serviceColumns = `
	id, name, category, description, short_description, price, is_free,
	duration, icon, image_url, is_active, display_order, created_at
`

func (r *ServiceRepo) Create(ctx context.Context, dto domain.CreateServiceDTO) (int64, error) {
	query := `
		INSERT INTO services (
			name, category, description, short_description, price, is_free,
			duration, icon, is_active, display_order, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, true, 0, $9)
		RETURNING id
	`

	duration := dto.Duration
	if duration == 0 {
		duration = 30
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx, query,
		dto.Name,
		dto.Category,
		dto.Description,
		dto.ShortDescription,
		dto.Price,
		dto.IsFree,
		duration,
		dto.Icon,
		time.Now(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания услуги: %w", err)
	}

	for _, doctorID := range dto.DoctorIDs {
		_, err := tx.Exec(ctx,
			"INSERT INTO doctor_services (doctor_id, service_id) VALUES ($1, $2)",
			doctorID, id,
		)
		if err != nil {
			return 0, fmt.Errorf("ошибка привязки врача к услуге: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("ошибка коммита транзакции: %w", err)
	}

	return id, nil
}

func (r *ServiceRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	query := "SELECT " + serviceColumns + " FROM services WHERE id = $1"

	var s domain.Service
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.Name,
		&s.Category,
		&s.Description,
		&s.ShortDescription,
		&s.Price,
		&s.IsFree,
		&s.Duration,
		&s.Icon,
		&s.ImageURL,
		&s.IsActive,
		&s.DisplayOrder,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения услуги: %w", err)
	}

	return &s, nil
}

func (r *ServiceRepo) Update(ctx context.Context, id int64, dto domain.UpdateServiceDTO) error {
	setValues := make([]string, 0)
	args := make([]interface{}, 0)
	argID := 1

	add := func(column string, value interface{}) {
		setValues = append(setValues, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if dto.Name != nil {
		add("name", *dto.Name)
	}
	if dto.Category != nil {
		add("category", *dto.Category)
	}
	if dto.Description != nil {
		add("description", *dto.Description)
	}
	if dto.ShortDescription != nil {
		add("short_description", *dto.ShortDescription)
	}
	if dto.Price != nil {
		add("price", *dto.Price)
	}
	if dto.IsFree != nil {
		add("is_free", *dto.IsFree)
	}
	if dto.Duration != nil {
		add("duration", *dto.Duration)
	}
	if dto.Icon != nil {
		add("icon", *dto.Icon)
	}
	if dto.IsActive != nil {
		add("is_active", *dto.IsActive)
	}
	if dto.DisplayOrder != nil {
		add("display_order", *dto.DisplayOrder)
	}

	if len(setValues) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE services
		SET %s
		WHERE id = $%d
	`, strings.Join(setValues, ", "), argID)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления услуги: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *ServiceRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM services WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("ошибка удаления услуги: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *ServiceRepo) List(ctx context.Context, filter domain.ServiceFilter) ([]domain.Service, error) {
	where, args := serviceConditions(filter)
	argID := len(args) + 1

	query := fmt.Sprintf(`
		SELECT %s FROM services s
		%s
		ORDER BY s.display_order, s.name
		LIMIT $%d OFFSET $%d
	`, prefixColumns(serviceColumns, "s"), where, argID, argID+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка услуг: %w", err)
	}
	defer rows.Close()

	services := make([]domain.Service, 0)
	for rows.Next() {
		var s domain.Service
		err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Category,
			&s.Description,
			&s.ShortDescription,
			&s.Price,
			&s.IsFree,
			&s.Duration,
			&s.Icon,
			&s.ImageURL,
			&s.IsActive,
			&s.DisplayOrder,
			&s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования услуги: %w", err)
		}
		services = append(services, s)
	}

	return services, rows.Err()
}

func (r *ServiceRepo) CountByFilter(ctx context.Context, filter domain.ServiceFilter) (int, error) {
	where, args := serviceConditions(filter)

	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM services s "+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта услуг: %w", err)
	}

	return count, nil
}

func (r *ServiceRepo) SetDoctors(ctx context.Context, serviceID int64, doctorIDs []int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM doctor_services WHERE service_id = $1", serviceID); err != nil {
		return fmt.Errorf("ошибка очистки привязок услуги: %w", err)
	}

	for _, doctorID := range doctorIDs {
		_, err := tx.Exec(ctx,
			"INSERT INTO doctor_services (doctor_id, service_id) VALUES ($1, $2)",
			doctorID, serviceID,
		)
		if err != nil {
			return fmt.Errorf("ошибка привязки врача к услуге: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *ServiceRepo) GetDoctorIDs(ctx context.Context, serviceID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		"SELECT doctor_id FROM doctor_services WHERE service_id = $1 ORDER BY doctor_id",
		serviceID,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения врачей услуги: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("ошибка сканирования привязки: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func serviceConditions(filter domain.ServiceFilter) (string, []interface{}) {
	conditions := make([]string, 0)
	args := make([]interface{}, 0)
	argID := 1

	if filter.Category != nil {
		conditions = append(conditions, fmt.Sprintf("s.category = $%d", argID))
		args = append(args, *filter.Category)
		argID++
	}
	if filter.IsFree != nil {
		conditions = append(conditions, fmt.Sprintf("s.is_free = $%d", argID))
		args = append(args, *filter.IsFree)
		argID++
	}
	if filter.DoctorID != nil {
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM doctor_services ds WHERE ds.service_id = s.id AND ds.doctor_id = $%d)", argID))
		args = append(args, *filter.DoctorID)
		argID++
	}
	if filter.OnlyActive {
		conditions = append(conditions, "s.is_active")
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("s.name ILIKE $%d", argID))
		args = append(args, "%"+filter.Search+"%")
		argID++
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// prefixColumns добавляет алиас таблицы к списку колонок.
func prefixColumns(columns, alias string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
