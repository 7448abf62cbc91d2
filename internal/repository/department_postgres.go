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

type DepartmentRepo struct {
	db *pgxpool.Pool
}

func NewDepartmentRepository(db *pgxpool.Pool) *DepartmentRepo {
	return &DepartmentRepo{
		db: db,
	}
}

func (r *DepartmentRepo) Create(ctx context.Context, dto domain.CreateDepartmentDTO) (int64, error) {
	query := `
		INSERT INTO departments (name, description, floor, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, dto.Name, dto.Description, dto.Floor, dto.Phone, time.Now()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания отделения: %w", err)
	}

	return id, nil
}

func (r *DepartmentRepo) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	query := `
		SELECT id, name, description, floor, phone, created_at, updated_at
		FROM departments
		WHERE id = $1
	`

	var department domain.Department
	err := r.db.QueryRow(ctx, query, id).Scan(
		&department.ID,
		&department.Name,
		&department.Description,
		&department.Floor,
		&department.Phone,
		&department.CreatedAt,
		&department.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения отделения: %w", err)
	}

	return &department, nil
}

func (r *DepartmentRepo) Update(ctx context.Context, id int64, dto domain.UpdateDepartmentDTO) error {
	setValues := make([]string, 0)
	args := make([]interface{}, 0)
	argID := 1

	if dto.Name != nil {
		setValues = append(setValues, fmt.Sprintf("name = $%d", argID))
		args = append(args, *dto.Name)
		argID++
	}
	if dto.Description != nil {
		setValues = append(setValues, fmt.Sprintf("description = $%d", argID))
		args = append(args, *dto.Description)
		argID++
	}
	if dto.Floor != nil {
		setValues = append(setValues, fmt.Sprintf("floor = $%d", argID))
		args = append(args, *dto.Floor)
		argID++
	}
	if dto.Phone != nil {
		setValues = append(setValues, fmt.Sprintf("phone = $%d", argID))
		args = append(args, *dto.Phone)
		argID++
	}

	setValues = append(setValues, fmt.Sprintf("updated_at = $%d", argID))
	args = append(args, time.Now())
	argID++

	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE departments
		SET %s
		WHERE id = $%d
	`, strings.Join(setValues, ", "), argID)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления отделения: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *DepartmentRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM departments WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("ошибка удаления отделения: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *DepartmentRepo) List(ctx context.Context, limit, offset int) ([]domain.Department, error) {
	query := `
		SELECT id, name, description, floor, phone, created_at, updated_at
		FROM departments
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка отделений: %w", err)
	}
	defer rows.Close()

	departments := make([]domain.Department, 0)
	for rows.Next() {
		var d domain.Department
		err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.Floor, &d.Phone, &d.CreatedAt, &d.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования отделения: %w", err)
		}
		departments = append(departments, d)
	}

	return departments, rows.Err()
}
