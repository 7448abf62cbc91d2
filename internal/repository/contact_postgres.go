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

type ContactRepo struct {
	db *pgxpool.Pool
}

func NewContactRepository(db *pgxpool.Pool) *ContactRepo {
	return &ContactRepo{
		db: db,
	}
}

func (r *ContactRepo) Create(ctx context.Context, dto domain.CreateContactDTO) (int64, error) {
	query := `
		INSERT INTO contacts (type, label, value, icon, is_active, display_order, created_at)
		VALUES ($1, $2, $3, $4, true, 0, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, dto.Type, dto.Label, dto.Value, dto.Icon, time.Now()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания контакта: %w", err)
	}

	return id, nil
}

func (r *ContactRepo) GetByID(ctx context.Context, id int64) (*domain.Contact, error) {
	query := `
		SELECT id, type, label, value, icon, is_active, display_order, created_at
		FROM contacts
		WHERE id = $1
	`

	var c domain.Contact
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Type, &c.Label, &c.Value, &c.Icon, &c.IsActive, &c.DisplayOrder, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения контакта: %w", err)
	}

	return &c, nil
}

func (r *ContactRepo) Update(ctx context.Context, id int64, dto domain.UpdateContactDTO) error {
	setValues := make([]string, 0)
	args := make([]interface{}, 0)
	argID := 1

	add := func(column string, value interface{}) {
		setValues = append(setValues, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if dto.Type != nil {
		add("type", *dto.Type)
	}
	if dto.Label != nil {
		add("label", *dto.Label)
	}
	if dto.Value != nil {
		add("value", *dto.Value)
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
		UPDATE contacts
		SET %s
		WHERE id = $%d
	`, strings.Join(setValues, ", "), argID)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления контакта: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *ContactRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM contacts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("ошибка удаления контакта: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *ContactRepo) List(ctx context.Context, onlyActive bool) ([]domain.Contact, error) {
	query := `
		SELECT id, type, label, value, icon, is_active, display_order, created_at
		FROM contacts
	`
	if onlyActive {
		query += " WHERE is_active"
	}
	query += " ORDER BY display_order, id"

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка контактов: %w", err)
	}
	defer rows.Close()

	contacts := make([]domain.Contact, 0)
	for rows.Next() {
		var c domain.Contact
		err := rows.Scan(&c.ID, &c.Type, &c.Label, &c.Value, &c.Icon, &c.IsActive, &c.DisplayOrder, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования контакта: %w", err)
		}
		contacts = append(contacts, c)
	}

	return contacts, rows.Err()
}
