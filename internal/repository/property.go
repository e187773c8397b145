package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AyaBm214/PremiumConnect/internal/model"
	"github.com/jmoiron/sqlx"
)

var ErrPropertyNotFound = errors.New("property not found")

// PropertyFilter restricts a query. Empty fields match everything.
type PropertyFilter struct {
	OwnerID string
	Status  model.PropertyStatus
}

type PropertyOrder string

const (
	OrderUpdatedDesc PropertyOrder = "updated_at DESC"
	OrderCreatedDesc PropertyOrder = "created_at DESC"
)

type PropertyRepository interface {
	Create(ctx context.Context, property *model.Property) error
	ByID(ctx context.Context, id string) (*model.Property, error)
	Query(ctx context.Context, filter PropertyFilter, order PropertyOrder) ([]*model.Property, error)
	Update(ctx context.Context, property *model.Property) error
	UpdateStatus(ctx context.Context, id string, status model.PropertyStatus, progress int) error
	Delete(ctx context.Context, id string) error
}

// propertyRow is the stored shape of a property. The document lives in data
// as JSON text.
type propertyRow struct {
	ID          string    `db:"id"`
	OwnerID     string    `db:"owner_id"`
	Name        string    `db:"name"`
	Status      string    `db:"status"`
	CurrentStep int       `db:"current_step"`
	TotalSteps  int       `db:"total_steps"`
	Progress    int       `db:"progress"`
	Data        string    `db:"data"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func toRow(p *model.Property) (propertyRow, error) {
	data, err := json.Marshal(p.Data)
	if err != nil {
		return propertyRow{}, fmt.Errorf("failed to encode property data: %w", err)
	}
	return propertyRow{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Status:      string(p.Status),
		CurrentStep: p.CurrentStep,
		TotalSteps:  p.TotalSteps,
		Progress:    p.Progress,
		Data:        string(data),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

func fromRow(r propertyRow) (*model.Property, error) {
	p := &model.Property{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Name:        r.Name,
		Status:      model.PropertyStatus(r.Status),
		CurrentStep: r.CurrentStep,
		TotalSteps:  r.TotalSteps,
		Progress:    r.Progress,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if strings.TrimSpace(r.Data) != "" {
		err := json.Unmarshal([]byte(r.Data), &p.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode property %s data: %w", r.ID, err)
		}
	}
	return p, nil
}

type propertyRepository struct {
	db *sqlx.DB
}

func NewPropertyRepository(db *sqlx.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) Create(ctx context.Context, property *model.Property) error {
	row, err := toRow(property)
	if err != nil {
		return err
	}

	query := `INSERT INTO properties (id, owner_id, name, status, current_step, total_steps, progress, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = r.db.ExecContext(ctx, query,
		row.ID, row.OwnerID, row.Name, row.Status, row.CurrentStep,
		row.TotalSteps, row.Progress, row.Data, row.CreatedAt, row.UpdatedAt,
	)
	return err
}

func (r *propertyRepository) ByID(ctx context.Context, id string) (*model.Property, error) {
	var row propertyRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM properties WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromRow(row)
}

func (r *propertyRepository) Query(ctx context.Context, filter PropertyFilter, order PropertyOrder) ([]*model.Property, error) {
	var (
		where []string
		args  []any
	)
	if filter.OwnerID != "" {
		args = append(args, filter.OwnerID)
		where = append(where, fmt.Sprintf("owner_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT * FROM properties`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	switch order {
	case OrderCreatedDesc:
		query += ` ORDER BY created_at DESC, id`
	default:
		query += ` ORDER BY updated_at DESC, id`
	}

	var rows []propertyRow
	err := r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, err
	}

	properties := make([]*model.Property, 0, len(rows))
	for _, row := range rows {
		p, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}
	return properties, nil
}

// Update writes every mutable column. owner_id and created_at never change.
func (r *propertyRepository) Update(ctx context.Context, property *model.Property) error {
	row, err := toRow(property)
	if err != nil {
		return err
	}

	query := `UPDATE properties
		SET name = $1, status = $2, current_step = $3, total_steps = $4, progress = $5, data = $6, updated_at = $7
		WHERE id = $8`

	result, err := r.db.ExecContext(ctx, query,
		row.Name, row.Status, row.CurrentStep, row.TotalSteps, row.Progress, row.Data, row.UpdatedAt, row.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *propertyRepository) UpdateStatus(ctx context.Context, id string, status model.PropertyStatus, progress int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE properties SET status = $1, progress = $2, updated_at = $3 WHERE id = $4`,
		string(status), progress, time.Now(), id,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *propertyRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPropertyNotFound
	}
	return nil
}
