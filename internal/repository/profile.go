package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AyaBm214/PremiumConnect/internal/model"
	"github.com/jmoiron/sqlx"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	ByUserID(ctx context.Context, userID string) (*model.UserProfile, error)
	Upsert(ctx context.Context, profile *model.UserProfile) error
}

type profileRow struct {
	UserID         string    `db:"user_id"`
	FullName       string    `db:"full_name"`
	Email          string    `db:"email"`
	PhoneNumber    string    `db:"phone_number"`
	BusinessNumber string    `db:"business_number"`
	Documents      string    `db:"documents"`
	TaxConfirmed   bool      `db:"tax_confirmed"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) ByUserID(ctx context.Context, userID string) (*model.UserProfile, error) {
	var row profileRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM user_profiles WHERE user_id = $1`, userID)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	profile := &model.UserProfile{
		UserID:         row.UserID,
		FullName:       row.FullName,
		Email:          row.Email,
		PhoneNumber:    row.PhoneNumber,
		BusinessNumber: row.BusinessNumber,
		TaxConfirmed:   row.TaxConfirmed,
		UpdatedAt:      row.UpdatedAt,
	}
	if row.Documents != "" {
		err = json.Unmarshal([]byte(row.Documents), &profile.Documents)
		if err != nil {
			return nil, fmt.Errorf("failed to decode profile documents: %w", err)
		}
	}
	return profile, nil
}

func (r *profileRepository) Upsert(ctx context.Context, profile *model.UserProfile) error {
	docs, err := json.Marshal(profile.Documents)
	if err != nil {
		return fmt.Errorf("failed to encode profile documents: %w", err)
	}
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = time.Now()
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO user_profiles (user_id, full_name, email, phone_number, business_number, documents, tax_confirmed, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = excluded.full_name,
			email = excluded.email,
			phone_number = excluded.phone_number,
			business_number = excluded.business_number,
			documents = excluded.documents,
			tax_confirmed = excluded.tax_confirmed,
			updated_at = excluded.updated_at
	`, profile.UserID, profile.FullName, profile.Email, profile.PhoneNumber, profile.BusinessNumber,
		string(docs), profile.TaxConfirmed, profile.UpdatedAt)

	return err
}
