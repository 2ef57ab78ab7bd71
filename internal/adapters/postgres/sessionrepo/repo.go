package sessionrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revquotes/console/internal/domain"
	"github.com/revquotes/console/internal/ports/out/sessionrepo"
)

// Repo is a Postgres implementation of sessionrepo.Repository.
//
// Expected schema:
//
//	CREATE TABLE sessions (
//	    id         text PRIMARY KEY,
//	    token      text NOT NULL,
//	    user_json  jsonb,
//	    created_at timestamptz NOT NULL,
//	    updated_at timestamptz NOT NULL
//	);
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// userRow is the JSON shape stored in user_json.
type userRow struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     *string `json:"phone,omitempty"`
}

func (r *Repo) Put(ctx context.Context, rec sessionrepo.Record) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	userJSON, err := encodeUser(rec.User)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO sessions (id, token, user_json, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET
			token = EXCLUDED.token,
			user_json = EXCLUDED.user_json,
			created_at = EXCLUDED.created_at,
			updated_at = EXCLUDED.updated_at
	`,
		string(rec.ID),
		rec.Token,
		userJSON,
		rec.CreatedAt.UTC(),
		rec.UpdatedAt.UTC(),
	)
	return err
}

func (r *Repo) Get(ctx context.Context, id domain.SessionID) (sessionrepo.Record, error) {
	if r.pool == nil {
		return sessionrepo.Record{}, errors.New("nil postgres pool")
	}
	row := r.pool.QueryRow(ctx, `
		SELECT token, user_json, created_at, updated_at
		FROM sessions
		WHERE id = $1
	`, string(id))

	var (
		rec      sessionrepo.Record
		userJSON []byte
	)
	rec.ID = id
	if err := row.Scan(&rec.Token, &userJSON, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sessionrepo.Record{}, sessionrepo.ErrNotFound
		}
		return sessionrepo.Record{}, err
	}
	user, err := decodeUser(userJSON)
	if err != nil {
		return sessionrepo.Record{}, err
	}
	rec.User = user
	rec.CreatedAt = rec.CreatedAt.UTC()
	rec.UpdatedAt = rec.UpdatedAt.UTC()
	return rec, nil
}

func (r *Repo) UpdateUser(ctx context.Context, id domain.SessionID, user domain.UserProfile, updatedAt time.Time) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	userJSON, err := encodeUser(&user)
	if err != nil {
		return err
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE sessions
		SET user_json = $2,
		    updated_at = $3
		WHERE id = $1
	`, string(id), userJSON, updatedAt.UTC())
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return sessionrepo.ErrNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id domain.SessionID) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	_, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, string(id))
	return err
}

func encodeUser(u *domain.UserProfile) ([]byte, error) {
	if u == nil {
		return nil, nil
	}
	b, err := json.Marshal(userRow{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
	})
	if err != nil {
		return nil, fmt.Errorf("encode session user: %w", err)
	}
	return b, nil
}

func decodeUser(b []byte) (*domain.UserProfile, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var row userRow
	if err := json.Unmarshal(b, &row); err != nil {
		return nil, fmt.Errorf("decode session user: %w", err)
	}
	return &domain.UserProfile{
		ID:        row.ID,
		Email:     row.Email,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Phone:     row.Phone,
	}, nil
}
