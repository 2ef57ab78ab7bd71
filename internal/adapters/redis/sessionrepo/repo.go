package sessionrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/revquotes/console/internal/domain"
	"github.com/revquotes/console/internal/ports/out/sessionrepo"
)

const keyPrefix = "revquotes:session:"

// Config holds Redis connection configuration.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// Repo is a Redis implementation of sessionrepo.Repository. Records are
// stored as JSON under keyPrefix+<id> with a rolling TTL; sessions expire
// server-side without any sweeper.
type Repo struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis and verifies the connection.
func New(cfg Config, ttl time.Duration) (*Repo, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return &Repo{client: client, ttl: ttl}, nil
}

// NewWithClient wraps an existing client. Used by tests (miniredis).
func NewWithClient(client *redis.Client, ttl time.Duration) *Repo {
	return &Repo{client: client, ttl: ttl}
}

func (r *Repo) Close() error { return r.client.Close() }

// record is the JSON shape stored in Redis.
type record struct {
	Token     string    `json:"token"`
	User      *userRow  `json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type userRow struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     *string `json:"phone,omitempty"`
}

func (r *Repo) Put(ctx context.Context, rec sessionrepo.Record) error {
	b, err := json.Marshal(toRecord(rec))
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return r.client.Set(ctx, keyPrefix+string(rec.ID), b, r.ttl).Err()
}

func (r *Repo) Get(ctx context.Context, id domain.SessionID) (sessionrepo.Record, error) {
	b, err := r.client.Get(ctx, keyPrefix+string(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return sessionrepo.Record{}, sessionrepo.ErrNotFound
	}
	if err != nil {
		return sessionrepo.Record{}, err
	}
	var rec record
	if err := json.Unmarshal(b, &rec); err != nil {
		return sessionrepo.Record{}, fmt.Errorf("decode session: %w", err)
	}
	return fromRecord(id, rec), nil
}

func (r *Repo) UpdateUser(ctx context.Context, id domain.SessionID, user domain.UserProfile, updatedAt time.Time) error {
	existing, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	u := user
	existing.User = &u
	existing.UpdatedAt = updatedAt.UTC()

	b, err := json.Marshal(toRecord(existing))
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	// KeepTTL: a profile refresh must not extend the session lifetime.
	return r.client.Set(ctx, keyPrefix+string(id), b, redis.KeepTTL).Err()
}

func (r *Repo) Delete(ctx context.Context, id domain.SessionID) error {
	return r.client.Del(ctx, keyPrefix+string(id)).Err()
}

func toRecord(rec sessionrepo.Record) record {
	out := record{
		Token:     rec.Token,
		CreatedAt: rec.CreatedAt.UTC(),
		UpdatedAt: rec.UpdatedAt.UTC(),
	}
	if rec.User != nil {
		out.User = &userRow{
			ID:        rec.User.ID,
			Email:     rec.User.Email,
			FirstName: rec.User.FirstName,
			LastName:  rec.User.LastName,
			Phone:     rec.User.Phone,
		}
	}
	return out
}

func fromRecord(id domain.SessionID, rec record) sessionrepo.Record {
	out := sessionrepo.Record{
		ID:        id,
		Token:     rec.Token,
		CreatedAt: rec.CreatedAt.UTC(),
		UpdatedAt: rec.UpdatedAt.UTC(),
	}
	if rec.User != nil {
		out.User = &domain.UserProfile{
			ID:        rec.User.ID,
			Email:     rec.User.Email,
			FirstName: rec.User.FirstName,
			LastName:  rec.User.LastName,
			Phone:     rec.User.Phone,
		}
	}
	return out
}
