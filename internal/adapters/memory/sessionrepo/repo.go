package sessionrepo

import (
	"context"
	"sync"
	"time"

	"github.com/revquotes/console/internal/domain"
	"github.com/revquotes/console/internal/ports/out/sessionrepo"
)

// Repo is an in-memory implementation of sessionrepo.Repository.
// It is safe for concurrent use. This is the single-tab development
// default; redis/postgres back it for real deployments.
type Repo struct {
	mu sync.RWMutex

	byID map[domain.SessionID]sessionrepo.Record
}

func NewRepo() *Repo {
	return &Repo{
		byID: make(map[domain.SessionID]sessionrepo.Record),
	}
}

func (r *Repo) Put(ctx context.Context, rec sessionrepo.Record) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[rec.ID] = cloneRecord(rec)
	return nil
}

func (r *Repo) Get(ctx context.Context, id domain.SessionID) (sessionrepo.Record, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byID[id]
	if !ok {
		return sessionrepo.Record{}, sessionrepo.ErrNotFound
	}
	return cloneRecord(rec), nil
}

func (r *Repo) UpdateUser(ctx context.Context, id domain.SessionID, user domain.UserProfile, updatedAt time.Time) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.byID[id]
	if !ok {
		return sessionrepo.ErrNotFound
	}
	u := user
	u.Phone = cloneStringPtr(user.Phone)
	rec.User = &u
	rec.UpdatedAt = updatedAt.UTC()
	r.byID[id] = rec
	return nil
}

func (r *Repo) Delete(ctx context.Context, id domain.SessionID) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func cloneRecord(rec sessionrepo.Record) sessionrepo.Record {
	out := rec
	if rec.User != nil {
		u := *rec.User
		u.Phone = cloneStringPtr(rec.User.Phone)
		out.User = &u
	}
	return out
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
