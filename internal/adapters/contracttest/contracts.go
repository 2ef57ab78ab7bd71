package contracttest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/revquotes/console/internal/domain"
	sessionrepoport "github.com/revquotes/console/internal/ports/out/sessionrepo"
)

type CleanupFunc = func()

type SessionRepoFactory func(t *testing.T) (sessionrepoport.Repository, CleanupFunc)

// RunSessionRepo exercises the sessionrepo.Repository contract. Every
// adapter (memory, redis, postgres) must pass this suite unchanged.
func RunSessionRepo(t *testing.T, newRepo SessionRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	// Missing session.
	if _, err := repo.Get(ctx, domain.SessionID("nope")); !errors.Is(err, sessionrepoport.ErrNotFound) {
		t.Fatalf("Get missing: err=%v, want ErrNotFound", err)
	}

	// Put/Get roundtrip.
	phone := "+2348000000000"
	rec := sessionrepoport.Record{
		ID:    domain.SessionID("sess-1"),
		Token: "tok-abc",
		User: &domain.UserProfile{
			ID:        "u-1",
			Email:     "ada@example.com",
			FirstName: "Ada",
			LastName:  "Obi",
			Phone:     &phone,
		},
		CreatedAt: time.Unix(100, 0).UTC(),
		UpdatedAt: time.Unix(100, 0).UTC(),
	}
	if err := repo.Put(ctx, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := repo.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Token != "tok-abc" || got.User == nil || got.User.Email != "ada@example.com" {
		t.Fatalf("unexpected record: %+v", got)
	}
	if got.User.Phone == nil || *got.User.Phone != phone {
		t.Fatalf("phone not preserved: %+v", got.User)
	}
	if !got.CreatedAt.Equal(rec.CreatedAt) {
		t.Fatalf("createdAt: got %v want %v", got.CreatedAt, rec.CreatedAt)
	}

	// Put overwrites.
	rec2 := rec
	rec2.Token = "tok-def"
	rec2.UpdatedAt = time.Unix(200, 0).UTC()
	if err := repo.Put(ctx, rec2); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}
	got, err = repo.Get(ctx, rec.ID)
	if err != nil || got.Token != "tok-def" {
		t.Fatalf("expected overwritten token, got %+v err=%v", got, err)
	}

	// UpdateUser replaces the profile only.
	newUser := domain.UserProfile{ID: "u-1", Email: "ada@example.com", FirstName: "Adaeze", LastName: "Obi"}
	if err := repo.UpdateUser(ctx, rec.ID, newUser, time.Unix(300, 0).UTC()); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	got, err = repo.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get after UpdateUser: %v", err)
	}
	if got.Token != "tok-def" {
		t.Fatalf("UpdateUser must not touch token, got %q", got.Token)
	}
	if got.User == nil || got.User.FirstName != "Adaeze" || got.User.Phone != nil {
		t.Fatalf("profile not replaced: %+v", got.User)
	}
	if !got.UpdatedAt.Equal(time.Unix(300, 0).UTC()) {
		t.Fatalf("updatedAt: got %v", got.UpdatedAt)
	}

	// UpdateUser on a missing session.
	if err := repo.UpdateUser(ctx, domain.SessionID("nope"), newUser, time.Unix(300, 0).UTC()); !errors.Is(err, sessionrepoport.ErrNotFound) {
		t.Fatalf("UpdateUser missing: err=%v, want ErrNotFound", err)
	}

	// Delete is idempotent.
	if err := repo.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, rec.ID); !errors.Is(err, sessionrepoport.ErrNotFound) {
		t.Fatalf("Get after Delete: err=%v, want ErrNotFound", err)
	}
	if err := repo.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete twice: %v", err)
	}
}
