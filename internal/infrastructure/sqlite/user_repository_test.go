package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/martijn/miniblog/internal/core/domain"
)

func setupUserRepoTest(t *testing.T) (*DB, func()) {
	t.Helper()

	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	return db, func() { db.Close() }
}

func TestFindByUsernameAbsentIsNotAnError(t *testing.T) {
	db, cleanup := setupUserRepoTest(t)
	defer cleanup()

	repo := NewUserRepository(db)
	user, err := repo.FindByUsername(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("expected no error for absent user, got %v", err)
	}
	if user != nil {
		t.Errorf("expected nil user, got %v", user)
	}
}

func TestSaveUpserts(t *testing.T) {
	db, cleanup := setupUserRepoTest(t)
	defer cleanup()
	ctx := context.Background()

	repo := NewUserRepository(db)
	user := domain.NewUser("alice", "hash1")
	if err := repo.Save(ctx, user); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	user.Password = "hash2"
	user.StartSession("tok-1", time.Now().Add(15*time.Minute))
	if err := repo.Save(ctx, user); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	stored, err := repo.FindByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if stored.Password != "hash2" {
		t.Errorf("expected updated password hash, got %s", stored.Password)
	}
	if stored.SessionToken == nil || *stored.SessionToken != "tok-1" {
		t.Errorf("expected session token tok-1, got %v", stored.SessionToken)
	}

	users, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(users) != 1 {
		t.Errorf("expected upsert to keep a single row, got %d", len(users))
	}
}

func TestFindBySessionTokenExpiryFilter(t *testing.T) {
	base := time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC)
	expiry := base.Add(900 * time.Second)

	tests := []struct {
		name       string
		token      string
		now        time.Time
		expectUser bool
	}{
		{"live token before expiry", "tok-1", base.Add(1 * time.Second), true},
		{"live token just before expiry", "tok-1", expiry.Add(-1 * time.Second), true},
		{"token at exact expiry is stale", "tok-1", expiry, false},
		{"token after expiry is stale", "tok-1", expiry.Add(1 * time.Second), false},
		{"unknown token", "tok-other", base.Add(1 * time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, cleanup := setupUserRepoTest(t)
			defer cleanup()
			ctx := context.Background()

			repo := NewUserRepository(db)
			user := domain.NewUser("alice", "hash")
			user.StartSession("tok-1", expiry)
			if err := repo.Save(ctx, user); err != nil {
				t.Fatalf("save failed: %v", err)
			}

			found, err := repo.FindBySessionToken(ctx, tt.token, tt.now)
			if err != nil {
				t.Fatalf("lookup failed: %v", err)
			}
			if tt.expectUser && (found == nil || found.Username != "alice") {
				t.Errorf("expected to find alice, got %v", found)
			}
			if !tt.expectUser && found != nil {
				t.Errorf("expected no user, got %s", found.Username)
			}
		})
	}
}

func TestFindBySessionTokenIgnoresClearedSessions(t *testing.T) {
	db, cleanup := setupUserRepoTest(t)
	defer cleanup()
	ctx := context.Background()

	repo := NewUserRepository(db)
	user := domain.NewUser("alice", "hash")
	user.StartSession("tok-1", time.Now().Add(15*time.Minute))
	if err := repo.Save(ctx, user); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	user.EndSession()
	if err := repo.Save(ctx, user); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	found, err := repo.FindBySessionToken(ctx, "tok-1", time.Now())
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if found != nil {
		t.Errorf("expected cleared session to be unresolvable, got %s", found.Username)
	}
}
