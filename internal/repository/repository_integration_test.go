//go:build integration

package repository

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"billetera-ia/internal/models"
	"billetera-ia/pkg/postgres"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func setupTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	if err := postgres.Migrate(ctx, pool, zap.NewNop()); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	t.Cleanup(pool.Close)
	return pool
}

func createTestUser(t *testing.T, repo *UserRepository) *models.User {
	t.Helper()
	now := time.Now()
	u := &models.User{
		ID:        uuid.New(),
		Name:      "Integration",
		Phone:     uuid.New().String()[:15],
		Password:  "hash",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func TestIntegration_TagUniquePerUserUnderConcurrency(t *testing.T) {
	pool := setupTestPool(t)
	users := NewUserRepository(pool, zap.NewNop())
	tags := NewTagRepository(pool, zap.NewNop())
	user := createTestUser(t, users)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := tags.Create(context.Background(), &models.Tag{
				ID: uuid.New(), Name: "Transporte", UserID: user.ID, CreatedAt: time.Now(),
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, ErrDuplicate):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if created != 1 {
		t.Errorf("created = %d, want exactly 1", created)
	}
	if conflicts != workers-1 {
		t.Errorf("conflicts = %d, want %d", conflicts, workers-1)
	}

	names, err := tags.ListNamesByUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("ListNamesByUser: %v", err)
	}
	if len(names) != 1 {
		t.Errorf("got %d rows, want 1", len(names))
	}
}

func TestIntegration_DeleteTagClearsMovementReference(t *testing.T) {
	pool := setupTestPool(t)
	ctx := context.Background()
	users := NewUserRepository(pool, zap.NewNop())
	tags := NewTagRepository(pool, zap.NewNop())
	movements := NewMovementRepository(pool, zap.NewNop())
	user := createTestUser(t, users)

	tag := &models.Tag{ID: uuid.New(), Name: "Comida", UserID: user.ID, CreatedAt: time.Now()}
	if err := tags.Create(ctx, tag); err != nil {
		t.Fatalf("create tag: %v", err)
	}

	now := time.Now()
	m := &models.Movement{
		ID: uuid.New(), Amount: decimal.RequireFromString("12500.50"), Type: models.MovementExpense,
		UserID: user.ID, TagID: &tag.ID, CreatedAt: now, UpdatedAt: now,
	}
	if err := movements.Create(ctx, m); err != nil {
		t.Fatalf("create movement: %v", err)
	}

	if err := tags.Delete(ctx, user.ID, tag.ID); err != nil {
		t.Fatalf("delete tag: %v", err)
	}

	list, err := movements.ListByUser(ctx, user.ID, 10, 0)
	if err != nil {
		t.Fatalf("list movements: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d movements, want 1", len(list))
	}
	if list[0].TagID != nil {
		t.Errorf("tag_id = %v, want NULL after tag deletion", list[0].TagID)
	}
	if !list[0].Amount.Equal(decimal.RequireFromString("12500.50")) {
		t.Errorf("amount = %s, want 12500.50", list[0].Amount)
	}
}
