//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Apurer/retail-inventory-api/internal/domains/users/domain"
	"github.com/Apurer/retail-inventory-api/internal/domains/users/ports"
	"github.com/Apurer/retail-inventory-api/internal/platform/postgres/pgtest"
)

func TestRepository_CreateAndGetByEmail(t *testing.T) {
	db := pgtest.Start(t)
	repo := NewRepository(db)
	ctx := context.Background()

	user, err := domain.NewUser(uuid.New(), "alice@example.com", "secret-pass", domain.RoleAdmin, bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, user))

	fetched, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, fetched.ID)
	assert.Equal(t, domain.RoleAdmin, fetched.Role)
	assert.True(t, fetched.CheckPassword("secret-pass"))

	dup, err := domain.NewUser(uuid.New(), "alice@example.com", "other-pass", domain.RoleUser, bcrypt.MinCost)
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Create(ctx, dup), ports.ErrUserExists)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	_, err = repo.GetByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, ports.ErrUserNotFound)
}

func TestSessionStore_Lifecycle(t *testing.T) {
	db := pgtest.Start(t)
	store := NewSessionStore(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	live := domain.Session{Token: "live-token", UserID: uuid.New(), Email: "a@b", Role: domain.RoleUser, ExpiresAt: now.Add(time.Hour)}
	stale := domain.Session{Token: "stale-token", UserID: uuid.New(), Email: "c@d", Role: domain.RoleAdmin, ExpiresAt: now.Add(-time.Minute)}
	require.NoError(t, store.Save(ctx, live))
	require.NoError(t, store.Save(ctx, stale))

	fetched, err := store.Get(ctx, "live-token")
	require.NoError(t, err)
	assert.Equal(t, live.UserID, fetched.UserID)
	assert.True(t, live.ExpiresAt.Equal(fetched.ExpiresAt))

	purged, err := store.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, purged)

	_, err = store.Get(ctx, "stale-token")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)

	require.NoError(t, store.Delete(ctx, "live-token"))
	_, err = store.Get(ctx, "live-token")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}
