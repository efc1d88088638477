package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercato-api/mercato/internal/domain"
	"github.com/mercato-api/mercato/internal/platform/postgres"
	"github.com/mercato-api/mercato/internal/store"
	"github.com/mercato-api/mercato/internal/testdb"
)

func TestUserStore_Integration(t *testing.T) {
	db := testdb.Connect(t)
	testdb.SetupSchema(t, db)

	ctx := context.Background()

	t.Run("create and read back a local user", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			users := postgres.NewUserStore(tx, nil)

			user := &domain.User{Email: "buyer@example.com", HashedPassword: "digest"}
			require.NoError(t, users.Create(ctx, user))
			assert.NotZero(t, user.ID)

			byID, err := users.GetByID(ctx, user.ID)
			require.NoError(t, err)
			assert.Equal(t, "buyer@example.com", byID.Email)
			assert.Equal(t, "digest", byID.HashedPassword)
			assert.Empty(t, byID.GoogleID)

			byEmail, err := users.GetByEmail(ctx, "buyer@example.com")
			require.NoError(t, err)
			assert.Equal(t, user.ID, byEmail.ID)
		})
	})

	t.Run("duplicate email maps to ErrEmailExists", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			users := postgres.NewUserStore(tx, nil)

			require.NoError(t, users.Create(ctx,
				&domain.User{Email: "dup@example.com", HashedPassword: "digest"}))

			err := users.Create(ctx,
				&domain.User{Email: "dup@example.com", HashedPassword: "other"})
			assert.ErrorIs(t, err, store.ErrEmailExists)
			assert.ErrorIs(t, err, store.ErrDuplicate)
		})
	})

	t.Run("duplicate google identity maps to ErrGoogleIDExists", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			users := postgres.NewUserStore(tx, nil)

			require.NoError(t, users.Create(ctx,
				&domain.User{Email: "first@example.com", GoogleID: "sub-1"}))

			err := users.Create(ctx,
				&domain.User{Email: "second@example.com", GoogleID: "sub-1"})
			assert.ErrorIs(t, err, store.ErrGoogleIDExists)
		})
	})

	t.Run("lookup by google identity", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			users := postgres.NewUserStore(tx, nil)

			created := &domain.User{Email: "oauth@example.com", GoogleID: "sub-42"}
			require.NoError(t, users.Create(ctx, created))

			found, err := users.GetByGoogleID(ctx, "sub-42")
			require.NoError(t, err)
			assert.Equal(t, created.ID, found.ID)
			assert.Empty(t, found.HashedPassword)

			_, err = users.GetByGoogleID(ctx, "sub-unknown")
			assert.ErrorIs(t, err, store.ErrUserNotFound)
		})
	})

	t.Run("missing user maps to ErrUserNotFound", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			users := postgres.NewUserStore(tx, nil)

			_, err := users.GetByID(ctx, 999999)
			assert.ErrorIs(t, err, store.ErrUserNotFound)

			err = users.Update(ctx,
				&domain.User{ID: 999999, Email: "ghost@example.com", HashedPassword: "x"})
			assert.ErrorIs(t, err, store.ErrUserNotFound)
		})
	})
}
