package cart_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aureliefinejewels/storefront-api/internal/cart"
	"github.com/aureliefinejewels/storefront-api/internal/models"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPersisterTest(t *testing.T) (*cart.RedisPersister, redismock.ClientMock) {
	t.Helper()

	client, mock := redismock.NewClientMock()

	t.Cleanup(func() {
		client.Close()
	})

	return cart.NewRedisPersister(client, time.Hour), mock
}

func TestRedisPersister_Save(t *testing.T) {
	ctx := context.Background()

	items := []models.CartItem{
		{ProductID: 1, Name: "Solitaire Ring", UnitPriceCents: 500000, Quantity: 2},
	}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		persister, mock := setupPersisterTest(t)

		data, err := json.Marshal(items)
		require.NoError(t, err)

		mock.ExpectSet("cart:session-a", data, time.Hour).SetVal("OK")

		// Act
		err = persister.Save(ctx, "session-a", items)

		// Assert
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		persister, mock := setupPersisterTest(t)

		data, err := json.Marshal(items)
		require.NoError(t, err)

		mock.ExpectSet("cart:session-a", data, time.Hour).SetErr(errors.New("connection refused"))

		// Act
		err = persister.Save(ctx, "session-a", items)

		// Assert
		assert.Error(t, err)
	})
}

func TestRedisPersister_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		persister, mock := setupPersisterTest(t)

		stored := []models.CartItem{
			{ProductID: 1, Name: "Solitaire Ring", UnitPriceCents: 500000, Quantity: 2},
		}
		data, err := json.Marshal(stored)
		require.NoError(t, err)

		mock.ExpectGet("cart:session-a").SetVal(string(data))

		// Act
		items, err := persister.Load(ctx, "session-a")

		// Assert
		assert.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, int64(2), items[0].Quantity)
	})

	t.Run("No Snapshot Yields Empty", func(t *testing.T) {
		// Arrange
		persister, mock := setupPersisterTest(t)
		mock.ExpectGet("cart:session-a").RedisNil()

		// Act
		items, err := persister.Load(ctx, "session-a")

		// Assert
		assert.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		persister, mock := setupPersisterTest(t)
		mock.ExpectGet("cart:session-a").SetErr(errors.New("connection refused"))

		// Act
		items, err := persister.Load(ctx, "session-a")

		// Assert
		assert.Error(t, err)
		assert.Nil(t, items)
	})
}

func TestRedisPersister_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		persister, mock := setupPersisterTest(t)
		mock.ExpectDel("cart:session-a").SetVal(1)

		// Act
		err := persister.Delete(ctx, "session-a")

		// Assert
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		persister, mock := setupPersisterTest(t)
		mock.ExpectDel("cart:session-a").SetErr(errors.New("connection refused"))

		// Act
		err := persister.Delete(ctx, "session-a")

		// Assert
		assert.Error(t, err)
	})
}
