package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/ordersdesk/ordersdesk/internal/core/domain"
)

func newMockT(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

// writeAck is the server reply to an update or delete touching n documents.
func writeAck(n int) bson.D {
	return mtest.CreateSuccessResponse(
		bson.E{Key: "n", Value: n},
		bson.E{Key: "nModified", Value: n},
	)
}

// nextID answers the counters findAndModify issued before every insert.
func nextID(name string, seq int64) bson.D {
	return mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
		{Key: "_id", Value: name},
		{Key: "seq", Value: seq},
	}})
}

func sampleOrder(id int64) *domain.Order {
	return &domain.Order{
		ID:          id,
		ClientID:    1,
		OrderDate:   time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC),
		TotalAmount: decimal.RequireFromString("10.50"),
		Status:      domain.OrderPending,
	}
}

func TestOrderRepository_UpdateAndDelete(t *testing.T) {
	mt := newMockT(t)

	mt.Run("update missing", func(mt *mtest.T) {
		mt.AddMockResponses(writeAck(0))
		repo := NewOrderRepository(mt.DB, NewClientRepository(mt.DB))
		assert.ErrorIs(mt, repo.Update(context.Background(), sampleOrder(404)), domain.ErrOrderNotFound)
	})

	mt.Run("update existing", func(mt *mtest.T) {
		mt.AddMockResponses(writeAck(1))
		repo := NewOrderRepository(mt.DB, NewClientRepository(mt.DB))
		assert.NoError(mt, repo.Update(context.Background(), sampleOrder(7)))
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		mt.AddMockResponses(writeAck(0))
		repo := NewOrderRepository(mt.DB, NewClientRepository(mt.DB))
		assert.ErrorIs(mt, repo.Delete(context.Background(), 404), domain.ErrOrderNotFound)
	})

	mt.Run("delete existing", func(mt *mtest.T) {
		mt.AddMockResponses(writeAck(1))
		repo := NewOrderRepository(mt.DB, NewClientRepository(mt.DB))
		assert.NoError(mt, repo.Delete(context.Background(), 7))
	})
}

func TestClientRepository_UpdateAndDeleteMissing(t *testing.T) {
	mt := newMockT(t)

	mt.Run("update", func(mt *mtest.T) {
		mt.AddMockResponses(writeAck(0))
		repo := NewClientRepository(mt.DB)
		err := repo.Update(context.Background(), &domain.Client{ID: 404, Name: "Ghost", Status: domain.ClientActive})
		assert.ErrorIs(mt, err, domain.ErrClientNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		mt.AddMockResponses(writeAck(0))
		repo := NewClientRepository(mt.DB)
		assert.ErrorIs(mt, repo.Delete(context.Background(), 404), domain.ErrClientNotFound)
	})
}

func TestUserRepository_Create(t *testing.T) {
	mt := newMockT(t)
	user := func() *domain.User {
		return &domain.User{Username: "alice", PasswordHash: "hash", Role: domain.RoleCustomer, CreatedAt: time.Now().UTC()}
	}

	mt.Run("assigns the next id", func(mt *mtest.T) {
		mt.AddMockResponses(nextID(collectionUsers, 3), mtest.CreateSuccessResponse())
		created, err := NewUserRepository(mt.DB).Create(context.Background(), user())
		require.NoError(mt, err)
		assert.EqualValues(mt, 3, created.ID)
		assert.Equal(mt, "alice", created.Username)
	})

	mt.Run("duplicate username", func(mt *mtest.T) {
		mt.AddMockResponses(
			nextID(collectionUsers, 4),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{
				Index:   0,
				Code:    11000,
				Message: "E11000 duplicate key error collection: ordersdesk.users index: username_1",
			}),
		)
		_, err := NewUserRepository(mt.DB).Create(context.Background(), user())
		assert.ErrorIs(mt, err, domain.ErrUserExists)
	})
}
