package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ordersdesk/ordersdesk/internal/core/domain"
	"github.com/ordersdesk/ordersdesk/internal/core/ports"
)

// OrderRepository stores orders. Reads attach clients with one batched
// lookup per call rather than a $lookup stage.
type OrderRepository struct {
	coll    *mongo.Collection
	ids     sequence
	clients *ClientRepository
}

func NewOrderRepository(db *mongo.Database, clients *ClientRepository) *OrderRepository {
	return &OrderRepository{
		coll:    db.Collection(collectionOrders),
		ids:     newSequence(db, collectionOrders),
		clients: clients,
	}
}

func (r *OrderRepository) List(ctx context.Context, filter ports.OrderFilter) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	cur, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	var docs []orderDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return r.withClients(ctx, docs)
}

func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc orderDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	orders, err := r.withClients(ctx, []orderDoc{doc})
	if err != nil {
		return nil, err
	}
	return orders[0], nil
}

func (r *OrderRepository) withClients(ctx context.Context, docs []orderDoc) ([]*domain.Order, error) {
	ids := make([]int64, 0, len(docs))
	seen := make(map[int64]struct{}, len(docs))
	for _, d := range docs {
		if _, ok := seen[d.ClientID]; !ok {
			seen[d.ClientID] = struct{}{}
			ids = append(ids, d.ClientID)
		}
	}
	clients, err := r.clients.findMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Order, len(docs))
	for i, d := range docs {
		o, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		o.Client = clients[d.ClientID]
		out[i] = o
	}
	return out, nil
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := toOrderDoc(o)
	if err != nil {
		return err
	}
	id, err := r.ids.next(ctx)
	if err != nil {
		return err
	}
	doc.ID = id

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	o.ID = id
	return nil
}

func (r *OrderRepository) Update(ctx context.Context, o *domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := toOrderDoc(o)
	if err != nil {
		return err
	}
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": o.ID}, doc)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) CountByStatus(ctx context.Context) (map[domain.OrderStatus]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "n", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	})
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	var rows []struct {
		Status string `bson:"_id"`
		N      int64  `bson:"n"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode order counts: %w", err)
	}

	out := make(map[domain.OrderStatus]int64, len(rows))
	for _, row := range rows {
		out[domain.OrderStatus(row.Status)] = row.N
	}
	return out, nil
}

func (r *OrderRepository) Amounts(ctx context.Context, status domain.OrderStatus) ([]decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"status": string(status)},
		options.Find().SetProjection(bson.M{"total_amount": 1}))
	if err != nil {
		return nil, fmt.Errorf("find amounts: %w", err)
	}
	var rows []struct {
		TotalAmount primitive.Decimal128 `bson:"total_amount"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode amounts: %w", err)
	}

	out := make([]decimal.Decimal, len(rows))
	for i, row := range rows {
		if out[i], err = fromDecimal128(row.TotalAmount); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *OrderRepository) OrderDatesBetween(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx,
		bson.M{"order_date": bson.M{"$gte": from.UTC(), "$lt": to.UTC()}},
		options.Find().
			SetProjection(bson.M{"order_date": 1}).
			SetSort(bson.D{{Key: "order_date", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("find order dates: %w", err)
	}
	var rows []struct {
		OrderDate time.Time `bson:"order_date"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode order dates: %w", err)
	}

	out := make([]time.Time, len(rows))
	for i, row := range rows {
		out[i] = row.OrderDate.UTC()
	}
	return out, nil
}
