package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ordersdesk/ordersdesk/internal/core/domain"
	"github.com/ordersdesk/ordersdesk/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubClientRepo struct {
	byID   map[int64]*domain.Client
	nextID int64
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{byID: make(map[int64]*domain.Client)}
}

func (r *stubClientRepo) List(_ context.Context) ([]*domain.Client, error) {
	out := make([]*domain.Client, 0, len(r.byID))
	for _, c := range r.byID {
		clone := *c
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id int64) (*domain.Client, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubClientRepo) Create(_ context.Context, c *domain.Client) error {
	r.nextID++
	c.ID = r.nextID
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubClientRepo) Update(_ context.Context, c *domain.Client) error {
	if _, ok := r.byID[c.ID]; !ok {
		return domain.ErrClientNotFound
	}
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubClientRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrClientNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubClientRepo) CountByStatus(_ context.Context, status domain.ClientStatus) (int64, error) {
	var n int64
	for _, c := range r.byID {
		if c.Status == status {
			n++
		}
	}
	return n, nil
}

type stubOrderRepo struct {
	byID    map[int64]*domain.Order
	clients *stubClientRepo
	nextID  int64
	creates int
	updates int
}

func newStubOrderRepo(clients *stubClientRepo) *stubOrderRepo {
	return &stubOrderRepo{byID: make(map[int64]*domain.Order), clients: clients}
}

func (r *stubOrderRepo) withClient(o *domain.Order) *domain.Order {
	clone := *o
	clone.Client = nil
	if c, ok := r.clients.byID[o.ClientID]; ok {
		cc := *c
		clone.Client = &cc
	}
	return &clone
}

func (r *stubOrderRepo) List(_ context.Context, f ports.OrderFilter) ([]*domain.Order, error) {
	out := make([]*domain.Order, 0, len(r.byID))
	for _, o := range r.byID {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		out = append(out, r.withClient(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id int64) (*domain.Order, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return r.withClient(o), nil
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) error {
	r.creates++
	r.nextID++
	o.ID = r.nextID
	clone := *o
	r.byID[o.ID] = &clone
	return nil
}

func (r *stubOrderRepo) Update(_ context.Context, o *domain.Order) error {
	r.updates++
	if _, ok := r.byID[o.ID]; !ok {
		return domain.ErrOrderNotFound
	}
	clone := *o
	r.byID[o.ID] = &clone
	return nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubOrderRepo) CountByStatus(_ context.Context) (map[domain.OrderStatus]int64, error) {
	out := make(map[domain.OrderStatus]int64)
	for _, o := range r.byID {
		out[o.Status]++
	}
	return out, nil
}

func (r *stubOrderRepo) Amounts(_ context.Context, status domain.OrderStatus) ([]decimal.Decimal, error) {
	var out []decimal.Decimal
	for _, o := range r.byID {
		if o.Status == status {
			out = append(out, o.TotalAmount)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) OrderDatesBetween(_ context.Context, from, to time.Time) ([]time.Time, error) {
	var out []time.Time
	for _, o := range r.byID {
		if !o.OrderDate.Before(from) && o.OrderDate.Before(to) {
			out = append(out, o.OrderDate)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out, nil
}

type stubIdempotency struct {
	keys      map[string]int64
	lookupErr error
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{keys: make(map[string]int64)}
}

func (s *stubIdempotency) Lookup(_ context.Context, scope, key string) (int64, bool, error) {
	if s.lookupErr != nil {
		return 0, false, s.lookupErr
	}
	id, ok := s.keys[scope+":"+key]
	return id, ok, nil
}

func (s *stubIdempotency) Remember(_ context.Context, scope, key string, id int64) error {
	s.keys[scope+":"+key] = id
	return nil
}

var errStubUnavailable = errors.New("store unavailable")
