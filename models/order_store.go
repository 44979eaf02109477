package models

import (
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"
)

// Handle is a stable reference to an order held by an OrderStore.
// Handles are never reused.
type Handle uint64

var (
	ErrDuplicateOrder = errors.New("order id already registered")
	ErrUnknownHandle  = errors.New("unknown order handle")
)

// OrderStore is the arena owning every order of a simulation. The OMS and
// the order books keep handles into it and mutate orders only through its
// methods.
type OrderStore struct {
	mutex    sync.RWMutex
	orders   map[Handle]*Order
	ids      map[string]Handle
	last     Handle
	sequence uint64
}

func NewOrderStore() *OrderStore {
	return &OrderStore{
		orders: make(map[Handle]*Order),
		ids:    make(map[string]Handle),
	}
}

// Put copies o into the store and returns its handle. OriginQuantity is set
// from Quantity when zero.
func (s *OrderStore) Put(o Order) (Handle, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, found := s.ids[o.ID]; found {
		return 0, ErrDuplicateOrder
	}

	if o.OriginQuantity == 0 {
		o.OriginQuantity = o.Quantity
	}

	s.sequence++
	o.Sequence = s.sequence

	s.last++
	s.orders[s.last] = &o
	s.ids[o.ID] = s.last

	return s.last, nil
}

// Get returns a copy of the order behind h.
func (s *OrderStore) Get(h Handle) (Order, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	o, found := s.orders[h]
	if !found {
		return Order{}, false
	}

	return *o, true
}

// MustGet is Get for callers that hold a handle issued by this store.
func (s *OrderStore) MustGet(h Handle) Order {
	o, found := s.Get(h)
	if !found {
		panic(ErrUnknownHandle)
	}

	return o
}

func (s *OrderStore) Lookup(id string) (Handle, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	h, found := s.ids[id]

	return h, found
}

// Fill decrements the remaining quantity of h and returns what is left.
func (s *OrderStore) Fill(h Handle, quantity int64) int64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	o := s.orders[h]
	o.Quantity -= quantity

	return o.Quantity
}

// Amend overwrites the remaining quantity and/or price of h.
func (s *OrderStore) Amend(h Handle, quantity null.Int64, price decimal.NullDecimal, at time.Time) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	o, found := s.orders[h]
	if !found {
		return ErrUnknownHandle
	}

	if quantity.Valid {
		o.OriginQuantity += quantity.Int64 - o.Quantity
		o.Quantity = quantity.Int64
	}
	if price.Valid {
		o.Price = price
	}
	o.Timestamp = at

	return nil
}

// Requeue gives h a fresh arrival sequence, placing it behind every order
// that arrived before the call.
func (s *OrderStore) Requeue(h Handle) uint64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.sequence++
	s.orders[h].Sequence = s.sequence

	return s.sequence
}

func (s *OrderStore) Size() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return len(s.orders)
}
