package oms

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"

	"github.com/wyhar1/execsim/config"
	"github.com/wyhar1/execsim/models"
	"github.com/wyhar1/execsim/types"
)

// Venue executes registered orders. matching.Engines is the in-process
// implementation. Amend owns the store write of an amendment so the venue
// can apply it together with the re-queue.
type Venue interface {
	Submit(h models.Handle) []models.Report
	Cancel(h models.Handle) bool
	Amend(h models.Handle, quantity null.Int64, price decimal.NullDecimal, at time.Time) ([]models.Report, error)
}

// Ack acknowledges an accepted instruction. Reports holds the fills the venue
// produced while handling it.
type Ack struct {
	OrderID   string            `json:"order_id"`
	Status    types.OrderStatus `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Reports   []models.Report   `json:"reports"`
}

type Listener func(report models.Report)

// OrderManagementSystem validates orders, keeps their status and forwards
// them to an optional venue. It is not safe for concurrent use.
type OrderManagementSystem struct {
	store     *models.OrderStore
	venue     Venue
	clock     models.Clock
	statuses  map[models.Handle]types.OrderStatus
	listeners []Listener
}

// NewOrderManagementSystem registers orders in store. venue may be nil, in
// which case orders are only tracked.
func NewOrderManagementSystem(store *models.OrderStore, venue Venue, clock models.Clock) *OrderManagementSystem {
	if clock == nil {
		clock = models.RealClock{}
	}

	return &OrderManagementSystem{
		store:    store,
		venue:    venue,
		clock:    clock,
		statuses: make(map[models.Handle]types.OrderStatus),
	}
}

// Subscribe registers fn for every execution report the OMS observes.
func (s *OrderManagementSystem) Subscribe(fn Listener) {
	s.listeners = append(s.listeners, fn)
}

func (s *OrderManagementSystem) NewOrder(order models.Order) (Ack, error) {
	if len(order.ID) == 0 {
		order.ID = uuid.New().String()
	}

	if errs := order.Validate(); len(errs) > 0 {
		return Ack{}, NewValidationError(errs...)
	}

	if order.Timestamp.IsZero() {
		order.Timestamp = s.clock.Now()
	}
	order.OriginQuantity = order.Quantity

	h, err := s.store.Put(order)
	if errors.Is(err, models.ErrDuplicateOrder) {
		return Ack{}, NewValidationError("market.order.duplicate_id")
	} else if err != nil {
		return Ack{}, err
	}

	s.statuses[h] = types.StatusAccepted
	config.Logger.Debugf("[execsim.oms] accepted %s order %s %s %d %s", order.Type, order.ID, order.Side, order.Quantity, order.Symbol)

	ack := Ack{
		OrderID:   order.ID,
		Status:    types.StatusAccepted,
		Timestamp: order.Timestamp,
		Reports:   []models.Report{},
	}

	if s.venue != nil {
		ack.Reports = s.apply(s.venue.Submit(h))
	}

	return ack, nil
}

func (s *OrderManagementSystem) CancelOrder(id string) (Ack, error) {
	h, status, err := s.lookup(id)
	if err != nil {
		return Ack{}, err
	}

	if status.Terminal() {
		return Ack{}, &InvalidStateError{OrderID: id, Operation: "cancel", Status: status}
	}

	s.statuses[h] = types.StatusCanceled

	if s.venue != nil && !s.venue.Cancel(h) {
		config.Logger.Debugf("[execsim.oms] order %s was not resting at the venue", id)
	}

	return Ack{
		OrderID:   id,
		Status:    types.StatusCanceled,
		Timestamp: s.clock.Now(),
		Reports:   []models.Report{},
	}, nil
}

// AmendOrder overwrites the remaining quantity and/or price of an accepted
// order. A resting order is re-queued behind its price level.
func (s *OrderManagementSystem) AmendOrder(id string, quantity null.Int64, price decimal.NullDecimal) (Ack, error) {
	h, status, err := s.lookup(id)
	if err != nil {
		return Ack{}, err
	}

	if status != types.StatusAccepted {
		return Ack{}, &InvalidStateError{OrderID: id, Operation: "amend", Status: status}
	}

	errs := make([]string, 0)
	if quantity.Valid && quantity.Int64 <= 0 {
		errs = append(errs, "market.order.non_positive_quantity")
	}
	if price.Valid {
		if !s.store.MustGet(h).Type.Priced() {
			errs = append(errs, "market.order.price_not_allowed")
		} else if !price.Decimal.IsPositive() {
			errs = append(errs, "market.order.non_positive_price")
		}
	}
	if len(errs) > 0 {
		return Ack{}, NewValidationError(errs...)
	}

	now := s.clock.Now()
	ack := Ack{
		OrderID:   id,
		Status:    types.StatusAmended,
		Timestamp: now,
		Reports:   []models.Report{},
	}

	if s.venue == nil {
		if err := s.store.Amend(h, quantity, price, now); err != nil {
			return Ack{}, err
		}

		return ack, nil
	}

	reports, err := s.venue.Amend(h, quantity, price, now)
	if err != nil {
		return Ack{}, fmt.Errorf("amend order %s: %w", id, err)
	}
	ack.Reports = s.apply(reports)

	return ack, nil
}

// OnReport records an execution report: a filled report moves its order to
// filled. Reports for unknown orders only reach the listeners.
func (s *OrderManagementSystem) OnReport(report models.Report) {
	if h, found := s.store.Lookup(report.OrderID); found {
		status, registered := s.statuses[h]
		if registered && report.Status == types.ReportFilled && !status.Terminal() {
			s.statuses[h] = types.StatusFilled
		}
	}

	for _, fn := range s.listeners {
		fn(report)
	}
}

func (s *OrderManagementSystem) apply(reports []models.Report) []models.Report {
	for _, r := range reports {
		s.OnReport(r)
	}

	return reports
}

func (s *OrderManagementSystem) Status(id string) (types.OrderStatus, error) {
	_, status, err := s.lookup(id)

	return status, err
}

// Order returns a copy of the registered order.
func (s *OrderManagementSystem) Order(id string) (models.Order, error) {
	h, _, err := s.lookup(id)
	if err != nil {
		return models.Order{}, err
	}

	return s.store.MustGet(h), nil
}

func (s *OrderManagementSystem) Handle(id string) (models.Handle, error) {
	h, _, err := s.lookup(id)

	return h, err
}

func (s *OrderManagementSystem) lookup(id string) (models.Handle, types.OrderStatus, error) {
	h, found := s.store.Lookup(id)
	if !found {
		return 0, "", &NotFoundError{OrderID: id}
	}

	status, registered := s.statuses[h]
	if !registered {
		return 0, "", &NotFoundError{OrderID: id}
	}

	return h, status, nil
}
