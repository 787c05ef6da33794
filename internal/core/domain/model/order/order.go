package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

const (
	// DefaultPriority is used when a creation request leaves priority unset (zero).
	DefaultPriority = 1

	maxOrderNumberLength = 50
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created through
// NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order is the production order aggregate root. It tracks one kitchen job from
// the moment the upstream order is received until it is handed over.
//
// Invariants:
//   - id and orderRef are set once and never change
//   - status only advances through Start, Finish and Deliver
//   - startedAt, readyAt and deliveredAt are non-nil exactly when the matching stage was reached
//   - items is never nil
type Order struct {
	id            kernel.UUID
	orderRef      kernel.UUID
	orderNumber   string
	status        Status
	items         []Item
	priority      int
	estimatedTime *int

	createdAt   time.Time
	updatedAt   time.Time
	startedAt   *time.Time
	readyAt     *time.Time
	deliveredAt *time.Time

	domainEvents []DomainEvent

	guard guard.ConstructorGuard
}

// NewOrder creates an order in the Received status with a fresh identity.
//
// Parameters:
//   - orderRef: identifier of the upstream customer order
//   - orderNumber: display number, 1 to 50 characters
//   - items: line items, may be empty
//   - priority: lower is more urgent; zero means DefaultPriority
//   - estimatedTime: optional preparation estimate in minutes
func NewOrder(
	orderRef kernel.UUID,
	orderNumber string,
	items []Item,
	priority int,
	estimatedTime *int,
) (*Order, error) {
	if priority == 0 {
		priority = DefaultPriority
	}

	now := time.Now().UTC()
	order := &Order{
		id:        kernel.NewUUID(),
		status:    Received,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setOrderRef(orderRef),
		order.setOrderNumber(orderNumber),
		order.setPriority(priority),
		order.setEstimatedTime(estimatedTime),
	); err != nil {
		return nil, err
	}
	order.setItems(items)

	return order, nil
}

// Snapshot carries the persisted state of an order into RestoreOrder.
type Snapshot struct {
	ID            kernel.UUID
	OrderRef      kernel.UUID
	OrderNumber   string
	Status        Status
	Items         []Item
	Priority      int
	EstimatedTime *int
	CreatedAt     time.Time
	UpdatedAt     time.Time
	StartedAt     *time.Time
	ReadyAt       *time.Time
	DeliveredAt   *time.Time
}

// RestoreOrder rebuilds an order loaded from storage. Besides the field rules of
// NewOrder it checks that the stage timestamps agree with the status.
func RestoreOrder(s Snapshot) (*Order, error) {
	order := &Order{
		createdAt:   s.CreatedAt.UTC(),
		updatedAt:   s.UpdatedAt.UTC(),
		startedAt:   utcPtr(s.StartedAt),
		readyAt:     utcPtr(s.ReadyAt),
		deliveredAt: utcPtr(s.DeliveredAt),
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(s.ID),
		order.setOrderRef(s.OrderRef),
		order.setOrderNumber(s.OrderNumber),
		order.setStatus(s.Status),
		order.setPriority(s.Priority),
		order.setEstimatedTime(s.EstimatedTime),
		order.validateTimeline(),
	); err != nil {
		return nil, err
	}
	order.setItems(s.Items)

	return order, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID       { return o.id }
func (o *Order) OrderRef() kernel.UUID { return o.orderRef }
func (o *Order) OrderNumber() string   { return o.orderNumber }
func (o *Order) Status() Status        { return o.status }
func (o *Order) Priority() int         { return o.priority }
func (o *Order) CreatedAt() time.Time  { return o.createdAt }
func (o *Order) UpdatedAt() time.Time  { return o.updatedAt }

// Items returns a copy of the line items. The result is never nil.
func (o *Order) Items() []Item {
	return slices.Clone(o.items)
}

func (o *Order) EstimatedTime() *int {
	if o.estimatedTime == nil {
		return nil
	}
	v := *o.estimatedTime
	return &v
}

func (o *Order) StartedAt() *time.Time   { return utcPtr(o.startedAt) }
func (o *Order) ReadyAt() *time.Time     { return utcPtr(o.readyAt) }
func (o *Order) DeliveredAt() *time.Time { return utcPtr(o.deliveredAt) }

// StartProduction moves a Received order to InProgress. A non-nil estimatedTime
// replaces the current estimate. On error the order is left unchanged.
func (o *Order) StartProduction(estimatedTime *int) error {
	if err := validateEstimatedTime(estimatedTime); err != nil {
		return err
	}

	newStatus, err := o.status.Start()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if estimatedTime != nil {
		v := *estimatedTime
		o.estimatedTime = &v
	}
	o.status = newStatus
	o.startedAt = &now
	o.updatedAt = now
	o.raise(NewStartedEvent(o))
	return nil
}

// MarkReady moves an InProgress order to Ready.
func (o *Order) MarkReady() error {
	newStatus, err := o.status.Finish()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o.status = newStatus
	o.readyAt = &now
	o.updatedAt = now
	o.raise(NewReadyEvent(o))
	return nil
}

// MarkDelivered moves a Ready order to the terminal Delivered status.
func (o *Order) MarkDelivered() error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o.status = newStatus
	o.deliveredAt = &now
	o.updatedAt = now
	o.raise(NewDeliveredEvent(o))
	return nil
}

// DomainEvents returns the events raised since the last ClearDomainEvents.
func (o *Order) DomainEvents() []DomainEvent {
	return slices.Clone(o.domainEvents)
}

func (o *Order) ClearDomainEvents() {
	o.domainEvents = nil
}

func (o *Order) raise(event DomainEvent) {
	o.domainEvents = append(o.domainEvents, event)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderRef(orderRef kernel.UUID) error {
	if err := orderRef.Validate(); err != nil {
		return err
	}
	o.orderRef = orderRef
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if strings.TrimSpace(orderNumber) == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	if n := utf8.RuneCountInString(orderNumber); n > maxOrderNumberLength {
		return errs.NewValueIsOutOfRangeError("orderNumber length", n, 1, maxOrderNumberLength)
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setPriority(priority int) error {
	if priority < 1 {
		return errs.NewValueIsInvalidErrorWithCause("priority is invalid", fmt.Errorf("%d is less than 1", priority))
	}
	o.priority = priority
	return nil
}

func (o *Order) setEstimatedTime(estimatedTime *int) error {
	if err := validateEstimatedTime(estimatedTime); err != nil {
		return err
	}
	if estimatedTime != nil {
		v := *estimatedTime
		o.estimatedTime = &v
	}
	return nil
}

func (o *Order) setItems(items []Item) {
	if items == nil {
		o.items = []Item{}
		return
	}
	o.items = slices.Clone(items)
}

// validateTimeline runs after setStatus; an invalid status is already reported there.
func (o *Order) validateTimeline() error {
	if o.createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	if o.status.Validate() != nil {
		return nil
	}

	stages := []struct {
		name  string
		stage Status
		at    *time.Time
	}{
		{"startedAt", InProgress, o.startedAt},
		{"readyAt", Ready, o.readyAt},
		{"deliveredAt", Delivered, o.deliveredAt},
	}
	for _, s := range stages {
		if o.status.HasReached(s.stage) != (s.at != nil) {
			return errs.NewValueIsInvalidErrorWithCause(
				s.name+" is invalid",
				fmt.Errorf("%s does not match status %s", s.name, o.status),
			)
		}
	}
	return nil
}

func validateEstimatedTime(estimatedTime *int) error {
	if estimatedTime != nil && *estimatedTime < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"estimatedTime is invalid",
			fmt.Errorf("%d is negative", *estimatedTime),
		)
	}
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
