package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/ports"
	"production/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
	logger  *slog.Logger
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker, logger *slog.Logger) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
		logger:  logger.With("component", "order_repository"),
	}
}

// Add inserts a new order. A second order for the same upstream order fails
// with ports.ErrOrderAlreadyExists.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: orderRef %s: %w", ports.ErrOrderAlreadyExists, aggregate.OrderRef(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update overwrites every mutable column of an existing order.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "order_id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundErrorWithCause("order", aggregate.ID().String(), gorm.ErrRecordNotFound)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return r.restore(dto)
}

func (r *GormOrderRepository) GetByOrderRef(ctx context.Context, orderRef kernel.UUID) (*order.Order, error) {
	if err := orderRef.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderRef.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderRef", orderRef.String())
		}
		return nil, err
	}

	return r.restore(dto)
}

// GetByStatus returns orders by priority, oldest first within a priority.
func (r *GormOrderRepository) GetByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Where("status = ?", status.String()).
		Order("priority ASC").
		Order("created_at ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return r.restoreAll(dtos)
}

// GetQueue returns every order still on the production line. Ordering inside
// the queue is left to services.QueueProjector.
func (r *GormOrderRepository) GetQueue(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Where("status IN ?", []string{order.Received.String(), order.InProgress.String(), order.Ready.String()}).
		Order("created_at ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return r.restoreAll(dtos)
}

func (r *GormOrderRepository) restore(dto OrderDTO) (*order.Order, error) {
	// a corrupted items blob degrades to an empty list instead of failing the read
	items, err := order.DecodeItems(dto.ItemsJSON)
	if err != nil {
		r.logger.Warn("order items could not be decoded, serving order without items",
			"order_id", dto.ID.String(),
			"error", err,
		)
	}
	return toDomain(dto, items)
}

func (r *GormOrderRepository) restoreAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := r.restore(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
