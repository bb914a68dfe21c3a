package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/agrodash/agroadmin/internal/common"
	"github.com/agrodash/agroadmin/internal/server/models"
	"github.com/agrodash/agroadmin/internal/server/repositories/repomanager"
	"github.com/agrodash/agroadmin/internal/server/validation"
)

type OrderService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	validator   Validator
	activity    *ActivityService
}

func NewOrderService(db *sql.DB, m repomanager.RepositoryManager, v Validator, a *ActivityService) *OrderService {
	return &OrderService{db: db, repomanager: m, validator: v, activity: a}
}

func (s *OrderService) List(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	if filter.Status != "" && !models.IsOrderStatus(filter.Status) {
		return nil, &validation.Error{Fields: []validation.FieldError{{
			Field:      "status",
			Constraint: "order_status",
			Message:    fmt.Sprintf("unknown order status %q", filter.Status),
		}}}
	}
	out, err := s.repomanager.Orders(s.db).List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing orders: %w", err)
	}
	return out, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	return s.repomanager.Orders(s.db).GetByID(ctx, id)
}

// UpdateStatus moves the order along its lifecycle. Moves not allowed from
// the current status fail with common.ErrInvalidTransition; a concurrent
// change of the same order fails with common.ErrConflict.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, in models.OrderStatusInput) (*models.Order, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	repo := s.repomanager.Orders(s.db)
	current, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == in.Status {
		return current, nil
	}
	if !models.CanTransition(current.Status, in.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", common.ErrInvalidTransition, current.Status, in.Status)
	}

	updated, err := repo.UpdateStatus(ctx, id, current.Status, in.Status)
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, "status", "order", id, current.Status+" -> "+in.Status)
	return updated, nil
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	if err := s.repomanager.Orders(s.db).Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting order: %w", err)
	}
	s.activity.Record(ctx, "delete", "order", id, "")
	return nil
}

// CountByStatus returns the number of orders per status; statuses without
// orders are reported as zero.
func (s *OrderService) CountByStatus(ctx context.Context) (map[string]int, error) {
	counts, err := s.repomanager.Orders(s.db).CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting orders: %w", err)
	}
	out := map[string]int{
		models.OrderPending:   0,
		models.OrderConfirmed: 0,
		models.OrderShipped:   0,
		models.OrderDelivered: 0,
		models.OrderCancelled: 0,
	}
	for k, v := range counts {
		out[k] = v
	}
	return out, nil
}
