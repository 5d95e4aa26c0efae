package stats

import (
	"context"

	"shogun-be/internal/logger"
	"shogun-be/internal/order"

	"go.uber.org/zap"
)

// OrderSource yields orders with lateness already derived.
type OrderSource interface {
	List(ctx context.Context) ([]*order.Order, error)
	ListByPaymentDate(ctx context.Context, desde, hasta string) ([]*order.Order, error)
}

type Service interface {
	Pending(ctx context.Context) ([]PendingOrder, error)
	Summary(ctx context.Context, desde, hasta string) (Summary, error)
	SalesByChannel(ctx context.Context, desde, hasta string) ([]ChannelSales, error)
	SalesByStatus(ctx context.Context) ([]StatusSales, error)
	Customers(ctx context.Context) ([]Customer, error)
}

type service struct {
	orders OrderSource
}

func NewService(orders OrderSource) Service {
	return &service{orders: orders}
}

func (s *service) Pending(ctx context.Context) ([]PendingOrder, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load orders",
			zap.String("layer", "service"),
			zap.String("method", "Pending"),
			zap.Error(err),
		)
		return nil, err
	}
	return Pending(orders), nil
}

func (s *service) Summary(ctx context.Context, desde, hasta string) (Summary, error) {
	orders, err := s.orders.ListByPaymentDate(ctx, desde, hasta)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(orders), nil
}

func (s *service) SalesByChannel(ctx context.Context, desde, hasta string) ([]ChannelSales, error) {
	orders, err := s.orders.ListByPaymentDate(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	return ByChannel(orders), nil
}

func (s *service) SalesByStatus(ctx context.Context) ([]StatusSales, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	return ByStatus(orders), nil
}

func (s *service) Customers(ctx context.Context) ([]Customer, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	return Customers(orders), nil
}
