package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nmdong/VietThanhProductions/model"
	"gorm.io/gorm"
)

// OrderService handles orders and their item lines. Totals are derived from
// the lines and kept in step inside the same transaction that writes them.
type OrderService struct {
	db *gorm.DB
}

// NewOrderService creates a new order service
func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// OrderItemInput is one requested order line
type OrderItemInput struct {
	ProductID uint     `json:"product_id" validate:"required"`
	Quantity  int      `json:"quantity" validate:"required,gt=0"`
	UnitPrice *float64 `json:"unit_price" validate:"required,gte=0"`
}

// OrderInput is a new order with its lines
type OrderInput struct {
	OrderNumber  string           `json:"order_number" validate:"required,max=50"`
	CustomerName string           `json:"customer_name" validate:"required,max=255"`
	Status       string           `json:"status" validate:"omitempty,max=30"`
	Items        []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

// OrderStatusUpdate changes an order's status
type OrderStatusUpdate struct {
	Status string `json:"status" validate:"required,max=30"`
}

func newOrderItem(in OrderItemInput) model.OrderItem {
	return model.OrderItem{
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
		UnitPrice:  *in.UnitPrice,
		TotalPrice: float64(in.Quantity) * *in.UnitPrice,
	}
}

// List returns all orders with their items, newest first
func (s *OrderService) List(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Order("order_date DESC").
		Order("id DESC").
		Find(&orders).
		Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// ListByCustomer returns all orders of one customer
func (s *OrderService) ListByCustomer(ctx context.Context, customerName string) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("customer_name = ?", customerName).
		Order("order_date DESC").
		Find(&orders).
		Error
	if err != nil {
		return nil, fmt.Errorf("list orders by customer: %w", err)
	}
	return orders, nil
}

// Get returns one order with its items
func (s *OrderService) Get(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&order, id).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &order, nil
}

// Create inserts an order and all of its lines in one transaction
func (s *OrderService) Create(ctx context.Context, in OrderInput) (*model.Order, error) {
	if len(in.Items) == 0 {
		return nil, ErrOrderWithoutItem
	}

	status := in.Status
	if status == "" {
		status = model.OrderStatusNew
	}

	order := model.Order{
		OrderNumber:  in.OrderNumber,
		CustomerName: in.CustomerName,
		Status:       status,
		OrderDate:    time.Now().UTC(),
	}
	for _, item := range in.Items {
		line := newOrderItem(item)
		order.TotalPrice += line.TotalPrice
		order.Items = append(order.Items, line)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ensureProducts(tx, in.Items...); err != nil {
			return err
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		if isDuplicateKey(err) {
			return nil, ErrOrderExists
		}
		if errors.Is(err, ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("create order: %w", err)
	}

	return s.Get(ctx, order.ID)
}

// AddItem appends a line to an existing order and bumps its total
func (s *OrderService) AddItem(ctx context.Context, orderID uint, in OrderItemInput) (*model.Order, error) {
	line := newOrderItem(in)
	line.OrderID = orderID

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order model.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if err := s.ensureProducts(tx, in); err != nil {
			return err
		}
		if err := tx.Create(&line).Error; err != nil {
			return err
		}
		return tx.Model(&order).
			UpdateColumn("total_price", gorm.Expr("total_price + ?", line.TotalPrice)).
			Error
	})
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) || errors.Is(err, ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("add order item: %w", err)
	}

	return s.Get(ctx, orderID)
}

// UpdateStatus changes the status of an order
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status string) (*model.Order, error) {
	result := s.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return nil, fmt.Errorf("update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrOrderNotFound
	}
	return s.Get(ctx, id)
}

// Delete removes an order together with its lines
func (s *OrderService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&model.OrderItem{}).Error; err != nil {
			return fmt.Errorf("delete order items: %w", err)
		}
		result := tx.Delete(&model.Order{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete order: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrOrderNotFound
		}
		return nil
	})
}

func (s *OrderService) ensureProducts(tx *gorm.DB, items ...OrderItemInput) error {
	ids := make([]uint, 0, len(items))
	seen := make(map[uint]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}

	var count int64
	if err := tx.Model(&model.Product{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return err
	}
	if int(count) != len(ids) {
		return ErrProductNotFound
	}
	return nil
}
