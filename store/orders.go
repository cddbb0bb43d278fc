package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Rangsey10/sport-jerseys-api/models"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrNoUser            = errors.New("no resolvable user for order")
	ErrEmptyOrder        = errors.New("order has no items")
	ErrDuplicatePayment  = errors.New("order for this payment already exists")
	ErrIllegalTransition = errors.New("illegal order status transition")
)

// OrderItemInput is one order line as handed to the writer by either
// checkout path.
type OrderItemInput struct {
	ProductID    string
	ProductName  string
	ProductImage string
	Size         string
	Quantity     int
	UnitPrice    decimal.Decimal
}

// OrderStore is the persistence seam for the order pipeline.
type OrderStore interface {
	Create(ctx context.Context, userID string, items []OrderItemInput, addr *models.ShippingAddress) (*models.Order, error)
	CreateFromPayment(ctx context.Context, paymentRef, userID string, items []OrderItemInput, amountMinor int64, addr *models.ShippingAddress) (*models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListAll(ctx context.Context, status models.OrderStatus) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID string, next models.OrderStatus) (*models.Order, error)
	Stats(ctx context.Context) (*OrderStats, error)
}

// Orders is the GORM-backed OrderStore.
type Orders struct {
	db *gorm.DB
}

func NewOrders(db *gorm.DB) *Orders {
	return &Orders{db: db}
}

func buildOrder(userID string, items []OrderItemInput, addr *models.ShippingAddress) (*models.Order, error) {
	if userID == "" {
		return nil, ErrNoUser
	}
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	order := &models.Order{
		UserID: userID,
		Status: models.OrderStatusPending,
	}
	if addr != nil {
		order.ShippingAddress = *addr
	}

	for _, in := range items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:    in.ProductID,
			ProductName:  in.ProductName,
			ProductImage: in.ProductImage,
			Size:         in.Size,
			Quantity:     in.Quantity,
			UnitPrice:    in.UnitPrice,
			TotalPrice:   in.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity))),
		})
	}
	return order, nil
}

// Create persists an order from the client-confirmed checkout path. The
// header total is the sum of the line totals. Header and items are written in
// one transaction; there is no partially-written order.
func (s *Orders) Create(ctx context.Context, userID string, items []OrderItemInput, addr *models.ShippingAddress) (*models.Order, error) {
	order, err := buildOrder(userID, items, addr)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, item := range order.Items {
		total = total.Add(item.TotalPrice)
	}
	order.TotalAmount = total

	if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return order, nil
}

// CreateFromPayment persists an order from the webhook path, keyed by the
// provider's payment reference so replayed deliveries cannot duplicate it.
// The header total is the captured amount, which includes tax. Returns the
// existing order wrapped in ErrDuplicatePayment when the reference was
// already consumed.
func (s *Orders) CreateFromPayment(ctx context.Context, paymentRef, userID string, items []OrderItemInput, amountMinor int64, addr *models.ShippingAddress) (*models.Order, error) {
	if paymentRef == "" {
		return nil, errors.New("payment reference is required")
	}

	order, err := buildOrder(userID, items, addr)
	if err != nil {
		return nil, err
	}
	order.PaymentRef = &paymentRef
	order.TotalAmount = decimal.New(amountMinor, -2)

	var existing models.Order
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Preload("Items").First(&existing, "payment_ref = ?", paymentRef).Error
		if err == nil {
			return ErrDuplicatePayment
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(order).Error
	})

	if errors.Is(txErr, ErrDuplicatePayment) {
		return &existing, ErrDuplicatePayment
	}
	// A concurrent delivery can slip past the read; the unique index on
	// payment_ref closes the race.
	if errors.Is(txErr, gorm.ErrDuplicatedKey) {
		if err := s.db.WithContext(ctx).Preload("Items").First(&existing, "payment_ref = ?", paymentRef).Error; err != nil {
			return nil, fmt.Errorf("failed to load existing order: %w", err)
		}
		return &existing, ErrDuplicatePayment
	}
	if txErr != nil {
		return nil, fmt.Errorf("failed to create order: %w", txErr)
	}
	return order, nil
}

func (s *Orders) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Preload("Profile").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByUser returns only the caller's own orders, newest first.
func (s *Orders) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// ListAll returns every order system-wide with its owner's profile preloaded.
// Authorization is the caller's responsibility; this is never exposed without
// the admin gate.
func (s *Orders) ListAll(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	query := s.db.WithContext(ctx).
		Preload("Items").
		Preload("Profile").
		Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	err := query.Find(&orders).Error
	return orders, err
}

// UpdateStatus moves an order along the status graph. The current status is
// re-read under a row lock so concurrent admin updates serialize instead of
// last-write-wins.
func (s *Orders) UpdateStatus(ctx context.Context, orderID string, next models.OrderStatus) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if !order.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, order.Status, next)
		}

		order.Status = next
		return tx.Model(&order).Update("status", next).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, orderID)
}

// OrderStats feeds the admin dashboard widgets.
type OrderStats struct {
	TotalOrders     int64            `json:"total_orders"`
	PendingOrders   int64            `json:"pending_orders"`
	CompletedOrders int64            `json:"completed_orders"`
	Revenue         decimal.Decimal  `json:"revenue"`
	ByStatus        map[string]int64 `json:"by_status"`
}

func (s *Orders) Stats(ctx context.Context) (*OrderStats, error) {
	type row struct {
		Status models.OrderStatus
		Count  int64
	}
	var rows []row
	err := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := &OrderStats{ByStatus: make(map[string]int64)}
	for _, r := range rows {
		stats.ByStatus[string(r.Status)] = r.Count
		stats.TotalOrders += r.Count
		switch r.Status {
		case models.OrderStatusPending:
			stats.PendingOrders += r.Count
		case models.OrderStatusShipped, models.OrderStatusDelivered:
			stats.CompletedOrders += r.Count
		}
	}

	var revenue decimal.NullDecimal
	err = s.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("status <> ?", models.OrderStatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&revenue).Error
	if err != nil {
		return nil, err
	}
	if revenue.Valid {
		stats.Revenue = revenue.Decimal
	}
	return stats, nil
}
