package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aeaevo/loopjet-bridge/internal/domain/shared"
	"github.com/aeaevo/loopjet-bridge/internal/domain/trade"
)

// GormSalesOrderRepository implements SalesOrderRepository using GORM
type GormSalesOrderRepository struct {
	db *gorm.DB
}

// NewGormSalesOrderRepository creates a new GormSalesOrderRepository
func NewGormSalesOrderRepository(db *gorm.DB) *GormSalesOrderRepository {
	return &GormSalesOrderRepository{db: db}
}

// FindByID finds an order with its lines by ID
func (r *GormSalesOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SalesOrder, error) {
	var order trade.SalesOrder
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds all orders for a company
func (r *GormSalesOrderRepository) FindAll(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]trade.SalesOrder, error) {
	var orders []trade.SalesOrder
	query := r.db.WithContext(ctx).Model(&trade.SalesOrder{}).
		Preload("Lines").
		Where("company_id = ?", companyID)
	query = applyFilter(query, filter, "created_at DESC")

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindRecentByCustomer finds the most recent non-cancelled orders of a
// customer, newest first, capped at limit.
func (r *GormSalesOrderRepository) FindRecentByCustomer(ctx context.Context, companyID, customerID uuid.UUID, limit int) ([]trade.SalesOrder, error) {
	var orders []trade.SalesOrder
	query := r.db.WithContext(ctx).
		Preload("Lines").
		Where("company_id = ? AND customer_id = ? AND status <> ?", companyID, customerID, trade.OrderStatusCancelled).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates an order with its lines atomically
func (r *GormSalesOrderRepository) Save(ctx context.Context, order *trade.SalesOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(order).Error; err != nil {
			return err
		}

		// Drop lines removed from the aggregate
		if order.ID != uuid.Nil {
			lineIDs := make([]uuid.UUID, len(order.Lines))
			for i, line := range order.Lines {
				lineIDs[i] = line.ID
			}
			del := tx.Where("order_id = ?", order.ID)
			if len(lineIDs) > 0 {
				del = del.Where("id NOT IN ?", lineIDs)
			}
			if err := del.Delete(&trade.OrderLine{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// NextNumber returns the next order number in sequence for a company.
// Format: SO-YYYY-NNNNN (e.g., SO-2026-00001)
func (r *GormSalesOrderRepository) NextNumber(ctx context.Context, companyID uuid.UUID) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("SO-%d-", year)

	var lastOrder trade.SalesOrder
	err := r.db.WithContext(ctx).
		Model(&trade.SalesOrder{}).
		Where("company_id = ? AND number LIKE ?", companyID, prefix+"%").
		Order("number DESC").
		First(&lastOrder).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && lastOrder.Number != "" {
		parts := strings.Split(lastOrder.Number, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	number := fmt.Sprintf("%s%05d", prefix, nextNum)

	// Guard against a concurrent insert having taken the number
	for i := 0; i < 100; i++ {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&trade.SalesOrder{}).
			Where("company_id = ? AND number = ?", companyID, number).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			break
		}
		nextNum++
		number = fmt.Sprintf("%s%05d", prefix, nextNum)
	}

	return number, nil
}

// Count counts orders for a company
func (r *GormSalesOrderRepository) Count(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&trade.SalesOrder{}).
		Where("company_id = ?", companyID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormSalesOrderRepository implements SalesOrderRepository
var _ trade.SalesOrderRepository = (*GormSalesOrderRepository)(nil)
