package repository

import (
	"context"
	"time"

	"go-pos-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SalesByDay is one chart point
type SalesByDay struct {
	Date         string `json:"date"`
	Revenue      int64  `json:"revenue"`
	Transactions int64  `json:"transactions"`
	ItemsSold    int64  `json:"items_sold"`
}

// SalesSummary aggregates a reporting period
type SalesSummary struct {
	TotalRevenue      int64 `json:"total_revenue"`
	TotalTransactions int64 `json:"total_transactions"`
	TotalItemsSold    int64 `json:"total_items_sold"`
	TotalDiscount     int64 `json:"total_discount"`
	TotalTax          int64 `json:"total_tax"`
}

// TopProduct is one best-seller row
type TopProduct struct {
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name"`
	QuantitySold int64     `json:"quantity_sold"`
	Revenue      int64     `json:"revenue"`
}

// DashboardStats for the overview cards
type DashboardStats struct {
	TotalProducts     int64 `json:"total_products"`
	LowStockCount     int64 `json:"low_stock_count"`
	InventoryValue    int64 `json:"inventory_value"` // stock * cost_price
	TodayRevenue      int64 `json:"today_revenue"`
	TodayTransactions int64 `json:"today_transactions"`
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *model.Transaction) error
	CreateItem(ctx context.Context, item *model.TransactionItem) error
	FindAll(ctx context.Context) ([]model.Transaction, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
	GetSalesByDay(ctx context.Context, startDate, endDate time.Time) ([]SalesByDay, error)
	GetSalesSummary(ctx context.Context, startDate, endDate time.Time) (*SalesSummary, error)
	GetTopProducts(ctx context.Context, startDate, endDate time.Time, limit int) ([]TopProduct, error)
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) Create(ctx context.Context, tx *model.Transaction) error {
	return GetTx(ctx, r.db).Create(tx).Error
}

func (r *transactionRepo) CreateItem(ctx context.Context, item *model.TransactionItem) error {
	return GetTx(ctx, r.db).Create(item).Error
}

func (r *transactionRepo) FindAll(ctx context.Context) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := GetTx(ctx, r.db).
		Preload("Items").
		Preload("CreatedByUser").
		Order("created_at DESC").
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	err := GetTx(ctx, r.db).
		Preload("Items").
		Preload("CreatedByUser").
		First(&transaction, "id = ?", id).Error
	return &transaction, err
}

func (r *transactionRepo) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	db := GetTx(ctx, r.db)

	if err := db.Model(&model.Product{}).Where("is_active = ?", true).
		Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Product{}).Where("is_active = ? AND stock <= min_stock_level", true).
		Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Product{}).Where("is_active = ?", true).
		Select("COALESCE(SUM(stock * cost_price), 0)").
		Scan(&stats.InventoryValue).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := db.Model(&model.Transaction{}).
		Where("status = ? AND created_at >= ?", model.TransactionCompleted, today).
		Count(&stats.TodayTransactions).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Transaction{}).
		Where("status = ? AND created_at >= ?", model.TransactionCompleted, today).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.TodayRevenue).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

func (r *transactionRepo) GetSalesByDay(ctx context.Context, startDate, endDate time.Time) ([]SalesByDay, error) {
	var results []SalesByDay
	db := GetTx(ctx, r.db)

	// Pre-aggregate item quantities per transaction so the join stays
	// one row per transaction and SUM(total_amount) is not multiplied
	// by the number of item lines.
	itemTotals := db.Model(&model.TransactionItem{}).
		Select("transaction_id, SUM(quantity) as quantity").
		Group("transaction_id")

	rows, err := db.Model(&model.Transaction{}).
		Select(`
			DATE(transactions.created_at) as date,
			COALESCE(SUM(transactions.total_amount), 0) as revenue,
			COUNT(transactions.id) as transactions,
			COALESCE(SUM(items.quantity), 0) as items_sold
		`).
		Joins("LEFT JOIN (?) items ON items.transaction_id = transactions.id", itemTotals).
		Where("transactions.status = ? AND transactions.created_at BETWEEN ? AND ?",
			model.TransactionCompleted, startDate, endDate).
		Group("DATE(transactions.created_at)").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data SalesByDay
		if err := rows.Scan(&data.Date, &data.Revenue, &data.Transactions, &data.ItemsSold); err != nil {
			return nil, err
		}
		results = append(results, data)
	}
	return results, rows.Err()
}

func (r *transactionRepo) GetSalesSummary(ctx context.Context, startDate, endDate time.Time) (*SalesSummary, error) {
	var summary SalesSummary
	db := GetTx(ctx, r.db)

	base := db.Model(&model.Transaction{}).
		Where("status = ? AND created_at BETWEEN ? AND ?", model.TransactionCompleted, startDate, endDate)

	if err := base.Count(&summary.TotalTransactions).Error; err != nil {
		return nil, err
	}

	row := db.Model(&model.Transaction{}).
		Where("status = ? AND created_at BETWEEN ? AND ?", model.TransactionCompleted, startDate, endDate).
		Select(`
			COALESCE(SUM(total_amount), 0),
			COALESCE(SUM(discount_amount), 0),
			COALESCE(SUM(tax_amount), 0)
		`).Row()
	if err := row.Scan(&summary.TotalRevenue, &summary.TotalDiscount, &summary.TotalTax); err != nil {
		return nil, err
	}

	err := db.Model(&model.TransactionItem{}).
		Joins("JOIN transactions ON transactions.id = transaction_items.transaction_id").
		Where("transactions.status = ? AND transactions.created_at BETWEEN ? AND ?",
			model.TransactionCompleted, startDate, endDate).
		Select("COALESCE(SUM(transaction_items.quantity), 0)").
		Scan(&summary.TotalItemsSold).Error
	if err != nil {
		return nil, err
	}

	return &summary, nil
}

func (r *transactionRepo) GetTopProducts(ctx context.Context, startDate, endDate time.Time, limit int) ([]TopProduct, error) {
	var results []TopProduct
	err := GetTx(ctx, r.db).Model(&model.TransactionItem{}).
		Select(`
			transaction_items.product_id,
			transaction_items.product_name,
			COALESCE(SUM(transaction_items.quantity), 0) as quantity_sold,
			COALESCE(SUM(transaction_items.line_total), 0) as revenue
		`).
		Joins("JOIN transactions ON transactions.id = transaction_items.transaction_id").
		Where("transactions.status = ? AND transactions.created_at BETWEEN ? AND ?",
			model.TransactionCompleted, startDate, endDate).
		Group("transaction_items.product_id, transaction_items.product_name").
		Order("quantity_sold DESC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}
