// Package storage manages the stock database behind the query pipeline.
// It owns schema migration, seeding, statement execution and the CRUD
// helpers exposed through the REST API.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/samuelhany-cpu/NL-TO-SQL/internal/nlquery"
	"github.com/samuelhany-cpu/NL-TO-SQL/internal/observability"
)

// ErrNotFound is returned when a lookup matches no product.
var ErrNotFound = errors.New("product not found")

// StockItem is one product row in the stock table.
type StockItem struct {
	ItemID      string          `gorm:"column:item_id;primaryKey" json:"item_id"`
	Name        string          `gorm:"column:name;not null" json:"name"`
	Quantity    int             `gorm:"column:quantity;not null;default:0" json:"quantity"`
	Category    string          `gorm:"column:category;not null" json:"category"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric;not null" json:"price"`
	Supplier    string          `gorm:"column:supplier" json:"supplier,omitempty"`
	LastUpdated time.Time       `gorm:"column:last_updated;autoUpdateTime" json:"last_updated"`
}

// TableName pins the table name the generated SQL refers to.
func (StockItem) TableName() string { return "stock" }

// Manager wraps the gorm handle with stock-specific operations. It is the
// pipeline's execution collaborator.
type Manager struct {
	db     *gorm.DB
	logger *slog.Logger
	obs    *observability.Config
}

// NewManager creates a manager over an open gorm connection. A nil obs
// config disables tracing and measurement.
func NewManager(db *gorm.DB, logger *slog.Logger, obs *observability.Config) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if obs == nil {
		obs = observability.NewConfig()
	}
	return &Manager{db: db, logger: logger, obs: obs}
}

// DB returns the underlying gorm handle.
func (m *Manager) DB() *gorm.DB { return m.db }

// Initialize migrates the stock table and seeds it with the sample data set
// when empty.
func (m *Manager) Initialize(ctx context.Context) error {
	db := m.db.WithContext(ctx)
	if err := db.AutoMigrate(&StockItem{}); err != nil {
		return fmt.Errorf("migrating stock table: %w", err)
	}

	var count int64
	if err := db.Model(&StockItem{}).Count(&count).Error; err != nil {
		return fmt.Errorf("counting stock rows: %w", err)
	}
	if count > 0 {
		return nil
	}

	if err := db.Create(sampleStock()).Error; err != nil {
		return fmt.Errorf("seeding stock table: %w", err)
	}
	m.logger.Info("stock table seeded", "items", len(sampleStock()))
	return nil
}

// Execute runs one generated statement with its bound arguments and returns
// the rows as column-keyed maps. It implements nlquery.Executor.
func (m *Manager) Execute(ctx context.Context, stmt nlquery.Statement) ([]nlquery.Row, error) {
	ctx, span := m.obs.Tracer().StartExecute(ctx, stmt.SQL)
	defer span.End()

	started := time.Now()
	var rows []map[string]any
	if err := m.db.WithContext(ctx).Raw(stmt.SQL, stmt.Args...).Scan(&rows).Error; err != nil {
		err = fmt.Errorf("executing statement: %w", err)
		observability.RecordError(span, err)
		return nil, err
	}
	m.obs.Metrics().RecordDBQuery(ctx, time.Since(started))
	m.logger.Debug("statement executed",
		"sql", stmt.SQL,
		"rows", len(rows),
		"duration", time.Since(started),
	)

	out := make([]nlquery.Row, len(rows))
	for i, row := range rows {
		out[i] = nlquery.Row(row)
	}
	return out, nil
}

// AllProducts returns every product ordered by name.
func (m *Manager) AllProducts(ctx context.Context) ([]StockItem, error) {
	var items []StockItem
	err := m.db.WithContext(ctx).Order("name").Find(&items).Error
	return items, err
}

// ProductByID returns the product with the given item ID.
func (m *Manager) ProductByID(ctx context.Context, itemID string) (*StockItem, error) {
	var item StockItem
	err := m.db.WithContext(ctx).Where("item_id = ?", itemID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ProductsByCategory returns every product in a category, ordered by name.
func (m *Manager) ProductsByCategory(ctx context.Context, category string) ([]StockItem, error) {
	var items []StockItem
	err := m.db.WithContext(ctx).Where("category = ?", category).Order("name").Find(&items).Error
	return items, err
}

// LowStock returns products at or below the threshold, lowest first.
func (m *Manager) LowStock(ctx context.Context, threshold int) ([]StockItem, error) {
	var items []StockItem
	err := m.db.WithContext(ctx).Where("quantity <= ?", threshold).Order("quantity").Find(&items).Error
	return items, err
}

// OutOfStock returns products with zero quantity, ordered by name.
func (m *Manager) OutOfStock(ctx context.Context) ([]StockItem, error) {
	var items []StockItem
	err := m.db.WithContext(ctx).Where("quantity = 0").Order("name").Find(&items).Error
	return items, err
}

// SearchProducts returns products whose name or item ID contains the term.
func (m *Manager) SearchProducts(ctx context.Context, term string) ([]StockItem, error) {
	var items []StockItem
	pattern := "%" + term + "%"
	err := m.db.WithContext(ctx).
		Where("name LIKE ? OR item_id LIKE ?", pattern, pattern).
		Order("name").
		Find(&items).Error
	return items, err
}

// Categories returns the distinct product categories.
func (m *Manager) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := m.db.WithContext(ctx).
		Model(&StockItem{}).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error
	return categories, err
}

// UpdateQuantity sets a product's quantity. Returns ErrNotFound when the
// item does not exist.
func (m *Manager) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	result := m.db.WithContext(ctx).
		Model(&StockItem{}).
		Where("item_id = ?", itemID).
		Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddProduct inserts a new product.
func (m *Manager) AddProduct(ctx context.Context, item StockItem) error {
	return m.db.WithContext(ctx).Create(&item).Error
}

// Stats summarizes the stock table for the API.
type Stats struct {
	TotalProducts  int64            `json:"total_products"`
	TotalQuantity  int64            `json:"total_quantity"`
	Categories     map[string]int64 `json:"categories"`
	LowStockCount  int64            `json:"low_stock_count"`
	OutOfStockItem int64            `json:"out_of_stock_count"`
	AveragePrice   decimal.Decimal  `json:"average_price"`
}

// Stats computes summary statistics over the stock table.
func (m *Manager) Stats(ctx context.Context) (*Stats, error) {
	db := m.db.WithContext(ctx)
	stats := &Stats{Categories: make(map[string]int64)}

	if err := db.Model(&StockItem{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}

	var totals struct {
		TotalQuantity int64
		AveragePrice  decimal.Decimal
	}
	err := db.Model(&StockItem{}).
		Select("COALESCE(SUM(quantity), 0) AS total_quantity, COALESCE(AVG(price), 0) AS average_price").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	stats.TotalQuantity = totals.TotalQuantity
	stats.AveragePrice = totals.AveragePrice.Round(2)

	type categoryCount struct {
		Category string
		Count    int64
	}
	var counts []categoryCount
	err = db.Model(&StockItem{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	for _, c := range counts {
		stats.Categories[c.Category] = c.Count
	}

	if err := db.Model(&StockItem{}).Where("quantity <= ?", nlquery.DefaultLowStockThreshold).Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&StockItem{}).Where("quantity = 0").Count(&stats.OutOfStockItem).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
