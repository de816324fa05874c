package storage

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/embedded"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/samuelhany-cpu/NL-TO-SQL/internal/nlquery"
	"github.com/samuelhany-cpu/NL-TO-SQL/internal/observability"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	m := NewManager(db, nil, nil)
	require.NoError(t, m.Initialize(context.Background()))
	return m
}

func TestInitializeSeedsOnce(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	items, err := m.AllProducts(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, items)
	seeded := len(items)

	// A second Initialize must not duplicate the seed data.
	require.NoError(t, m.Initialize(ctx))
	items, err = m.AllProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, items, seeded)
}

func TestExecuteGeneratedStatements(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	translator := nlquery.NewTranslator(nil)

	tests := []struct {
		name  string
		node  nlquery.Node
		check func(t *testing.T, rows []nlquery.Row)
	}{
		{
			name: "List query returns every item ordered by name",
			node: &nlquery.ListQuery{Target: nlquery.TargetAllProducts},
			check: func(t *testing.T, rows []nlquery.Row) {
				assert.Len(t, rows, 17)
			},
		},
		{
			name: "Quantity by item id binds the parameter",
			node: &nlquery.QuantityQuery{ItemID: "TV-1234"},
			check: func(t *testing.T, rows []nlquery.Row) {
				require.Len(t, rows, 1)
				assert.Equal(t, "TV-1234", rows[0]["item_id"])
			},
		},
		{
			name: "Quantity by product uses the predicate table",
			node: &nlquery.QuantityQuery{Product: nlquery.ProductLaptop},
			check: func(t *testing.T, rows []nlquery.Row) {
				require.Len(t, rows, 3)
				for _, row := range rows {
					assert.Contains(t, row["item_id"], "LP-")
				}
			},
		},
		{
			name: "Availability excludes out-of-stock items",
			node: &nlquery.AvailabilityQuery{Target: nlquery.TargetAvailableProducts},
			check: func(t *testing.T, rows []nlquery.Row) {
				for _, row := range rows {
					assert.NotEqual(t, int64(0), row["quantity"])
				}
			},
		},
		{
			name: "Out-of-stock threshold finds the empty item",
			node: &nlquery.LowStockQuery{Threshold: 0},
			check: func(t *testing.T, rows []nlquery.Row) {
				require.Len(t, rows, 1)
				assert.Equal(t, "HD-6666", rows[0]["item_id"])
			},
		},
		{
			name: "Comparison binds the bound value",
			node: &nlquery.ComparisonQuery{Operator: nlquery.OpLessThan, Value: 5},
			check: func(t *testing.T, rows []nlquery.Row) {
				for _, row := range rows {
					assert.Less(t, row["quantity"], int64(5))
				}
				assert.NotEmpty(t, rows)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			statements := translator.Translate(tt.node)
			require.Len(t, statements, 1)

			rows, err := m.Execute(ctx, statements[0])
			require.NoError(t, err)
			tt.check(t, rows)
		})
	}
}

func TestExecuteInvalidStatement(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Execute(context.Background(), nlquery.Statement{SQL: "SELECT nope FROM nowhere;"})
	assert.Error(t, err)
}

func TestProductByID(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	item, err := m.ProductByID(ctx, "PH-1111")
	require.NoError(t, err)
	assert.Equal(t, "iPhone 15 Pro", item.Name)

	_, err = m.ProductByID(ctx, "XX-0000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductsByCategory(t *testing.T) {
	m := newTestManager(t)

	items, err := m.ProductsByCategory(context.Background(), "Tablets")
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, "Tablets", item.Category)
	}
}

func TestLowStockAndOutOfStock(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	low, err := m.LowStock(ctx, 5)
	require.NoError(t, err)
	require.NotEmpty(t, low)
	// Ordered lowest quantity first.
	for i := 1; i < len(low); i++ {
		assert.GreaterOrEqual(t, low[i].Quantity, low[i-1].Quantity)
	}
	for _, item := range low {
		assert.LessOrEqual(t, item.Quantity, 5)
	}

	out, err := m.OutOfStock(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "HD-6666", out[0].ItemID)
}

func TestSearchProducts(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	byName, err := m.SearchProducts(ctx, "Laptop")
	require.NoError(t, err)
	assert.NotEmpty(t, byName)

	byID, err := m.SearchProducts(ctx, "TV-")
	require.NoError(t, err)
	assert.Len(t, byID, 3)

	none, err := m.SearchProducts(ctx, "zzzzz")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCategories(t *testing.T) {
	m := newTestManager(t)

	categories, err := m.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Accessories", "Computers", "Electronics", "Storage", "Tablets"}, categories)
}

func TestUpdateQuantity(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.UpdateQuantity(ctx, "TV-1234", 99))
	item, err := m.ProductByID(ctx, "TV-1234")
	require.NoError(t, err)
	assert.Equal(t, 99, item.Quantity)

	assert.ErrorIs(t, m.UpdateQuantity(ctx, "XX-0000", 1), ErrNotFound)
}

func TestAddProduct(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	item := StockItem{
		ItemID:   "TV-7777",
		Name:     "Portable TV 24 inch",
		Quantity: 7,
		Category: "Electronics",
		Price:    decimal.RequireFromString("149.99"),
		Supplier: "Generic Corp",
	}
	require.NoError(t, m.AddProduct(ctx, item))

	got, err := m.ProductByID(ctx, "TV-7777")
	require.NoError(t, err)
	assert.Equal(t, item.Name, got.Name)

	// Duplicate primary key is rejected.
	assert.Error(t, m.AddProduct(ctx, item))
}

// spanNameRecorder is a TracerProvider that records the name of every span
// started through it and hands back noop spans.
type spanNameRecorder struct {
	embedded.TracerProvider
	names []string
}

func (r *spanNameRecorder) Tracer(string, ...trace.TracerOption) trace.Tracer {
	return &recordingSpanTracer{recorder: r}
}

type recordingSpanTracer struct {
	embedded.Tracer
	recorder *spanNameRecorder
}

func (t *recordingSpanTracer) Start(ctx context.Context, name string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
	t.recorder.names = append(t.recorder.names, name)
	return ctx, tracenoop.Span{}
}

func TestExecuteStartsSpan(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	rec := &spanNameRecorder{}
	obs := observability.NewConfig(observability.WithTracerProvider(rec))
	m := NewManager(db, nil, obs)
	require.NoError(t, m.Initialize(context.Background()))

	_, err = m.Execute(context.Background(), nlquery.Statement{SQL: "SELECT item_id FROM stock WHERE item_id = ?", Args: []any{"TV-1234"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"nlsql.execute"}, rec.names)
}

func TestStats(t *testing.T) {
	m := newTestManager(t)

	stats, err := m.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(17), stats.TotalProducts)
	assert.Equal(t, int64(1), stats.OutOfStockItem)
	assert.Greater(t, stats.TotalQuantity, int64(0))
	assert.True(t, stats.AveragePrice.GreaterThan(decimal.Zero))
	assert.Equal(t, int64(3), stats.Categories["Computers"])
	assert.Len(t, stats.Categories, 5)
}
