package nlquery

import (
	"reflect"
	"testing"
)

func TestTranslateListQuery(t *testing.T) {
	tr := NewTranslator(nil)

	got := tr.Translate(&ListQuery{Target: TargetAllProducts})
	want := []Statement{{SQL: "SELECT item_id, name, quantity FROM stock ORDER BY name;"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Translate(ListQuery) = %v, want %v", got, want)
	}
}

func TestTranslateAvailabilityQuery(t *testing.T) {
	tr := NewTranslator(nil)

	got := tr.Translate(&AvailabilityQuery{Target: TargetAvailableProducts})
	want := "SELECT item_id, name, quantity FROM stock WHERE quantity > 0 ORDER BY name;"
	if len(got) != 1 || got[0].SQL != want {
		t.Errorf("Translate(AvailabilityQuery) = %v, want %q", got, want)
	}
}

func TestTranslateQuantityQuery(t *testing.T) {
	tr := NewTranslator(nil)

	tests := []struct {
		name     string
		query    *QuantityQuery
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "Item id is bound as a parameter",
			query:    &QuantityQuery{ItemID: "TV-1234"},
			wantSQL:  "SELECT item_id, name, quantity FROM stock WHERE item_id = ?;",
			wantArgs: []any{"TV-1234"},
		},
		{
			name:    "TV predicate",
			query:   &QuantityQuery{Product: ProductTV},
			wantSQL: "SELECT item_id, name, quantity FROM stock WHERE item_id LIKE 'TV%';",
		},
		{
			name:    "Phone predicate",
			query:   &QuantityQuery{Product: ProductPhone},
			wantSQL: "SELECT item_id, name, quantity FROM stock WHERE item_id LIKE 'PH%';",
		},
		{
			name:    "Laptop predicate",
			query:   &QuantityQuery{Product: ProductLaptop},
			wantSQL: "SELECT item_id, name, quantity FROM stock WHERE item_id LIKE 'LP%';",
		},
		{
			name:    "Tablet predicate uses category",
			query:   &QuantityQuery{Product: ProductTablet},
			wantSQL: "SELECT item_id, name, quantity FROM stock WHERE category = 'Tablets';",
		},
		{
			name:    "All products predicate is always true",
			query:   &QuantityQuery{Product: ProductAll},
			wantSQL: "SELECT item_id, name, quantity FROM stock WHERE 1=1;",
		},
		{
			name:    "Unmapped product falls back to always true",
			query:   &QuantityQuery{Product: ProductType("TOASTER")},
			wantSQL: "SELECT item_id, name, quantity FROM stock WHERE 1=1;",
		},
		{
			name:    "Neither item nor product is the catch-all",
			query:   &QuantityQuery{},
			wantSQL: "SELECT item_id, name, quantity FROM stock;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tr.Translate(tt.query)
			if len(got) != 1 {
				t.Fatalf("expected one statement, got %v", got)
			}
			if got[0].SQL != tt.wantSQL {
				t.Errorf("SQL = %q, want %q", got[0].SQL, tt.wantSQL)
			}
			if !reflect.DeepEqual(got[0].Args, tt.wantArgs) {
				t.Errorf("Args = %v, want %v", got[0].Args, tt.wantArgs)
			}
		})
	}
}

func TestTranslateLowStockQuery(t *testing.T) {
	tr := NewTranslator(nil)

	got := tr.Translate(&LowStockQuery{Threshold: DefaultLowStockThreshold})
	want := "SELECT item_id, name, quantity FROM stock WHERE quantity <= 10 ORDER BY quantity;"
	if len(got) != 1 || got[0].SQL != want {
		t.Errorf("Translate(LowStockQuery{10}) = %v, want %q", got, want)
	}

	got = tr.Translate(&LowStockQuery{Threshold: 0})
	want = "SELECT item_id, name, quantity FROM stock WHERE quantity <= 0 ORDER BY quantity;"
	if len(got) != 1 || got[0].SQL != want {
		t.Errorf("Translate(LowStockQuery{0}) = %v, want %q", got, want)
	}
}

func TestTranslateComparisonQuery(t *testing.T) {
	tr := NewTranslator(nil)

	got := tr.Translate(&ComparisonQuery{Operator: OpLessThan, Value: 10})
	if len(got) != 1 {
		t.Fatalf("expected one statement, got %v", got)
	}
	if got[0].SQL != "SELECT item_id, name, quantity FROM stock WHERE quantity < ? ORDER BY quantity;" {
		t.Errorf("less-than SQL = %q", got[0].SQL)
	}
	if !reflect.DeepEqual(got[0].Args, []any{10}) {
		t.Errorf("less-than args = %v", got[0].Args)
	}

	got = tr.Translate(&ComparisonQuery{Operator: OpGreaterThan, Value: 50})
	if len(got) != 1 {
		t.Fatalf("expected one statement, got %v", got)
	}
	if got[0].SQL != "SELECT item_id, name, quantity FROM stock WHERE quantity > ? ORDER BY quantity DESC;" {
		t.Errorf("greater-than SQL = %q", got[0].SQL)
	}
}

func TestTranslateCompoundFlattens(t *testing.T) {
	tr := NewTranslator(nil)

	left := &QuantityQuery{Product: ProductTV}
	right := &QuantityQuery{Product: ProductPhone}
	compound := &CompoundQuery{Left: left, Right: right}

	got := tr.Translate(compound)
	want := append(tr.Translate(left), tr.Translate(right)...)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Translate(CompoundQuery) = %v, want concatenation %v", got, want)
	}

	// Nested compounds flatten recursively.
	nested := &CompoundQuery{Left: compound, Right: &ListQuery{Target: TargetAllProducts}}
	if got := tr.Translate(nested); len(got) != 3 {
		t.Errorf("nested compound produced %d statements, want 3", len(got))
	}
}

func TestTranslateUnknownShapeIsCatchAll(t *testing.T) {
	tr := NewTranslator(nil)

	got := tr.Translate(nil)
	want := []Statement{{SQL: "SELECT item_id, name, quantity FROM stock;"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Translate(nil) = %v, want catch-all %v", got, want)
	}
}

func TestTranslateCustomPredicateTable(t *testing.T) {
	tr := NewTranslator(PredicateTable{ProductTV: "item_id LIKE 'TELE%'"})

	got := tr.Translate(&QuantityQuery{Product: ProductTV})
	if got[0].SQL != "SELECT item_id, name, quantity FROM stock WHERE item_id LIKE 'TELE%';" {
		t.Errorf("custom predicate SQL = %q", got[0].SQL)
	}
}

func TestStatementRender(t *testing.T) {
	tests := []struct {
		name string
		stmt Statement
		want string
	}{
		{
			name: "No args is the raw SQL",
			stmt: Statement{SQL: "SELECT item_id, name, quantity FROM stock;"},
			want: "SELECT item_id, name, quantity FROM stock;",
		},
		{
			name: "String arg is quoted",
			stmt: Statement{
				SQL:  "SELECT item_id, name, quantity FROM stock WHERE item_id = ?;",
				Args: []any{"TV-1234"},
			},
			want: "SELECT item_id, name, quantity FROM stock WHERE item_id = 'TV-1234';",
		},
		{
			name: "Numeric arg is inlined bare",
			stmt: Statement{
				SQL:  "SELECT item_id, name, quantity FROM stock WHERE quantity < ? ORDER BY quantity;",
				Args: []any{10},
			},
			want: "SELECT item_id, name, quantity FROM stock WHERE quantity < 10 ORDER BY quantity;",
		},
		{
			name: "Embedded quote is doubled",
			stmt: Statement{SQL: "WHERE name = ?", Args: []any{"O'Brien"}},
			want: "WHERE name = 'O''Brien'",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stmt.Render(); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPredicateTableFallback(t *testing.T) {
	table := DefaultPredicateTable()
	for _, product := range []ProductType{ProductTV, ProductPhone, ProductLaptop, ProductTablet, ProductDrive, ProductAll} {
		if table.Predicate(product) == "" {
			t.Errorf("product %q has empty predicate", product)
		}
	}
	if got := table.Predicate(ProductType("UNKNOWN")); got != "1=1" {
		t.Errorf("unmapped product predicate = %q, want 1=1", got)
	}
}
