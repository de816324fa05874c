package nlquery

import (
	"fmt"
	"sort"
	"strings"
)

// selectClause is the only projection the translator ever emits; no other
// statement forms (INSERT, UPDATE, DDL) are produced.
const selectClause = "SELECT item_id, name, quantity FROM stock"

// Statement is one generated SQL statement. User-supplied values (item IDs,
// comparison numbers) are bound as placeholders in Args rather than spliced
// into SQL; the static predicate fragments and grammar-fixed thresholds live
// in the statement text itself.
type Statement struct {
	SQL  string `json:"sql"`
	Args []any  `json:"args,omitempty"`
}

// Render returns the statement with its arguments inlined, for display and
// logging. Execution always goes through SQL plus Args.
func (s Statement) Render() string {
	if len(s.Args) == 0 {
		return s.SQL
	}
	var b strings.Builder
	arg := 0
	for i := 0; i < len(s.SQL); i++ {
		if s.SQL[i] == '?' && arg < len(s.Args) {
			b.WriteString(renderArg(s.Args[arg]))
			arg++
			continue
		}
		b.WriteByte(s.SQL[i])
	}
	return b.String()
}

func renderArg(arg any) string {
	switch v := arg.(type) {
	case string:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Translator converts ASTs to SQL statements via fixed structural templates
// and a static product predicate table. Translation is total: unrecognized
// shapes produce the catch-all statement, never an error.
type Translator struct {
	predicates PredicateTable
}

// NewTranslator creates a translator with the given predicate table. A nil
// table uses the default.
func NewTranslator(predicates PredicateTable) *Translator {
	if predicates == nil {
		predicates = DefaultPredicateTable()
	}
	return &Translator{predicates: predicates}
}

// Products returns the product types the predicate table covers, sorted.
func (t *Translator) Products() []ProductType {
	products := make([]ProductType, 0, len(t.predicates))
	for product := range t.predicates {
		products = append(products, product)
	}
	sort.Slice(products, func(i, j int) bool { return products[i] < products[j] })
	return products
}

// Translate maps an AST to its SQL statements. Single queries produce one
// statement; compound queries produce the flattened concatenation of their
// children's statements, in order.
func (t *Translator) Translate(node Node) []Statement {
	switch q := node.(type) {
	case *CompoundQuery:
		statements := t.Translate(q.Left)
		return append(statements, t.Translate(q.Right)...)

	case *QuantityQuery:
		if q.ItemID != "" {
			return []Statement{{
				SQL:  selectClause + " WHERE item_id = ?;",
				Args: []any{q.ItemID},
			}}
		}
		if q.Product != "" {
			return []Statement{{
				SQL: selectClause + " WHERE " + t.predicates.Predicate(q.Product) + ";",
			}}
		}
		return []Statement{{SQL: selectClause + ";"}}

	case *ListQuery:
		return []Statement{{SQL: selectClause + " ORDER BY name;"}}

	case *AvailabilityQuery:
		return []Statement{{SQL: selectClause + " WHERE quantity > 0 ORDER BY name;"}}

	case *LowStockQuery:
		return []Statement{{
			SQL: fmt.Sprintf(selectClause+" WHERE quantity <= %d ORDER BY quantity;", q.Threshold),
		}}

	case *ComparisonQuery:
		if q.Operator == OpGreaterThan {
			return []Statement{{
				SQL:  selectClause + " WHERE quantity > ? ORDER BY quantity DESC;",
				Args: []any{q.Value},
			}}
		}
		return []Statement{{
			SQL:  selectClause + " WHERE quantity < ? ORDER BY quantity;",
			Args: []any{q.Value},
		}}

	default:
		return []Statement{{SQL: selectClause + ";"}}
	}
}
