package nlquery

// alwaysTruePredicate is the safe default for product types without a
// predicate entry; translation must never fail on an unmapped product.
const alwaysTruePredicate = "1=1"

// PredicateTable maps canonical product types to static SQL predicate
// fragments. The fragments are fixed strings, never built from user input.
type PredicateTable map[ProductType]string

// DefaultPredicateTable returns the predicate table for the stock schema.
// Every product type the grammar can produce has an entry.
func DefaultPredicateTable() PredicateTable {
	return PredicateTable{
		ProductTV:     "item_id LIKE 'TV%'",
		ProductPhone:  "item_id LIKE 'PH%'",
		ProductLaptop: "item_id LIKE 'LP%'",
		ProductTablet: "category = 'Tablets'",
		ProductDrive:  "item_id LIKE 'HD%'",
		ProductAll:    alwaysTruePredicate,
	}
}

// Predicate returns the fragment for a product type, falling back to the
// always-true predicate for unmapped types.
func (t PredicateTable) Predicate(product ProductType) string {
	if predicate, ok := t[product]; ok {
		return predicate
	}
	return alwaysTruePredicate
}
