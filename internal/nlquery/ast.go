package nlquery

// Node represents a node in the abstract syntax tree of a parsed question.
// The variant set is closed: every question the grammar recognizes lowers to
// exactly one of the types below.
type Node interface {
	nlNode()
	// Tree returns the serializable form of the node for API consumers and
	// renderers.
	Tree() *Tree
}

// QueryStyle describes how the question was phrased.
type QueryStyle string

const (
	StyleBasic          QueryStyle = "basic"
	StyleConversational QueryStyle = "conversational"
	StylePoliteRequest  QueryStyle = "polite_request"
	StyleFormalRequest  QueryStyle = "formal_request"
)

// ProductType is the canonical product category referenced by a question.
// Plural, singular and synonym surface forms all map to one canonical value.
type ProductType string

const (
	ProductTV     ProductType = "TV"
	ProductPhone  ProductType = "PHONE"
	ProductLaptop ProductType = "LAPTOP"
	ProductTablet ProductType = "TABLET"
	ProductDrive  ProductType = "DRIVE"
	ProductAll    ProductType = "ALL"
)

// Location is where the stock is being counted.
type Location string

const (
	LocationStore Location = "store"
	LocationStock Location = "stock"
)

// CompareOp is the operator of a comparison question.
type CompareOp string

const (
	OpLessThan    CompareOp = "less_than"
	OpGreaterThan CompareOp = "greater_than"
)

// Target identifies what a list or availability question enumerates.
type Target string

const (
	TargetAllProducts       Target = "all_products"
	TargetAvailableProducts Target = "available_products"
)

// DefaultLowStockThreshold is the quantity at or below which an item counts
// as low stock when the question does not imply "out" or "empty".
const DefaultLowStockThreshold = 10

// QuantityQuery asks how many of a product or a specific item are held at a
// location. Exactly one of ItemID and Product is set; Product is ProductAll
// when the question names no concrete product.
type QuantityQuery struct {
	OriginalPhrase string
	Style          QueryStyle
	ItemID         string
	Product        ProductType
	Location       Location
}

func (q *QuantityQuery) nlNode() {}

// ListQuery asks for every product.
type ListQuery struct {
	OriginalPhrase string
	Target         Target
}

func (q *ListQuery) nlNode() {}

// AvailabilityQuery asks which products are in stock.
type AvailabilityQuery struct {
	OriginalPhrase string
	Target         Target
}

func (q *AvailabilityQuery) nlNode() {}

// LowStockQuery asks which products are low or out of stock. Threshold is 0
// for "out"/"empty" phrasings and DefaultLowStockThreshold otherwise.
type LowStockQuery struct {
	OriginalPhrase string
	Threshold      int
}

func (q *LowStockQuery) nlNode() {}

// ComparisonQuery asks for products with quantity below or above a value.
type ComparisonQuery struct {
	OriginalPhrase string
	Operator       CompareOp
	Value          int
}

func (q *ComparisonQuery) nlNode() {}

// CompoundQuery joins exactly two complete single-question subtrees.
type CompoundQuery struct {
	Left  Node
	Right Node
}

func (q *CompoundQuery) nlNode() {}

// Tree is the serializable form of an AST node. A Tree either carries a
// scalar Value (leaf) or a non-empty Children list (branch), never neither.
type Tree struct {
	Type     string  `json:"type"`
	Value    any     `json:"value,omitempty"`
	Children []*Tree `json:"children,omitempty"`
}

func leaf(typ string, value any) *Tree {
	return &Tree{Type: typ, Value: value}
}

func (q *QuantityQuery) Tree() *Tree {
	children := []*Tree{
		leaf("OriginalPhrase", q.OriginalPhrase),
		leaf("QueryStyle", string(q.Style)),
	}
	if q.ItemID != "" {
		children = append(children, leaf("ItemID", q.ItemID))
	} else {
		children = append(children, leaf("ProductType", string(q.Product)))
	}
	children = append(children, leaf("Location", string(q.Location)))
	return &Tree{Type: "QuantityQuery", Children: children}
}

func (q *ListQuery) Tree() *Tree {
	return &Tree{Type: "ListQuery", Children: []*Tree{
		leaf("OriginalPhrase", q.OriginalPhrase),
		leaf("Target", string(q.Target)),
	}}
}

func (q *AvailabilityQuery) Tree() *Tree {
	return &Tree{Type: "AvailabilityQuery", Children: []*Tree{
		leaf("OriginalPhrase", q.OriginalPhrase),
		leaf("Target", string(q.Target)),
	}}
}

func (q *LowStockQuery) Tree() *Tree {
	return &Tree{Type: "LowStockQuery", Children: []*Tree{
		leaf("OriginalPhrase", q.OriginalPhrase),
		leaf("Threshold", q.Threshold),
	}}
}

func (q *ComparisonQuery) Tree() *Tree {
	return &Tree{Type: "ComparisonQuery", Children: []*Tree{
		leaf("OriginalPhrase", q.OriginalPhrase),
		leaf("Operator", string(q.Operator)),
		leaf("Value", q.Value),
	}}
}

func (q *CompoundQuery) Tree() *Tree {
	return &Tree{Type: "CompoundQuery", Children: []*Tree{
		q.Left.Tree(),
		q.Right.Tree(),
	}}
}
