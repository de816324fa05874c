package nlquery

import (
	"fmt"
	"strings"
)

// nodeLabels maps tree node types to display headings.
var nodeLabels = map[string]string{
	"QuantityQuery":     "Quantity Query",
	"CompoundQuery":     "Compound Query (Multiple Questions)",
	"ListQuery":         "List Query",
	"AvailabilityQuery": "Availability Query",
	"LowStockQuery":     "Low Stock Query",
	"ComparisonQuery":   "Comparison Query",
}

// productDisplayNames maps canonical product types to user-facing names.
var productDisplayNames = map[string]string{
	"TV":     "Television",
	"PHONE":  "Mobile Phone",
	"LAPTOP": "Laptop",
	"TABLET": "Tablet",
	"DRIVE":  "Storage Drive",
	"ALL":    "All Products",
}

// RenderTextTree produces an indented text rendering of a serializable AST
// tree, two spaces per level.
func RenderTextTree(tree *Tree) string {
	var b strings.Builder
	renderNode(&b, tree, 0)
	return b.String()
}

func renderNode(b *strings.Builder, tree *Tree, indent int) {
	prefix := strings.Repeat("  ", indent)
	b.WriteString(prefix)
	b.WriteString(describeNode(tree))
	b.WriteByte('\n')
	for _, child := range tree.Children {
		renderNode(b, child, indent+1)
	}
}

func describeNode(tree *Tree) string {
	if label, ok := nodeLabels[tree.Type]; ok {
		return label
	}

	switch tree.Type {
	case "OriginalPhrase":
		return fmt.Sprintf("Original Input: %q", tree.Value)
	case "QueryStyle":
		return "Query Style: " + styleDisplayName(fmt.Sprint(tree.Value))
	case "ProductType":
		name := fmt.Sprint(tree.Value)
		if display, ok := productDisplayNames[name]; ok {
			name = display
		}
		return "Product Type: " + name
	case "ItemID":
		return fmt.Sprintf("Specific Item: %v", tree.Value)
	case "Location":
		if fmt.Sprint(tree.Value) == "stock" {
			return "Location: Warehouse"
		}
		return "Location: Store"
	case "Threshold":
		if fmt.Sprint(tree.Value) == "0" {
			return "Threshold: Out of Stock (0)"
		}
		return fmt.Sprintf("Threshold: Low Stock (<= %v)", tree.Value)
	case "Operator":
		if fmt.Sprint(tree.Value) == string(OpLessThan) {
			return "Comparison: Less Than"
		}
		return "Comparison: Greater Than"
	case "Value":
		return fmt.Sprintf("Value: %v", tree.Value)
	case "Target":
		if strings.Contains(fmt.Sprint(tree.Value), "all") {
			return "Target: All Products"
		}
		return "Target: Available Products"
	}

	if tree.Value != nil {
		return fmt.Sprintf("%s: %v", tree.Type, tree.Value)
	}
	return tree.Type
}

func styleDisplayName(style string) string {
	switch QueryStyle(style) {
	case StyleConversational:
		return "Conversational ('we have')"
	case StylePoliteRequest:
		return "Polite Request ('can you tell me')"
	case StyleFormalRequest:
		return "Formal Request ('i want to know')"
	default:
		return "Direct Question"
	}
}
