package block

import "fmt"

// Kind identifies the type of an emitted block.
type Kind int

// Block kinds, in recognizer priority order where applicable.
const (
	KindUnorderedList Kind = iota
	KindOrderedList
	KindHeading
	KindCodeBlock
	KindDiv
	KindRawHTML
	KindTable
	KindHorizontalRule
	KindParagraph
	KindListItem
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [...]string{
	KindUnorderedList:  "unordered_list",
	KindOrderedList:    "ordered_list",
	KindHeading:        "heading",
	KindCodeBlock:      "code_block",
	KindDiv:            "div",
	KindRawHTML:        "raw_html",
	KindTable:          "table",
	KindHorizontalRule: "horizontal_rule",
	KindParagraph:      "paragraph",
	KindListItem:       "list_item",
}

// Kinds returns every kind in a stable order.
func Kinds() []Kind {
	kinds := make([]Kind, len(kindNames))
	for i := range kindNames {
		kinds[i] = Kind(i)
	}
	return kinds
}

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText makes kinds usable as JSON object keys.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Stats counts emitted blocks per kind.
type Stats map[Kind]int

// Add accumulates other into s.
func (s Stats) Add(other Stats) {
	for kind, n := range other {
		s[kind] += n
	}
}

// Total returns the number of blocks, list items excluded.
func (s Stats) Total() int {
	total := 0
	for kind, n := range s {
		if kind != KindListItem {
			total += n
		}
	}
	return total
}
