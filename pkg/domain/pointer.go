package domain

// PointerType enumerates pointer events the hover advisor reacts to
type PointerType string

const (
	PointerOver  PointerType = "over"
	PointerOut   PointerType = "out"
	PointerClick PointerType = "click"
)

// Region names a part of a card (or the tooltip) a pointer event targets
type Region string

const (
	RegionCard    Region = "card"
	RegionOwner   Region = "owner"
	RegionAuthor  Region = "author"
	RegionTitle   Region = "title"
	RegionTooltip Region = "tooltip"
)

// PointerEvent is a pointer event addressed by card index and region
type PointerEvent struct {
	Type   PointerType `json:"type"`
	Card   int         `json:"card"`
	Region Region      `json:"region"`
}
