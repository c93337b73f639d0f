package component

import (
	"time"

	"github.com/milk9111/traceable/rationale"
)

type AssetKind string

const (
	AssetImage AssetKind = "image"
	AssetText  AssetKind = "text"
)

// Asset is an uploaded file placed on the board.
type Asset struct {
	Name      string
	Kind      AssetKind
	Category  rationale.Category
	Timestamp time.Time
	// Preview holds the first lines of a text asset.
	Preview string
}

var AssetComponent = NewComponent[Asset]()
