package domain

// Remote category names (Polish, compared case-insensitively)
const (
	CategoryWorktop = "blat"
	CategoryPanel   = "płyta"
)

// Display modes
const (
	ModeWorktop = "worktop"
	ModePanel   = "panel"
	ModeFront   = "front"
	ModeGeneric = "generic"
)

// Navigation flavors
const (
	FlavorCatalog Flavor = "catalog"
	FlavorFront   Flavor = "front"
)

// Side finish values
const (
	SideSingle = 1
	SideDouble = 2

	// SideModeChoice marks records where the buyer picks the finish
	SideModeChoice = "1_2"
)

// StandardWidths is the fixed width enumeration the price matrix is keyed by,
// ascending. Only these widths can carry a per-meter price.
var StandardWidths = []int{600, 635, 650, 700, 800, 900, 1200, 1300}

// Slot counts for the delimited dimension fields
const (
	MaxWidthSlots  = 8
	MaxLengthSlots = 2
)

var DisplayModes = []string{
	ModeWorktop,
	ModePanel,
	ModeFront,
	ModeGeneric,
}
