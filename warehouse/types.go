package warehouse

import (
	"entity-extractor/store"
)

// Zone is the storage climate of a bin.
type Zone int

const (
	ZoneDry Zone = iota
	ZoneCold
	ZoneFrozen
)

// Bin is a physical slot on a shelf.
type Bin struct {
	Code string
	Zone Zone
}

// Stock tracks how many units of a product sit in which bins.
type Stock struct {
	Product  store.Product
	Quantity int
	Bins     []Bin
	Status   store.OrderStatus
	Pending  []store.OrderStatus
	Counts   map[string]int
}

// Node embeds itself through a pointer; the loader must not loop.
type Node struct {
	*Node
	Label string
}
