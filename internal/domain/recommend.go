package domain

import "slices"

// Query holds the environmental conditions to match against the catalog.
type Query struct {
	PH          float64 `json:"ph"`
	Temperature float64 `json:"temperature"`
	Rainfall    int     `json:"rainfall"`
	Season      Season  `json:"season"`
}

// Catalog is an ordered, read-only collection of crops. It is safe for
// concurrent use because nothing mutates it after construction.
type Catalog struct {
	crops []Crop
}

// NewCatalog builds a catalog from crops in the given order. The slice is
// copied so later changes by the caller are not observed.
func NewCatalog(crops []Crop) *Catalog {
	return &Catalog{crops: slices.Clone(crops)}
}

// Len returns the number of crops. A nil catalog is empty.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.crops)
}

// Crops returns a copy of the catalog contents in source order.
func (c *Catalog) Crops() []Crop {
	if c == nil {
		return []Crop{}
	}
	return slices.Clone(c.crops)
}

// Recommend returns every crop that admits q, in catalog order. The result is
// never nil; an empty slice means no crop is suitable.
func (c *Catalog) Recommend(q Query) []Crop {
	matched := []Crop{}
	if c == nil {
		return matched
	}
	for _, crop := range c.crops {
		if crop.Admits(q) {
			matched = append(matched, crop)
		}
	}
	return matched
}
