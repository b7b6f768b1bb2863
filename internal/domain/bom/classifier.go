package bom

import (
	"lumbertrace/internal/domain/material"
)

// Classification groups resolved components by material type, keeping
// resolver order inside each group.
type Classification struct {
	Raw       []*material.Material `json:"raw"`
	Processed []*material.Material `json:"processed"`

	// Other holds records with a type outside the known two. Storage validates
	// types, so this is only populated by data imported around validation.
	Other []*material.Material `json:"other,omitempty"`
}

// Classify partitions resolved. Every input lands in exactly one group.
func Classify(resolved []*material.Material) Classification {
	c := Classification{
		Raw:       []*material.Material{},
		Processed: []*material.Material{},
	}
	for _, m := range resolved {
		switch m.Type {
		case material.TypeRaw:
			c.Raw = append(c.Raw, m)
		case material.TypeProcessed:
			c.Processed = append(c.Processed, m)
		default:
			c.Other = append(c.Other, m)
		}
	}
	return c
}

// Len returns the number of classified materials.
func (c Classification) Len() int {
	return len(c.Raw) + len(c.Processed) + len(c.Other)
}
