package model

import "github.com/izus-fokus/easyReview/internal/util"

// OpenBlock lists the fields of one metadatablock that are still open for
// suggestions, as reported by the backend's open-fields endpoint.
type OpenBlock struct {
	Name       string         `json:"name"`
	Primitives []string       `json:"primitives"`
	Compounds  []OpenCompound `json:"compounds"`
}

// OpenCompound is an open compound field together with its child fields.
type OpenCompound struct {
	Name        string   `json:"name"`
	ChildFields []string `json:"childFields"`
}

// Contains reports whether the named field is open in this block, either as
// a primitive or as a child of an open compound.
func (b OpenBlock) Contains(name string) bool {
	for _, p := range b.Primitives {
		if p == name {
			return true
		}
	}
	for _, c := range b.Compounds {
		for _, child := range c.ChildFields {
			if child == name {
				return true
			}
		}
	}
	return false
}

// ContainsDisplayName looks up a field by its human-readable display name
// or its camelCase schema name. The listing publishes lowercased snake_case
// names, so both spellings are normalized before the lookup.
func (b OpenBlock) ContainsDisplayName(displayName string) bool {
	if b.Contains(util.DisplayNameKey(displayName)) {
		return true
	}
	return b.Contains(util.CamelToSnake(displayName))
}
