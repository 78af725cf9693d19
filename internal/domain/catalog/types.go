package catalog

import "errors"

var ErrInvalidCategory = errors.New("invalid product category")

type Category string

const (
	CategoryNecklaces Category = "necklaces"
	CategoryEarrings  Category = "earrings"
	CategoryRings     Category = "rings"
	CategoryBangles   Category = "bangles"
	CategoryBracelets Category = "bracelets"
	CategoryPendants  Category = "pendants"
)

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryNecklaces, CategoryEarrings, CategoryRings, CategoryBangles, CategoryBracelets, CategoryPendants:
		return true
	default:
		return false
	}
}

func NewCategory(s string) (Category, error) {
	category := Category(s)
	if !category.IsValid() {
		return "", ErrInvalidCategory
	}
	return category, nil
}
