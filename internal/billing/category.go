package billing

import (
	"errors"
	"fmt"
)

// ErrInvalidCategory reports a value outside the closed category set.
var ErrInvalidCategory = errors.New("invalid category")

// Category is the spending category of an expense. The set is closed; free
// text from callers must go through ParseCategory.
type Category string

const (
	CategoryMoradia           Category = "moradia"
	CategoryAlimentacao       Category = "alimentacao"
	CategoryRestauranteLanche Category = "restaurante_lanche"
	CategoryCasaUtilidades    Category = "casa_utilidades"
	CategorySaude             Category = "saude"
	CategoryTransporte        Category = "transporte"
	CategoryLazerOutros       Category = "lazer_outros"
)

// Categories lists every valid category in presentation order.
var Categories = []Category{
	CategoryMoradia,
	CategoryAlimentacao,
	CategoryRestauranteLanche,
	CategoryCasaUtilidades,
	CategorySaude,
	CategoryTransporte,
	CategoryLazerOutros,
}

// ParseCategory validates free-text input against the closed category set.
func ParseCategory(raw string) (Category, error) {
	c := Category(raw)
	if !c.Valid() {
		return "", fmt.Errorf("%w %q", ErrInvalidCategory, raw)
	}

	return c, nil
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}

	return false
}
