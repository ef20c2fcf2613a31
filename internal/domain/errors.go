package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across layers.
var (
	ErrNotFound                  = errors.New("not found")
	ErrConversionNotFound        = errors.New("conversion not found")
	ErrNoSupplierFound           = errors.New("no supplier found")
	ErrMissingIngredientProducts = errors.New("no products for ingredient")
	ErrUnknownUnitType           = errors.New("unknown unit type")
	ErrInvalidOffer              = errors.New("invalid supplier offer")
	ErrInvalidCatalog            = errors.New("invalid catalog")
)

// ConversionNotFoundError reports that no path exists in the conversion
// graph from a quantity's unit to the requested unit.
type ConversionNotFoundError struct {
	From   UnitOfMeasure
	ToName UnitName
	ToType UnitType
}

func (e *ConversionNotFoundError) Error() string {
	return fmt.Sprintf("conversion not found: %s (%s) to %s (%s)", e.From, e.From.Type, e.ToName, e.ToType)
}

func (e *ConversionNotFoundError) Unwrap() error { return ErrConversionNotFound }

// NoSupplierFoundError reports that none of an ingredient's candidate
// products carries an offer.
type NoSupplierFoundError struct {
	Ingredient string
}

func (e *NoSupplierFoundError) Error() string {
	return fmt.Sprintf("no supplier found for %q", e.Ingredient)
}

func (e *NoSupplierFoundError) Unwrap() error { return ErrNoSupplierFound }

// MissingIngredientProductsError reports that the product lookup for an
// ingredient returned nothing.
type MissingIngredientProductsError struct {
	Ingredient string
}

func (e *MissingIngredientProductsError) Error() string {
	return fmt.Sprintf("no products for ingredient %q", e.Ingredient)
}

func (e *MissingIngredientProductsError) Unwrap() error { return ErrMissingIngredientProducts }
