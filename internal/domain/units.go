// Package domain defines the core types and interfaces for recipe costing.
// All other packages depend on domain; domain depends on nothing but the
// ordered map used for summaries.
package domain

import "fmt"

// UnitName names a unit of measure within its type ("gram", "cup").
type UnitName string

// UnitType is the measurement system a unit belongs to ("mass", "volume").
type UnitType string

// Unit types shipped with the built-in catalog.
const (
	Mass   UnitType = "mass"
	Volume UnitType = "volume"
	Count  UnitType = "count"
)

// Unit names shipped with the built-in catalog.
const (
	Milligram UnitName = "milligram"
	Gram      UnitName = "gram"
	Kilogram  UnitName = "kilogram"
	Ounce     UnitName = "ounce"
	Pound     UnitName = "pound"

	Milliliter UnitName = "milliliter"
	Liter      UnitName = "liter"
	Teaspoon   UnitName = "teaspoon"
	Tablespoon UnitName = "tablespoon"
	Cup        UnitName = "cup"
	FluidOunce UnitName = "fluid ounce"

	Each  UnitName = "each"
	Dozen UnitName = "dozen"
)

// UnitKey identifies a unit independent of any amount. It is the vertex
// key of the conversion graph.
type UnitKey struct {
	Name UnitName
	Type UnitType
}

func (k UnitKey) String() string {
	return fmt.Sprintf("%s (%s)", k.Name, k.Type)
}

// UnitOfMeasure is a quantity tagged with its unit. It is a value type;
// conversions produce new values.
type UnitOfMeasure struct {
	Amount float64
	Name   UnitName
	Type   UnitType
}

// Key returns the unit identity of u.
func (u UnitOfMeasure) Key() UnitKey {
	return UnitKey{Name: u.Name, Type: u.Type}
}

func (u UnitOfMeasure) String() string {
	return fmt.Sprintf("%g %s", u.Amount, u.Name)
}

// ConversionEdge is a directed conversion: an amount in From multiplied
// by Factor is the equivalent amount in To. The reverse direction is not
// implied.
type ConversionEdge struct {
	FromName UnitName
	FromType UnitType
	ToName   UnitName
	ToType   UnitType
	Factor   float64
}

// From returns the source unit of the edge.
func (e ConversionEdge) From() UnitKey {
	return UnitKey{Name: e.FromName, Type: e.FromType}
}

// To returns the target unit of the edge.
func (e ConversionEdge) To() UnitKey {
	return UnitKey{Name: e.ToName, Type: e.ToType}
}
