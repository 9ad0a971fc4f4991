// attributes.go
//
// A construction materials catalog service: stores, brands, items, inventory and material attributes
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of materials-catalog.
// materials-catalog is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// materials-catalog is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with materials-catalog.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package models

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Attributes is a category-specific specification record extending exactly one Item
type Attributes interface {
	Checker
	Kind() Kind
	PrimaryKey() uint64
	SetPrimaryKey(id uint64)
	ItemRef() uint64
	SetItemRef(itemID uint64)
	LoadedItem() *Item
}

// AttributeSpec describes one attribute extension table.
//
// ChoiceCategory is the advisory category used to narrow item choices; ExpectedCategory
// is the category name enforced at save time. The two spellings differ for Brick, Pipe and
// Cable ("Bricks" vs "Brick"): both are kept as-is until the catalog settles on one.
type AttributeSpec struct {
	Kind             Kind
	Title            string
	ExpectedCategory string
	ChoiceCategory   string
	New              func() Attributes
}

var attributeSpecs = map[Kind]AttributeSpec{
	KindCement:   {Kind: KindCement, Title: "Cement", ExpectedCategory: "Cement", ChoiceCategory: "Cement", New: func() Attributes { return &CementAttributes{} }},
	KindSand:     {Kind: KindSand, Title: "Sand", ExpectedCategory: "Sand", ChoiceCategory: "Sand", New: func() Attributes { return &SandAttributes{} }},
	KindConcrete: {Kind: KindConcrete, Title: "Concrete", ExpectedCategory: "Concrete", ChoiceCategory: "Concrete", New: func() Attributes { return &ConcreteAttributes{} }},
	KindBrick:    {Kind: KindBrick, Title: "Brick", ExpectedCategory: "Brick", ChoiceCategory: "Bricks", New: func() Attributes { return &BrickAttributes{} }},
	KindPipe:     {Kind: KindPipe, Title: "Pipe", ExpectedCategory: "Pipe", ChoiceCategory: "Pipes", New: func() Attributes { return &PipeAttributes{} }},
	KindSteel:    {Kind: KindSteel, Title: "Steel", ExpectedCategory: "Steel", ChoiceCategory: "Steel", New: func() Attributes { return &SteelAttributes{} }},
	KindPaint:    {Kind: KindPaint, Title: "Paint", ExpectedCategory: "Paint", ChoiceCategory: "Paint", New: func() Attributes { return &PaintAttributes{} }},
	KindCable:    {Kind: KindCable, Title: "Cable", ExpectedCategory: "Cable", ChoiceCategory: "Cables", New: func() Attributes { return &CableAttributes{} }},
}

// SpecFor returns the attribute spec of kind
func SpecFor(kind Kind) (AttributeSpec, bool) {
	spec, ok := attributeSpecs[kind]
	return spec, ok
}

// NewAttributes allocates an empty record of the given attribute kind
func NewAttributes(kind Kind) (Attributes, error) {
	spec, ok := attributeSpecs[kind]
	if !ok {
		return nil, fmt.Errorf("unknown attribute kind %q", kind)
	}
	return spec.New(), nil
}

// AllAttributeModels returns one empty record of every attribute kind, for migrations
func AllAttributeModels() []interface{} {
	out := make([]interface{}, 0, len(AttributeKinds))
	for _, kind := range AttributeKinds {
		out = append(out, attributeSpecs[kind].New())
	}
	return out
}

// AttributesLabel renders "<Title> Specs - item name"
func AttributesLabel(a Attributes) string {
	itemName := ""
	if item := a.LoadedItem(); item != nil {
		itemName = item.Name
	}
	return fmt.Sprintf("%s Specs - %s", attributeSpecs[a.Kind()].Title, itemName)
}

// AttributesPath returns the canonical retrieval path of an attribute record
func AttributesPath(a Attributes) string {
	return EntityPath(a.Kind(), a.PrimaryKey())
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

// NumericFields lists the json names of the integer and decimal columns of a record.
// A missing value for one of these would otherwise be stored as zero.
func NumericFields(a Attributes) []string {
	t := reflect.TypeOf(a)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	var names []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous {
			continue
		}
		if f.Type != decimalType && f.Type.Kind() != reflect.Uint32 {
			continue
		}
		name := strings.Split(f.Tag.Get("json"), ",")[0]
		if name == "" || name == "-" {
			continue
		}
		names = append(names, name)
	}
	return names
}

// AttributeBase carries the columns shared by every attribute table
type AttributeBase struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ItemID    uint64    `gorm:"not null;uniqueIndex" json:"item_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PrimaryKey returns the record identifier
func (b *AttributeBase) PrimaryKey() uint64 {
	return b.ID
}

// SetPrimaryKey targets an existing record for updates
func (b *AttributeBase) SetPrimaryKey(id uint64) {
	b.ID = id
}

// ItemRef returns the extended item identifier
func (b *AttributeBase) ItemRef() uint64 {
	return b.ItemID
}

// SetItemRef points the record at another item
func (b *AttributeBase) SetItemRef(itemID uint64) {
	b.ItemID = itemID
}

// CementAttributes holds cement specifications
type CementAttributes struct {
	AttributeBase
	Item                   *Item           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"item,omitempty"`
	Grade                  string          `gorm:"size:50;not null" json:"grade"`
	WeightPerBagKg         decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"weight_per_bag_kg"`
	SettingTimeMin         uint32          `gorm:"not null" json:"setting_time_min"`
	CompressiveStrengthMPa decimal.Decimal `gorm:"column:compressive_strength_mpa;type:decimal(5,2);not null" json:"compressive_strength_mpa"`
}

// SandAttributes holds sand specifications
type SandAttributes struct {
	AttributeBase
	Item           *Item           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"item,omitempty"`
	SandType       string          `gorm:"size:50;not null" json:"sand_type"`
	GrainSizeMm    decimal.Decimal `gorm:"column:grain_size_mm;type:decimal(5,2);not null" json:"grain_size_mm"`
	SourceLocation string          `gorm:"size:100;not null" json:"source_location"`
}

// ConcreteAttributes holds ready-mix concrete specifications
type ConcreteAttributes struct {
	AttributeBase
	Item            *Item  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"item,omitempty"`
	Grade           string `gorm:"size:50;not null" json:"grade"`
	SlumpMm         uint32 `gorm:"column:slump_mm;not null" json:"slump_mm"`
	AggregateSizeMm uint32 `gorm:"column:aggregate_size_mm;not null" json:"aggregate_size_mm"`
	CementRatio     string `gorm:"size:50;not null" json:"cement_ratio"`
}

// BrickAttributes holds brick specifications
type BrickAttributes struct {
	AttributeBase
	Item                   *Item           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"item,omitempty"`
	BrickType              string          `gorm:"size:50;not null" json:"brick_type"`
	DimensionsMm           string          `gorm:"column:dimensions_mm;size:50;not null" json:"dimensions_mm"`
	CompressiveStrengthMPa decimal.Decimal `gorm:"column:compressive_strength_mpa;type:decimal(6,2);not null" json:"compressive_strength_mpa"`
	WaterAbsorptionPercent decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"water_absorption_percent"`
}

// PipeAttributes holds pipe specifications
type PipeAttributes struct {
	AttributeBase
	Item            *Item           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"item,omitempty"`
	PipeMaterial    string          `gorm:"size:50;not null" json:"pipe_material"`
	NominalDiameter decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"nominal_diameter"`
	DiameterUnit    string          `gorm:"size:10;not null;default:mm" json:"diameter_unit"`
	LengthM         decimal.Decimal `gorm:"column:length_m;type:decimal(6,2);not null" json:"length_m"`
	PressureRating  string          `gorm:"size:50;not null" json:"pressure_rating"`
}

// SteelAttributes holds reinforcement steel specifications
type SteelAttributes struct {
	AttributeBase
	Item               *Item  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"item,omitempty"`
	SteelType          string `gorm:"size:50;not null" json:"steel_type"`
	DiameterMm         uint32 `gorm:"column:diameter_mm;not null" json:"diameter_mm"`
	TensileStrengthMPa uint32 `gorm:"column:tensile_strength_mpa;not null" json:"tensile_strength_mpa"`
}

// PaintAttributes holds paint specifications
type PaintAttributes struct {
	AttributeBase
	Item                *Item           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"item,omitempty"`
	PaintType           string          `gorm:"size:50;not null" json:"paint_type"`
	Base                string          `gorm:"size:50;not null" json:"base"`
	CoveragePerLiterSqm decimal.Decimal `gorm:"column:coverage_per_liter_sqm;type:decimal(6,2);not null" json:"coverage_per_liter_sqm"`
	DryingTimeHours     decimal.Decimal `gorm:"type:decimal(4,2);not null" json:"drying_time_hours"`
}

// CableAttributes holds electrical cable specifications
type CableAttributes struct {
	AttributeBase
	Item                *Item           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"item,omitempty"`
	CableType           string          `gorm:"size:50;not null" json:"cable_type"`
	ConductorMaterial   string          `gorm:"size:50;not null" json:"conductor_material"`
	CrossSectionAreaMm2 decimal.Decimal `gorm:"column:cross_section_area_mm2;type:decimal(6,2);not null" json:"cross_section_area_mm2"`
	VoltageRatingV      uint32          `gorm:"column:voltage_rating_v;not null" json:"voltage_rating_v"`
	InsulationType      string          `gorm:"size:50;not null" json:"insulation_type"`
}

func (CementAttributes) TableName() string   { return "cement_attributes" }
func (SandAttributes) TableName() string     { return "sand_attributes" }
func (ConcreteAttributes) TableName() string { return "concrete_attributes" }
func (BrickAttributes) TableName() string    { return "brick_attributes" }
func (PipeAttributes) TableName() string     { return "pipe_attributes" }
func (SteelAttributes) TableName() string    { return "steel_attributes" }
func (PaintAttributes) TableName() string    { return "paint_attributes" }
func (CableAttributes) TableName() string    { return "cable_attributes" }

func (*CementAttributes) Kind() Kind   { return KindCement }
func (*SandAttributes) Kind() Kind     { return KindSand }
func (*ConcreteAttributes) Kind() Kind { return KindConcrete }
func (*BrickAttributes) Kind() Kind    { return KindBrick }
func (*PipeAttributes) Kind() Kind     { return KindPipe }
func (*SteelAttributes) Kind() Kind    { return KindSteel }
func (*PaintAttributes) Kind() Kind    { return KindPaint }
func (*CableAttributes) Kind() Kind    { return KindCable }

func (a *CementAttributes) LoadedItem() *Item   { return a.Item }
func (a *SandAttributes) LoadedItem() *Item     { return a.Item }
func (a *ConcreteAttributes) LoadedItem() *Item { return a.Item }
func (a *BrickAttributes) LoadedItem() *Item    { return a.Item }
func (a *PipeAttributes) LoadedItem() *Item     { return a.Item }
func (a *SteelAttributes) LoadedItem() *Item    { return a.Item }
func (a *PaintAttributes) LoadedItem() *Item    { return a.Item }
func (a *CableAttributes) LoadedItem() *Item    { return a.Item }

// CheckFields validates cement columns
func (a *CementAttributes) CheckFields() []FieldProblem {
	return collect(
		requiredText("grade", a.Grade, 50),
		quantity("weight_per_bag_kg", a.WeightPerBagKg, 5, 2),
		quantity("compressive_strength_mpa", a.CompressiveStrengthMPa, 5, 2),
	)
}

// CheckFields validates sand columns
func (a *SandAttributes) CheckFields() []FieldProblem {
	return collect(
		requiredText("sand_type", a.SandType, 50),
		quantity("grain_size_mm", a.GrainSizeMm, 5, 2),
		requiredText("source_location", a.SourceLocation, 100),
	)
}

// CheckFields validates concrete columns
func (a *ConcreteAttributes) CheckFields() []FieldProblem {
	return collect(
		requiredText("grade", a.Grade, 50),
		requiredText("cement_ratio", a.CementRatio, 50),
	)
}

// CheckFields validates brick columns
func (a *BrickAttributes) CheckFields() []FieldProblem {
	return collect(
		requiredText("brick_type", a.BrickType, 50),
		requiredText("dimensions_mm", a.DimensionsMm, 50),
		quantity("compressive_strength_mpa", a.CompressiveStrengthMPa, 6, 2),
		quantity("water_absorption_percent", a.WaterAbsorptionPercent, 5, 2),
	)
}

// CheckFields validates pipe columns. An empty unit falls back to "mm".
func (a *PipeAttributes) CheckFields() []FieldProblem {
	if a.DiameterUnit == "" {
		a.DiameterUnit = "mm"
	}
	return collect(
		requiredText("pipe_material", a.PipeMaterial, 50),
		quantity("nominal_diameter", a.NominalDiameter, 6, 2),
		optionalText("diameter_unit", a.DiameterUnit, 10),
		quantity("length_m", a.LengthM, 6, 2),
		requiredText("pressure_rating", a.PressureRating, 50),
	)
}

// CheckFields validates steel columns
func (a *SteelAttributes) CheckFields() []FieldProblem {
	return collect(requiredText("steel_type", a.SteelType, 50))
}

// CheckFields validates paint columns
func (a *PaintAttributes) CheckFields() []FieldProblem {
	return collect(
		requiredText("paint_type", a.PaintType, 50),
		requiredText("base", a.Base, 50),
		quantity("coverage_per_liter_sqm", a.CoveragePerLiterSqm, 6, 2),
		quantity("drying_time_hours", a.DryingTimeHours, 4, 2),
	)
}

// CheckFields validates cable columns
func (a *CableAttributes) CheckFields() []FieldProblem {
	return collect(
		requiredText("cable_type", a.CableType, 50),
		requiredText("conductor_material", a.ConductorMaterial, 50),
		quantity("cross_section_area_mm2", a.CrossSectionAreaMm2, 6, 2),
		requiredText("insulation_type", a.InsulationType, 50),
	)
}
