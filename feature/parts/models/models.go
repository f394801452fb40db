package models

import "time"

// Part is a spare-part inventory record. BusinessRef is the externally
// meaningful identifier (the vendor/ERP reference code) and is unique across
// the table; ID is internal only.
type Part struct {
	ID             uint      `gorm:"column:id;primaryKey" json:"id"`
	BusinessRef    string    `gorm:"column:business_ref;uniqueIndex;size:64" json:"business_ref"`
	Name           string    `gorm:"column:name" json:"name"`
	Category       string    `gorm:"column:category" json:"category"`
	MachineModel   string    `gorm:"column:machine_model" json:"machine_model"`
	MachineVariant string    `gorm:"column:machine_variant" json:"machine_variant"`
	ProductType    string    `gorm:"column:product_type" json:"product_type"`
	Model          string    `gorm:"column:model" json:"model"`
	Tag            string    `gorm:"column:tag" json:"tag"`
	Unit           string    `gorm:"column:unit" json:"unit"`
	Location       string    `gorm:"column:location" json:"location"`
	Note           string    `gorm:"column:note" json:"note"`
	ImageURL       string    `gorm:"column:image_url" json:"image_url"`
	MachineTag     string    `gorm:"column:machine_tag" json:"machine_tag"`
	Quantity       int       `gorm:"column:quantity" json:"quantity"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name for Part.
func (Part) TableName() string {
	return "parts"
}

// Machine is independently managed reference data describing a machine a
// part can be compatible with.
type Machine struct {
	ID      uint   `gorm:"column:id;primaryKey" json:"id"`
	Model   string `gorm:"column:model" json:"model"`
	Variant string `gorm:"column:variant" json:"variant"`
}

// TableName overrides the table name for Machine.
func (Machine) TableName() string {
	return "machines"
}

// PartMachine is one part↔machine compatibility pair. Pairs are only ever
// written as a whole set per part, never individually.
type PartMachine struct {
	PartID    uint `gorm:"column:part_id;primaryKey" json:"part_id"`
	MachineID uint `gorm:"column:machine_id;primaryKey" json:"machine_id"`
}

// TableName overrides the table name for PartMachine.
func (PartMachine) TableName() string {
	return "part_machines"
}
