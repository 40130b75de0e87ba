package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/kitboxworks/kitbox-backend/pkg/enums"
)

// The cabinet frame adds a fixed 4 cm on top of the stacked compartments
// (2 cm angle-iron allowance top and bottom).
const FrameHeightAllowanceCM = 4

// CabinetConfiguration is the root aggregate the configurator wizard builds.
// Compartments are ordered by position and owned exclusively by their
// configuration.
type CabinetConfiguration struct {
	ID    uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name  string    `gorm:"column:name" json:"name"`
	Notes string    `gorm:"column:notes" json:"notes"`

	WidthCM int `gorm:"column:width_cm;not null" json:"width_cm"`
	DepthCM int `gorm:"column:depth_cm;not null" json:"depth_cm"`

	Color           enums.CabinetColor    `gorm:"column:color;not null" json:"color"`
	DoorColor       enums.DoorColor       `gorm:"column:door_color" json:"door_color"`
	AngleIronFinish enums.AngleIronFinish `gorm:"column:angle_iron_finish;not null" json:"angle_iron_finish"`
	WithAssembly    bool                  `gorm:"column:with_assembly;not null;default:false" json:"with_assembly"`

	Compartments []Compartment `gorm:"foreignKey:ConfigurationID;constraint:OnDelete:CASCADE" json:"compartments"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName pins the table name for gorm.
func (CabinetConfiguration) TableName() string { return "cabinet_configurations" }

// CompartmentHeightSum returns the stacked compartment heights without the
// frame allowance. This is the sizing input for the angle irons.
func (c CabinetConfiguration) CompartmentHeightSum() int {
	total := 0
	for _, comp := range c.Compartments {
		total += comp.HeightCM
	}
	return total
}

// OverallHeightCM is the formatted cabinet height: stacked compartments plus
// the fixed frame allowance.
func (c CabinetConfiguration) OverallHeightCM() int {
	return c.CompartmentHeightSum() + FrameHeightAllowanceCM
}

// DoorCount returns how many compartments carry a door.
func (c CabinetConfiguration) DoorCount() int {
	count := 0
	for _, comp := range c.Compartments {
		if comp.HasDoor {
			count++
		}
	}
	return count
}

// Compartment is one stacked cell of the cabinet.
type Compartment struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ConfigurationID uuid.UUID `gorm:"column:configuration_id;type:uuid;not null;index" json:"configuration_id"`
	Position        int       `gorm:"column:position;not null" json:"position"`

	HeightCM int `gorm:"column:height_cm;not null" json:"height_cm"`
	WidthCM  int `gorm:"column:width_cm;not null" json:"width_cm"`
	DepthCM  int `gorm:"column:depth_cm;not null" json:"depth_cm"`

	HasDoor   bool            `gorm:"column:has_door;not null;default:false" json:"has_door"`
	DoorColor enums.DoorColor `gorm:"column:door_color" json:"door_color"`
}

// TableName pins the table name for gorm.
func (Compartment) TableName() string { return "compartments" }
