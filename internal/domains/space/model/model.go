package model

import "atrium/shared/model"

const (
	TableName  = "spaces"
	EntityName = "space"

	FieldID       = "id"
	FieldName     = "name"
	FieldBuilding = "building"
	FieldFloor    = "floor"
	FieldLocation = "location"
	FieldCapacity = "capacity"
	FieldImageURL = "image_url"
	FieldStatus   = "status"
)

const (
	UtilityTableName  = "utilities"
	UtilityEntityName = "utility"

	UtilityFieldID    = "id"
	UtilityFieldKey   = "key"
	UtilityFieldLabel = "label"

	SpaceUtilityTableName = "space_utilities"
)

const (
	StatusActive      = "active"
	StatusInactive    = "inactive"
	StatusMaintenance = "maintenance"
)

// Space is a reservable physical resource. Only an active space admits new
// reservations; existing reservations survive a status change.
type Space struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Building string `db:"building"`
	Floor    string `db:"floor"`
	Location string `db:"location"`
	Capacity int    `db:"capacity"`
	ImageURL string `db:"image_url"`
	Status   string `db:"status"`
	model.Metadata
}

func (s *Space) Bookable() bool {
	return s.Status == StatusActive
}

// Utility is a feature tag attachable to spaces (projector, whiteboard, ...).
type Utility struct {
	ID          string `db:"id"`
	Key         string `db:"key"`
	Label       string `db:"label"`
	Description string `db:"description"`
	model.Metadata
}

type SpaceUtility struct {
	SpaceID   string `db:"space_id"`
	UtilityID string `db:"utility_id"`
}
