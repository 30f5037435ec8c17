package testmodels

import "github.com/go-openapi/strfmt"

type Player struct {

	// Timestamp when the player record was created.
	// Required: true
	// Format: date-time
	CreatedAt *strfmt.DateTime `json:"CreatedAt"`

	// Unique identifier for the player.
	// Required: true
	ID *string `json:"Id"`

	// Display name of the player.
	// Required: true
	Name *string `json:"Name"`

	// Current rating points.
	Rating int `json:"Rating,omitempty"`

	// Playing status, e.g. "active" or "retired".
	Status string `json:"Status,omitempty"`

	// club Url
	ClubURL string `json:"ClubUrl,omitempty"`
}
