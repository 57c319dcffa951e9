// Package types contains common types used across the application
package types

import "time"

// Moment identifies the space-time coordinates of a chart.
type Moment struct {
	// Time is the local clock time; its location carries the UTC offset.
	Time        time.Time `json:"time"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Ayanamsa    string    `json:"ayanamsa"`
	HouseSystem string    `json:"house_system"`
}
