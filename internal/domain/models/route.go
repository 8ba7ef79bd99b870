package models

import "time"

type RouteStatus string

const (
	RouteActive   RouteStatus = "active"
	RouteInactive RouteStatus = "inactive"
)

// Route is a path between two stations. EstimatedDuration is in minutes and
// projects a trip's end time from its departure.
type Route struct {
	ID                   int64       `json:"id"`
	Name                 string      `json:"name"`
	Code                 string      `json:"code"`
	OriginStationID      int64       `json:"originStationId"`
	DestinationStationID int64       `json:"destinationStationId"`
	DistanceKm           float64     `json:"distanceKm"`
	EstimatedDuration    int         `json:"estimatedDuration"`
	Status               RouteStatus `json:"status"`
	CreatedAt            time.Time   `json:"createdAt"`
	UpdatedAt            time.Time   `json:"updatedAt"`

	Origin      *Station `json:"originStation,omitempty"`
	Destination *Station `json:"destinationStation,omitempty"`
}
