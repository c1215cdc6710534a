package clubs

import (
	"encoding/json"

	"sportmatch/appcore/internal/geo"
)

// Club is a club record. Read-mostly from this layer: the roster and match
// lists change only as a side effect of players affiliating or joining.
type Club struct {
	ID       string `json:"_id"`
	Name     string `json:"nombreClub"`
	City     string `json:"ciudad,omitempty"`
	Locality string `json:"localidad,omitempty"`
	Province string `json:"provincia,omitempty"`
	Address  string `json:"direccion,omitempty"`

	Coordinates *geo.Coordinate `json:"coordenadas,omitempty"`

	Roster []Member `json:"jugadoresAfiliados,omitempty"`

	// ActiveMatches keeps the raw references; only counts matter here.
	ActiveMatches []json.RawMessage `json:"partidosActivos,omitempty"`

	Schedule []ScheduleEntry `json:"horarios,omitempty"`
	Rating   float64         `json:"valoracion,omitempty"`
}

// Member is the roster projection of a player: just enough for counting and
// the category histogram.
type Member struct {
	ID       string `json:"_id"`
	Name     string `json:"nombre,omitempty"`
	Category *int   `json:"categoria,omitempty"`
}

// ScheduleEntry is one opening-hours row.
type ScheduleEntry struct {
	Day   string `json:"dia"`
	Open  string `json:"abre,omitempty"`
	Close string `json:"cierra,omitempty"`
}

// MemberCount is the affiliated-player count a club card shows.
func (c *Club) MemberCount() int {
	return len(c.Roster)
}

// ActiveMatchCount is the number of matches currently hosted.
func (c *Club) ActiveMatchCount() int {
	return len(c.ActiveMatches)
}

// DistanceLabel formats the distance from the user's position to the club,
// or the unknown-distance sentinel when either side has no coordinate.
func (c *Club) DistanceLabel(from *geo.Coordinate) string {
	return geo.DistanceLabel(from, c.Coordinates)
}
