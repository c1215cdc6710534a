package players

import (
	"encoding/json"

	"sportmatch/appcore/internal/relation"
)

// Player is a registered player. The same type serves the public directory
// and the authenticated user's own profile; directory entries simply arrive
// with fewer fields populated.
type Player struct {
	ID       string `json:"_id"`
	Name     string `json:"nombre"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"telefono,omitempty"`
	Locality string `json:"localidad,omitempty"`

	// Category 1-8, lower is stronger. nil when the player never set one.
	Category *int `json:"categoria,omitempty"`

	PreferredDays  []string `json:"diasPreferidos,omitempty"`
	PreferredTimes []string `json:"horariosPreferidos,omitempty"`

	// Affiliations keeps the backend's relation records raw; the encoding
	// varies per endpoint and only the relation package interprets it.
	Affiliations []json.RawMessage `json:"clubesAfiliados,omitempty"`

	// ActiveMatches are match references, same encoding caveat as above.
	ActiveMatches []json.RawMessage `json:"partidosActivos,omitempty"`

	Ratings []Rating `json:"valoraciones,omitempty"`
}

// Rating is a review another player left.
type Rating struct {
	Score    float64 `json:"puntuacion"`
	Comment  string  `json:"comentario,omitempty"`
	From     string  `json:"de,omitempty"`
	RatedAt  string  `json:"fecha,omitempty"`
}

// IsAffiliated reports whether the player belongs to the given club,
// whatever shape the affiliation records arrived in.
func (p *Player) IsAffiliated(clubID string) bool {
	if p == nil {
		return false
	}
	return relation.IsMember(p.Affiliations, clubID)
}
