package matches

import (
	"encoding/json"

	"sportmatch/appcore/internal/geo"
	"sportmatch/appcore/internal/relation"
)

// Lifecycle states as the backend spells them.
const (
	StateAvailable = "disponible"
	StateFull      = "completo"
	StateCancelled = "cancelado"
	StateFinished  = "finalizado"
)

// DefaultCapacity applies when the backend omits jugadoresMaximos. A padel
// match takes four players.
const DefaultCapacity = 4

// Match is a scheduled match. Matches are never deleted locally, only
// replaced by whatever the backend returns.
type Match struct {
	ID string `json:"_id"`

	// ClubRef is the hosting club reference, nullable and heterogeneously
	// encoded (bare id or populated object) depending on the endpoint.
	ClubRef  json.RawMessage `json:"clubId,omitempty"`
	ClubName string          `json:"nombreClub,omitempty"`

	Court    string `json:"cancha,omitempty"`
	Date     string `json:"fecha,omitempty"`
	Time     string `json:"hora,omitempty"`
	Category int    `json:"categoria,omitempty"`

	// MaxPlayers is nil when the backend omits it; Capacity() applies the
	// default. An explicit 0 is kept as 0.
	MaxPlayers *int `json:"jugadoresMaximos,omitempty"`

	// Players holds the raw participant records; counts are all this layer
	// needs from them.
	Players []json.RawMessage `json:"jugadores,omitempty"`

	Messages []Message `json:"mensajes,omitempty"`

	State       string          `json:"estado,omitempty"`
	Price       float64         `json:"precio,omitempty"`
	Locality    string          `json:"localidad,omitempty"`
	Address     string          `json:"direccion,omitempty"`
	Description string          `json:"descripcion,omitempty"`
	Coordinates *geo.Coordinate `json:"coordenadas,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`
	// The backend really does spell the field "exprire_at".
	ExpireAt string `json:"exprire_at,omitempty"`
}

// Message is a free-form chat message attached to a match.
type Message struct {
	ID     string `json:"_id,omitempty"`
	Text   string `json:"mensaje"`
	Sender string `json:"remitente,omitempty"`
	SentAt string `json:"fecha,omitempty"`
}

// PlayerCount is the current number of participants.
func (m *Match) PlayerCount() int {
	return len(m.Players)
}

// Capacity returns the effective capacity, defaulting when unset.
func (m *Match) Capacity() int {
	if m.MaxPlayers == nil {
		return DefaultCapacity
	}
	return *m.MaxPlayers
}

// HostClubID resolves the hosting club reference to a canonical id, or ""
// for club-less matches (private courts).
func (m *Match) HostClubID() string {
	return relation.ClubID(m.ClubRef)
}

// matchList tolerates both response shapes the backend uses for match
// collections: the {"partidos":[...]} envelope and a bare array.
type matchList struct {
	Matches []Match
}

func (l *matchList) UnmarshalJSON(data []byte) error {
	var envelope struct {
		Matches []Match `json:"partidos"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Matches != nil {
		l.Matches = envelope.Matches
		return nil
	}
	return json.Unmarshal(data, &l.Matches)
}
