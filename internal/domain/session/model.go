package session

import "github.com/golang-jwt/jwt/v5"

// Status is the session state machine. Loading is only ever seen once, while
// the persisted session is being restored at startup.
type Status string

const (
	StatusLoading         Status = "loading"
	StatusUnauthenticated Status = "unauthenticated"
	StatusAuthenticated   Status = "authenticated"
)

// Claims is the payload the backend puts in its access tokens. The token is
// parsed unverified on the client purely to learn the player id and expiry;
// the backend re-validates it on every call.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"`
}

// Credentials is the login input.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateMatchInput mirrors the creation form. ClubID is empty for matches on
// private courts.
type CreateMatchInput struct {
	ClubID      string  `json:"clubId,omitempty"`
	ClubName    string  `json:"nombreClub"`
	Date        string  `json:"fecha"`
	Time        string  `json:"hora"`
	Court       string  `json:"cancha,omitempty"`
	Category    int     `json:"categoria"`
	MaxPlayers  int     `json:"jugadoresMaximos"`
	Price       float64 `json:"precio,omitempty"`
	Locality    string  `json:"localidad,omitempty"`
	Address     string  `json:"direccion,omitempty"`
	Description string  `json:"descripcion,omitempty"`
	Lat         float64 `json:"latitud,omitempty"`
	Lng         float64 `json:"longitud,omitempty"`
	State       string  `json:"estado,omitempty"`
}

// ProfilePatch is a free-form subset of profile fields for updates. Keys use
// the backend's field names (nombre, localidad, categoria, ...).
type ProfilePatch map[string]any
