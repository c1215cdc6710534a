package api

// Route table of the SportMatch backend. Paths are relative to the base URL
// configured in SPORTMATCH_API_URL.
const (
	RouteAuth    = "/auth"
	RouteUser    = "/user"
	RouteClubs   = "/club"
	RouteMatches = "/partidos"

	// player-scoped match membership
	RouteJoinMatch  = "/player/join"  // POST  /player/join/{matchId}
	RouteLeaveMatch = "/player/leave" // PATCH /player/leave/{matchId}

	// profile-scoped mutations
	RouteCreateMatch = "/user/partidos"
	RouteAffiliate   = "/user/afiliar"
	RouteUnaffiliate = "/user/desafiliar"

	RouteMatchMessages = "/messages/match" // POST /messages/match/{matchId}

	RoutePlayers    = "/api/jugadores"
	RouteStatistics = "/api/estadisticas"
	RouteLocalities = "/api/localidades"
)
