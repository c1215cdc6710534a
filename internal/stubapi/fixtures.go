package stubapi

import (
	"encoding/json"

	"sportmatch/appcore/internal/domain/clubs"
	"sportmatch/appcore/internal/domain/matches"
	"sportmatch/appcore/internal/domain/players"
	"sportmatch/appcore/internal/geo"
)

func intPtr(v int) *int { return &v }

// seedProfile deliberately mixes affiliation record shapes the way the real
// backend does: a populated clubId object, a primitive clubId, and a bare
// record id.
func seedProfile() players.Player {
	return players.Player{
		ID:       "p-1",
		Name:     "Ana Suarez",
		Email:    "ana@sportmatch.test",
		Phone:    "+54 11 5555 0101",
		Locality: "Palermo",
		Category: intPtr(5),
		Affiliations: []json.RawMessage{
			json.RawMessage(`{"clubId":{"_id":"club-1","nombreClub":"Padel Norte"}}`),
			json.RawMessage(`{"clubId":"club-2"}`),
			json.RawMessage(`{"_id":"club-3"}`),
		},
		PreferredDays:  []string{"martes", "jueves"},
		PreferredTimes: []string{"19:00", "21:00"},
	}
}

func seedPlayers() []players.Player {
	return []players.Player{
		seedProfile(),
		{
			ID:       "p-2",
			Name:     "Bruno Gil",
			Locality: "Belgrano",
			Category: intPtr(7),
		},
		{
			ID:       "p-3",
			Name:     "Carla Mendez",
			Locality: "Palermo",
			Category: intPtr(3),
		},
		{
			ID:   "p-4",
			Name: "Diego Funes",
		},
	}
}

func seedClubs() []clubs.Club {
	return []clubs.Club{
		{
			ID:          "club-1",
			Name:        "Padel Norte",
			City:        "Buenos Aires",
			Locality:    "Palermo",
			Province:    "Buenos Aires",
			Address:     "Av. Santa Fe 4000",
			Coordinates: &geo.Coordinate{Lat: -34.58, Lng: -58.42},
			Roster: []clubs.Member{
				{ID: "p-1", Name: "Ana Suarez", Category: intPtr(5)},
				{ID: "p-2", Name: "Bruno Gil", Category: intPtr(7)},
				{ID: "p-4", Name: "Diego Funes"},
			},
			Rating: 4.4,
		},
		{
			ID:          "club-2",
			Name:        "La Red",
			City:        "Buenos Aires",
			Locality:    "Belgrano",
			Province:    "Buenos Aires",
			Address:     "Cabildo 2200",
			Coordinates: &geo.Coordinate{Lat: -34.56, Lng: -58.45},
			Roster: []clubs.Member{
				{ID: "p-3", Name: "Carla Mendez", Category: intPtr(3)},
			},
			Rating: 3.9,
		},
		{
			ID:       "club-3",
			Name:     "Club del Oeste",
			City:     "Moron",
			Locality: "Moron",
			Province: "Buenos Aires",
		},
	}
}

func seedMatches() []matches.Match {
	return []matches.Match{
		{
			ID:          "m-1",
			ClubRef:     json.RawMessage(`{"_id":"club-1","nombreClub":"Padel Norte"}`),
			ClubName:    "Padel Norte",
			Court:       "2",
			Date:        "2026-09-05",
			Time:        "20:00",
			Category:    5,
			MaxPlayers:  intPtr(4),
			Players:     []json.RawMessage{json.RawMessage(`{"_id":"p-2","nombre":"Bruno Gil"}`)},
			State:       matches.StateAvailable,
			Price:       12000,
			Locality:    "Palermo",
			Coordinates: &geo.Coordinate{Lat: -34.58, Lng: -58.42},
		},
		{
			ID:       "m-2",
			ClubRef:  json.RawMessage(`"club-2"`),
			ClubName: "La Red",
			Court:    "1",
			Date:     "2026-09-06",
			Time:       "19:00",
			Category:   7,
			MaxPlayers: intPtr(2),
			Players: []json.RawMessage{
				json.RawMessage(`"p-3"`),
				json.RawMessage(`"p-4"`),
			},
			State:    matches.StateFull,
			Locality: "Belgrano",
		},
		{
			ID:       "m-3",
			ClubName: "Club del Oeste",
			Date:     "2026-09-07",
			Time:     "10:00",
			Locality: "Moron",
			State:    matches.StateAvailable,
		},
	}
}

func seedLocalities() []string {
	return []string{"Palermo", "Belgrano", "Moron", "Caballito"}
}

func seedStatistics() map[string]any {
	return map[string]any{
		"jugadores":         4,
		"partidosActivos":   3,
		"clubes":            3,
		"categoriaPromedio": 5,
	}
}
