// Package stubapi is an in-memory rendition of the remote backend, speaking
// the same wire contract the client stores expect. It backs the integration
// tests and the stubserver binary so the whole stack can run offline.
package stubapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"sportmatch/appcore/internal/domain/clubs"
	"sportmatch/appcore/internal/domain/matches"
	"sportmatch/appcore/internal/domain/players"
	"sportmatch/appcore/internal/geo"
	"sportmatch/appcore/internal/relation"
)

// Password is the only credential the stub accepts, for any email.
const Password = "secret"

type Server struct {
	secret []byte
	log    zerolog.Logger

	mu         sync.Mutex
	players    []players.Player
	clubs      []clubs.Club
	matches    []matches.Match
	localities []string
	statistics map[string]any
}

func NewServer(log zerolog.Logger) *Server {
	return &Server{
		secret:     []byte("stub-signing-secret"),
		log:        log,
		players:    seedPlayers(),
		clubs:      seedClubs(),
		matches:    seedMatches(),
		localities: seedLocalities(),
		statistics: seedStatistics(),
	}
}

func (s *Server) Handler(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "ts": time.Now().UTC().Format(time.RFC3339)})
	})

	// Match browsing is public: the app shows the listing before sign-in.
	r.Get("/partidos", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		out := s.filterMatches(r.URL.Query().Get("fecha"), r.URL.Query().Get("localidad"), r.URL.Query().Get("categoria"))
		writeJSON(w, http.StatusOK, map[string]any{"partidos": out})
	})

	r.Get("/partidos/{matchID}", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		m := s.findMatch(chi.URLParam(r, "matchID"))
		if m == nil {
			fail(w, http.StatusNotFound, "match not found")
			return
		}
		writeJSON(w, http.StatusOK, m)
	})

	r.Post("/auth", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			fail(w, http.StatusBadRequest, "invalid json")
			return
		}
		if creds.Email == "" || creds.Password != Password {
			fail(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		tok, err := s.issueToken(s.players[0].ID)
		if err != nil {
			fail(w, http.StatusInternalServerError, "could not issue token")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"accessToken": tok})
	})

	// Protected routes
	r.Group(func(pr chi.Router) {
		pr.Use(s.withAuth)

		// ===== Profile =====
		pr.Get("/user", func(w http.ResponseWriter, r *http.Request) {
			s.mu.Lock()
			defer s.mu.Unlock()

			p := s.findPlayer(userID(r.Context()))
			if p == nil {
				fail(w, http.StatusNotFound, "player not found")
				return
			}
			writeJSON(w, http.StatusOK, p)
		})

		pr.Patch("/user", func(w http.ResponseWriter, r *http.Request) {
			var patch map[string]any
			if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
				fail(w, http.StatusBadRequest, "invalid json")
				return
			}

			s.mu.Lock()
			defer s.mu.Unlock()

			p := s.findPlayer(userID(r.Context()))
			if p == nil {
				fail(w, http.StatusNotFound, "player not found")
				return
			}
			if err := mergeInto(p, patch); err != nil {
				fail(w, http.StatusBadRequest, "invalid profile fields")
				return
			}
			writeJSON(w, http.StatusOK, p)
		})

		// ===== Affiliations =====
		pr.Post("/user/afiliar", func(w http.ResponseWriter, r *http.Request) {
			s.affiliation(w, r, true)
		})
		pr.Post("/user/desafiliar", func(w http.ResponseWriter, r *http.Request) {
			s.affiliation(w, r, false)
		})

		// ===== Clubs =====
		pr.Get("/club", func(w http.ResponseWriter, r *http.Request) {
			s.mu.Lock()
			defer s.mu.Unlock()
			writeJSON(w, http.StatusOK, s.clubs)
		})

		pr.Get("/club/{clubID}", func(w http.ResponseWriter, r *http.Request) {
			s.mu.Lock()
			defer s.mu.Unlock()

			c := s.findClub(chi.URLParam(r, "clubID"))
			if c == nil {
				fail(w, http.StatusNotFound, "club not found")
				return
			}
			writeJSON(w, http.StatusOK, c)
		})

		pr.Post("/club/{clubID}/join", func(w http.ResponseWriter, r *http.Request) {
			s.clubMutation(w, r, "join")
		})
		pr.Post("/club/{clubID}/leave", func(w http.ResponseWriter, r *http.Request) {
			s.clubMutation(w, r, "leave")
		})
		pr.Post("/club/{clubID}/rate", func(w http.ResponseWriter, r *http.Request) {
			s.clubMutation(w, r, "rate")
		})

		// ===== Matches =====
		pr.Patch("/partidos/{matchID}", func(w http.ResponseWriter, r *http.Request) {
			var patch map[string]any
			if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
				fail(w, http.StatusBadRequest, "invalid json")
				return
			}

			s.mu.Lock()
			defer s.mu.Unlock()

			m := s.findMatch(chi.URLParam(r, "matchID"))
			if m == nil {
				fail(w, http.StatusNotFound, "match not found")
				return
			}
			if err := mergeInto(m, patch); err != nil {
				fail(w, http.StatusBadRequest, "invalid match fields")
				return
			}
			writeJSON(w, http.StatusOK, m)
		})

		pr.Post("/user/partidos", func(w http.ResponseWriter, r *http.Request) {
			var in struct {
				matches.Match
				Lat float64 `json:"latitud"`
				Lng float64 `json:"longitud"`
			}
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				fail(w, http.StatusBadRequest, "invalid json")
				return
			}
			if in.ClubName == "" || in.Date == "" || in.Time == "" {
				fail(w, http.StatusBadRequest, "club, date and time are required")
				return
			}

			m := in.Match
			m.ID = uuid.NewString()
			m.CreatedAt = time.Now().UTC().Format(time.RFC3339)
			if m.State == "" {
				m.State = matches.StateAvailable
			}
			if m.Coordinates == nil && (in.Lat != 0 || in.Lng != 0) {
				m.Coordinates = &geo.Coordinate{Lat: in.Lat, Lng: in.Lng}
			}
			uid := userID(r.Context())
			m.Players = append(m.Players, json.RawMessage(fmt.Sprintf(`{"_id":%q}`, uid)))

			s.mu.Lock()
			s.matches = append(s.matches, m)
			s.mu.Unlock()

			writeJSON(w, http.StatusCreated, m)
		})

		pr.Post("/player/join/{matchID}", func(w http.ResponseWriter, r *http.Request) {
			s.mu.Lock()
			defer s.mu.Unlock()

			m := s.findMatch(chi.URLParam(r, "matchID"))
			if m == nil {
				fail(w, http.StatusNotFound, "match not found")
				return
			}
			uid := userID(r.Context())
			if relation.IsMember(m.Players, uid) {
				fail(w, http.StatusBadRequest, "you already joined this match")
				return
			}
			if m.PlayerCount() >= m.Capacity() {
				fail(w, http.StatusBadRequest, "match is full")
				return
			}

			m.Players = append(m.Players, json.RawMessage(fmt.Sprintf(`{"_id":%q}`, uid)))
			if m.PlayerCount() >= m.Capacity() {
				m.State = matches.StateFull
			}
			writeJSON(w, http.StatusOK, map[string]any{"success": true})
		})

		pr.Patch("/player/leave/{matchID}", func(w http.ResponseWriter, r *http.Request) {
			s.mu.Lock()
			defer s.mu.Unlock()

			m := s.findMatch(chi.URLParam(r, "matchID"))
			if m == nil {
				fail(w, http.StatusNotFound, "match not found")
				return
			}
			uid := userID(r.Context())
			if !relation.IsMember(m.Players, uid) {
				fail(w, http.StatusBadRequest, "you are not in this match")
				return
			}

			kept := m.Players[:0]
			for _, rec := range m.Players {
				if relation.ClubID(rec) != uid {
					kept = append(kept, rec)
				}
			}
			m.Players = kept
			if m.PlayerCount() < m.Capacity() {
				m.State = matches.StateAvailable
			}
			writeJSON(w, http.StatusOK, m)
		})

		pr.Post("/messages/match/{matchID}", func(w http.ResponseWriter, r *http.Request) {
			var body struct {
				Text string `json:"mensaje"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				fail(w, http.StatusBadRequest, "invalid json")
				return
			}
			if strings.TrimSpace(body.Text) == "" {
				fail(w, http.StatusBadRequest, "message text is required")
				return
			}

			s.mu.Lock()
			defer s.mu.Unlock()

			m := s.findMatch(chi.URLParam(r, "matchID"))
			if m == nil {
				fail(w, http.StatusNotFound, "match not found")
				return
			}

			msg := matches.Message{
				ID:     uuid.NewString(),
				Text:   body.Text,
				Sender: userID(r.Context()),
				SentAt: time.Now().UTC().Format(time.RFC3339),
			}
			m.Messages = append(m.Messages, msg)
			writeJSON(w, http.StatusOK, map[string]any{"mensaje": msg})
		})

		// ===== Players =====
		pr.Get("/api/jugadores", func(w http.ResponseWriter, r *http.Request) {
			s.mu.Lock()
			defer s.mu.Unlock()
			// The q parameter is accepted but not applied, matching the
			// backend this stub imitates.
			writeJSON(w, http.StatusOK, s.players)
		})

		pr.Get("/api/jugadores/{playerID}", func(w http.ResponseWriter, r *http.Request) {
			s.mu.Lock()
			defer s.mu.Unlock()

			p := s.findPlayer(chi.URLParam(r, "playerID"))
			if p == nil {
				fail(w, http.StatusNotFound, "player not found")
				return
			}
			writeJSON(w, http.StatusOK, p)
		})

		// ===== Aggregates =====
		pr.Get("/api/estadisticas", func(w http.ResponseWriter, r *http.Request) {
			s.mu.Lock()
			defer s.mu.Unlock()
			writeJSON(w, http.StatusOK, s.statistics)
		})

		pr.Get("/api/localidades", func(w http.ResponseWriter, r *http.Request) {
			s.mu.Lock()
			defer s.mu.Unlock()
			writeJSON(w, http.StatusOK, map[string]any{"localidades": s.localities})
		})
	})

	return r
}

func (s *Server) affiliation(w http.ResponseWriter, r *http.Request, join bool) {
	var body struct {
		ClubID string `json:"clubId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		fail(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.ClubID == "" {
		fail(w, http.StatusBadRequest, "missing clubId")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findPlayer(userID(r.Context()))
	if p == nil {
		fail(w, http.StatusNotFound, "player not found")
		return
	}

	member := relation.IsMember(p.Affiliations, body.ClubID)
	if join {
		if member {
			fail(w, http.StatusBadRequest, "already affiliated to this club")
			return
		}
		p.Affiliations = append(p.Affiliations, json.RawMessage(fmt.Sprintf(`{"clubId":%q}`, body.ClubID)))
	} else {
		if !member {
			fail(w, http.StatusBadRequest, "not affiliated to this club")
			return
		}
		kept := p.Affiliations[:0]
		for _, rec := range p.Affiliations {
			if relation.ClubID(rec) != body.ClubID {
				kept = append(kept, rec)
			}
		}
		p.Affiliations = kept
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) clubMutation(w http.ResponseWriter, r *http.Request, action string) {
	clubID := chi.URLParam(r, "clubID")

	var body struct {
		Rating int `json:"rating"`
	}
	if action == "rate" {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			fail(w, http.StatusBadRequest, "invalid json")
			return
		}
		if body.Rating < 1 || body.Rating > 10 {
			fail(w, http.StatusBadRequest, "rating must be between 1 and 10")
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.findClub(clubID)
	if c == nil {
		fail(w, http.StatusNotFound, "club not found")
		return
	}
	uid := userID(r.Context())

	switch action {
	case "join":
		for _, m := range c.Roster {
			if m.ID == uid {
				fail(w, http.StatusBadRequest, "already a member of this club")
				return
			}
		}
		name := ""
		if p := s.findPlayer(uid); p != nil {
			name = p.Name
		}
		c.Roster = append(c.Roster, clubs.Member{ID: uid, Name: name})
	case "leave":
		kept := c.Roster[:0]
		found := false
		for _, m := range c.Roster {
			if m.ID == uid {
				found = true
				continue
			}
			kept = append(kept, m)
		}
		if !found {
			fail(w, http.StatusBadRequest, "not a member of this club")
			return
		}
		c.Roster = kept
	case "rate":
		if c.Rating == 0 {
			c.Rating = float64(body.Rating)
		} else {
			c.Rating = (c.Rating + float64(body.Rating)) / 2
		}
	}

	writeJSON(w, http.StatusOK, c)
}

func (s *Server) filterMatches(date, locality, category string) []matches.Match {
	out := make([]matches.Match, 0, len(s.matches))
	for _, m := range s.matches {
		if date != "" && m.Date != date {
			continue
		}
		if locality != "" && !strings.EqualFold(m.Locality, locality) {
			continue
		}
		if category != "" {
			n, err := strconv.Atoi(category)
			if err != nil || m.Category != n {
				continue
			}
		}
		out = append(out, m)
	}
	return out
}

// findPlayer / findClub / findMatch return pointers into the fixture slices;
// callers hold s.mu.
func (s *Server) findPlayer(id string) *players.Player {
	for i := range s.players {
		if s.players[i].ID == id {
			return &s.players[i]
		}
	}
	return nil
}

func (s *Server) findClub(id string) *clubs.Club {
	for i := range s.clubs {
		if s.clubs[i].ID == id {
			return &s.clubs[i]
		}
	}
	return nil
}

func (s *Server) findMatch(id string) *matches.Match {
	for i := range s.matches {
		if s.matches[i].ID == id {
			return &s.matches[i]
		}
	}
	return nil
}

// mergeInto overlays a partial JSON object onto v, leaving absent fields
// untouched.
func mergeInto(v any, patch map[string]any) error {
	raw, err := json.Marshal(patch)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
