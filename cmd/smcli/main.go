// Command smcli is a small terminal front end for the client stack. It covers
// the main flows: sign in, browse matches and clubs with their derived
// labels, join a match, and manage club affiliations.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"sportmatch/appcore/internal/app"
	"sportmatch/appcore/internal/config"
	"sportmatch/appcore/internal/domain/clubs"
	"sportmatch/appcore/internal/domain/session"
	"sportmatch/appcore/internal/geo"
)

const usage = `usage: smcli <command> [args]

commands:
  login <email> <password>   sign in and persist the session
  logout                     drop the persisted session
  matches [locality]         list matches with status and progress
  clubs                      list clubs with distance and category mix
  join <match-id>            join a match
  leave <match-id>           leave a match
  say <match-id> <text...>   send a message to a match
  affiliate <club-id>        affiliate with a club
  unaffiliate <club-id>      drop a club affiliation
  whoami                     show the current session
`

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	a, err := app.New(cfg, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.Start(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if err := run(ctx, a, args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		flush(a)
		os.Exit(1)
	}
	flush(a)
}

func run(ctx context.Context, a *app.App, args []string) error {
	switch args[0] {
	case "login":
		if len(args) != 3 {
			return fmt.Errorf("usage: smcli login <email> <password>")
		}
		return a.Session.Authenticate(ctx, session.Credentials{Email: args[1], Password: args[2]})

	case "logout":
		return a.Session.Logout()

	case "matches":
		if err := a.Matches.Load(ctx); err != nil {
			return err
		}
		list := a.Matches.List()
		if len(args) > 1 {
			var err error
			list, err = a.Matches.Filter(ctx, map[string]string{"localidad": args[1]})
			if err != nil {
				return err
			}
		}
		location := viewerLocation(a)
		for i := range list {
			m := &list[i]
			fmt.Printf("%-10s %-22s %s %s  %d/%d %-10s %s\n",
				m.ID, m.ClubName, m.Date, m.Time,
				m.PlayerCount(), m.Capacity(), m.Status(),
				geo.DistanceLabelFrom(location, m.Coordinates))
		}
		return nil

	case "clubs":
		if err := a.Clubs.Load(ctx); err != nil {
			return err
		}
		for _, c := range a.Clubs.List() {
			dist := clubs.CategoryDistribution(c.Roster)
			parts := make([]string, 0, len(dist))
			for _, b := range clubs.ByCategory(dist) {
				parts = append(parts, fmt.Sprintf("%s:%d", b.Category, b.Count))
			}
			fmt.Printf("%-10s %-22s %-12s members=%d categories=[%s]\n",
				c.ID, c.Name, c.Locality, c.MemberCount(), strings.Join(parts, " "))
		}
		return nil

	case "join":
		if len(args) != 2 {
			return fmt.Errorf("usage: smcli join <match-id>")
		}
		return a.Matches.Join(ctx, args[1])

	case "leave":
		if len(args) != 2 {
			return fmt.Errorf("usage: smcli leave <match-id>")
		}
		return a.Matches.Leave(ctx, args[1])

	case "say":
		if len(args) < 3 {
			return fmt.Errorf("usage: smcli say <match-id> <text>")
		}
		_, err := a.Matches.SendMessage(ctx, args[1], strings.Join(args[2:], " "))
		return err

	case "affiliate":
		if len(args) != 2 {
			return fmt.Errorf("usage: smcli affiliate <club-id>")
		}
		return a.Session.Affiliate(ctx, args[1])

	case "unaffiliate":
		if len(args) != 2 {
			return fmt.Errorf("usage: smcli unaffiliate <club-id>")
		}
		return a.Session.Unaffiliate(ctx, args[1])

	case "whoami":
		p := a.Session.Current()
		if p == nil {
			fmt.Println("not signed in")
			return nil
		}
		fmt.Printf("%s <%s> id=%s affiliations=%d\n", p.Name, p.Email, p.ID, len(p.Affiliations))
		return nil

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// viewerLocation builds the position source for distance labels. A terminal
// has no positioning backend, so the first located affiliated club stands in
// for the viewer; signed out, there is no position at all.
func viewerLocation(a *app.App) geo.LocationSource {
	if a.Session.Current() == nil {
		return nil
	}
	for _, c := range a.Clubs.List() {
		if a.Session.IsAffiliated(c.ID) && c.Coordinates != nil {
			return geo.Fixed(*c.Coordinates)
		}
	}
	return nil
}

// flush prints any notifications the stores queued during the command.
func flush(a *app.App) {
	for _, n := range a.Notifications.List() {
		fmt.Printf("[%s] %s\n", n.Severity, n.Message)
	}
}
