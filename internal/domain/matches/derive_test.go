package matches

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		count, capacity int
		want            Status
	}{
		{0, 4, StatusAvailable},
		{1, 4, StatusAvailable},
		{2, 4, StatusAvailable},
		{3, 4, StatusLastSpot},
		{4, 4, StatusFull},
		{5, 4, StatusFull}, // overfull data still renders as full
		{1, 2, StatusLastSpot},
		{0, 1, StatusLastSpot},
		{0, 0, StatusFull}, // zero capacity is immediately full
	}
	for _, c := range cases {
		assert.Equal(t, c.want, StatusOf(c.count, c.capacity), "count=%d capacity=%d", c.count, c.capacity)
	}
}

func TestMatchStatus_DefaultCapacity(t *testing.T) {
	m := Match{Players: []json.RawMessage{
		json.RawMessage(`"p-1"`),
		json.RawMessage(`"p-2"`),
		json.RawMessage(`"p-3"`),
	}}
	// jugadoresMaximos absent: capacity defaults to 4, so 3 players is the
	// last spot.
	assert.Equal(t, 4, m.Capacity())
	assert.Equal(t, StatusLastSpot, m.Status())
}

func TestMatchStatus_ExplicitZeroCapacity(t *testing.T) {
	zero := 0
	m := Match{MaxPlayers: &zero}
	assert.Equal(t, 0, m.Capacity())
	assert.Equal(t, StatusFull, m.Status())
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 0.5, Progress(2, 4))
	assert.Equal(t, 1.25, Progress(5, 4)) // raw ratio, not clamped
	assert.Equal(t, 0.0, Progress(0, 4))
	assert.Equal(t, 1.0, Progress(0, 0))
	assert.Equal(t, 1.0, Progress(3, -1))
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 1.0, Clamp01(1.25))
	assert.Equal(t, 0.0, Clamp01(-0.5))
	assert.Equal(t, 0.75, Clamp01(0.75))
}

func TestExpiryLabel(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "expires in 3d", ExpiryLabel(now.Add(80*time.Hour).Format(time.RFC3339), now))
	assert.Equal(t, "expires in 5h", ExpiryLabel(now.Add(5*time.Hour+30*time.Minute).Format(time.RFC3339), now))
	assert.Equal(t, "expires soon", ExpiryLabel(now.Add(10*time.Minute).Format(time.RFC3339), now))
	assert.Equal(t, "expires soon", ExpiryLabel(now.Add(-time.Hour).Format(time.RFC3339), now))
	assert.Equal(t, "", ExpiryLabel("definitely-not-a-date", now))
	assert.Equal(t, "", ExpiryLabel("", now))
}

func TestRelativeLabel(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "just now", RelativeLabel(now.Add(-30*time.Second).Format(time.RFC3339), now))
	assert.Equal(t, "12m ago", RelativeLabel(now.Add(-12*time.Minute).Format(time.RFC3339), now))
	assert.Equal(t, "3h ago", RelativeLabel(now.Add(-3*time.Hour-20*time.Minute).Format(time.RFC3339), now))
	assert.Equal(t, "2d ago", RelativeLabel(now.Add(-50*time.Hour).Format(time.RFC3339), now))
	assert.Equal(t, "", RelativeLabel("garbage", now))
}

func TestHostClubID(t *testing.T) {
	m := Match{ClubRef: json.RawMessage(`{"_id":"club-1","nombreClub":"Padel Norte"}`)}
	assert.Equal(t, "club-1", m.HostClubID())

	m = Match{ClubRef: json.RawMessage(`"club-2"`)}
	assert.Equal(t, "club-2", m.HostClubID())

	m = Match{}
	assert.Equal(t, "", m.HostClubID())
}

func TestMatchList_EnvelopeAndBareArray(t *testing.T) {
	var l matchList
	err := json.Unmarshal([]byte(`{"partidos":[{"_id":"m-1"},{"_id":"m-2"}]}`), &l)
	assert.NoError(t, err)
	assert.Len(t, l.Matches, 2)

	var bare matchList
	err = json.Unmarshal([]byte(`[{"_id":"m-3"}]`), &bare)
	assert.NoError(t, err)
	assert.Len(t, bare.Matches, 1)
	assert.Equal(t, "m-3", bare.Matches[0].ID)
}
