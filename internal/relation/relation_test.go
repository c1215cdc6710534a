package relation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClubID_PopulatedObject(t *testing.T) {
	rec := json.RawMessage(`{"clubId":{"_id":"club-1","nombreClub":"Padel Norte"}}`)
	assert.Equal(t, "club-1", ClubID(rec))
}

func TestClubID_PrimitiveRef(t *testing.T) {
	assert.Equal(t, "club-2", ClubID(json.RawMessage(`{"clubId":"club-2"}`)))
}

func TestClubID_BareRecordID(t *testing.T) {
	assert.Equal(t, "club-3", ClubID(json.RawMessage(`{"_id":"club-3"}`)))
}

func TestClubID_RecordIsPrimitive(t *testing.T) {
	assert.Equal(t, "club-4", ClubID(json.RawMessage(`"club-4"`)))
}

func TestClubID_NumericID(t *testing.T) {
	// ObjectIDs are strings, but some records carry plain numbers.
	assert.Equal(t, "42", ClubID(json.RawMessage(`{"clubId":42}`)))
	assert.Equal(t, "42", ClubID(json.RawMessage(`42`)))
}

func TestClubID_NoUsableID(t *testing.T) {
	assert.Equal(t, "", ClubID(json.RawMessage(`{"nombre":"whatever"}`)))
	assert.Equal(t, "", ClubID(nil))
	assert.Equal(t, "", ClubID(json.RawMessage(`null`)))
	assert.Equal(t, "", ClubID(json.RawMessage(`not json at all`)))
}

func TestIsMember_MixedShapes(t *testing.T) {
	records := []json.RawMessage{
		json.RawMessage(`{"clubId":{"_id":"club-1"}}`),
		json.RawMessage(`{"clubId":"club-2"}`),
		json.RawMessage(`{"_id":"club-3"}`),
		json.RawMessage(`"club-4"`),
	}

	for _, id := range []string{"club-1", "club-2", "club-3", "club-4"} {
		assert.True(t, IsMember(records, id), id)
	}
	assert.False(t, IsMember(records, "club-9"))
}

func TestIsMember_NumericDrift(t *testing.T) {
	records := []json.RawMessage{json.RawMessage(`{"clubId":17}`)}
	assert.True(t, IsMember(records, "17"))
}

func TestIsMember_Empty(t *testing.T) {
	assert.False(t, IsMember(nil, "club-1"))
	assert.False(t, IsMember([]json.RawMessage{}, "club-1"))
	assert.False(t, IsMember([]json.RawMessage{json.RawMessage(`{}`)}, ""))
}
