// Package relation normalizes the affiliation records the backend returns in
// whichever of its three encodings: a populated object ({"clubId":{"_id":..}}),
// a bare foreign key ({"clubId":"..."} or just "..."), or the club document
// itself. Every membership check in the app funnels through IsMember so the
// shape handling lives in exactly one place.
package relation

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// ClubID extracts the canonical club identifier from a single relation
// record. Extraction order:
//
//  1. clubId._id  (populated relation object)
//  2. clubId      (bare foreign key, string or number)
//  3. _id         (the record is the club document itself)
//  4. the record  (a primitive id at the top level)
//
// Identifiers are returned as strings; numeric ids from the backend compare
// equal to their string form. Malformed records yield "".
func ClubID(record json.RawMessage) string {
	if len(record) == 0 {
		return ""
	}
	r := gjson.ParseBytes(record)

	if nested := r.Get("clubId._id"); nested.Exists() {
		return nested.String()
	}
	if fk := r.Get("clubId"); fk.Exists() && fk.Type != gjson.JSON {
		return fk.String()
	}
	if id := r.Get("_id"); id.Exists() {
		return id.String()
	}
	if r.Type == gjson.String || r.Type == gjson.Number {
		return r.String()
	}
	return ""
}

// IsMember reports whether any record in the collection resolves to the
// target identifier. Empty or absent collections, malformed records and an
// empty target all yield false; the function never panics.
func IsMember(records []json.RawMessage, targetID string) bool {
	targetID = strings.TrimSpace(targetID)
	if targetID == "" {
		return false
	}
	for _, rec := range records {
		if id := ClubID(rec); id != "" && id == targetID {
			return true
		}
	}
	return false
}
