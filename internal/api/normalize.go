package api

import (
	"bytes"
	"encoding/json"
	"regexp"

	"github.com/bluemoon/fees-admin/internal/model"
)

// The backend has been observed to return the household list in broken
// shapes: a JSON array embedded in a string (serialization fault upstream),
// an object wrapping the array, or a bare single record. List screens must
// stay renderable regardless, so decoding handles each variant explicitly
// and bottoms out at an empty list instead of an error.

var embeddedArrayRe = regexp.MustCompile(`(?s)\[\s*\{\s*"id".*?\}\s*\]`)

// decodeHouseholdList normalizes a household-list payload. It never fails:
// an unrecoverable shape yields an empty slice.
func decodeHouseholdList(raw []byte) []model.Household {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return []model.Household{}
	}

	// Well-formed array.
	var list []model.Household
	if err := json.Unmarshal(raw, &list); err == nil {
		if list == nil {
			list = []model.Household{}
		}
		return list
	}

	switch raw[0] {
	case '"':
		return householdsFromString(raw)
	case '{':
		return householdsFromObject(raw)
	}
	return []model.Household{}
}

// householdsFromString handles a payload that is itself a JSON string with
// the array buried inside it.
func householdsFromString(raw []byte) []model.Household {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return []model.Household{}
	}
	match := embeddedArrayRe.FindString(s)
	if match == "" {
		return []model.Household{}
	}
	var list []model.Household
	if err := json.Unmarshal([]byte(match), &list); err != nil {
		return []model.Household{}
	}
	return list
}

// householdsFromObject handles a wrapping object: the first array-typed
// property in document order wins; failing that, an object that looks like
// a single household is wrapped in a one-element list.
func householdsFromObject(raw []byte) []model.Household {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return []model.Household{}
	}

	for _, key := range objectKeysInOrder(raw) {
		val := bytes.TrimSpace(fields[key])
		if len(val) == 0 || val[0] != '[' {
			continue
		}
		var list []model.Household
		if err := json.Unmarshal(val, &list); err == nil {
			return list
		}
	}

	if _, ok := fields["id"]; ok {
		var single model.Household
		if err := json.Unmarshal(raw, &single); err == nil {
			return []model.Household{single}
		}
	}
	return []model.Household{}
}

// objectKeysInOrder returns the top-level keys of a JSON object in document
// order, which a map round-trip would lose.
func objectKeysInOrder(raw []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return keys
		}
		key, ok := tok.(string)
		if !ok {
			return keys
		}
		keys = append(keys, key)

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return keys
		}
	}
	return keys
}
