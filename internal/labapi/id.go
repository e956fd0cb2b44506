package labapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is the canonical identifier of every record the API returns.
//
// The relational collections send numeric ids and the document
// collections send string ids.  Both decode into the same string form:
// a JSON number becomes its shortest decimal spelling (5 and 5.0 are both
// "5") and a JSON string is kept verbatim ("05" stays "05").  So the
// number 5 and the string "5" are one id, and "05" is another.
type ID string

// IDOf returns the ID of a numeric key.
func IDOf(n uint64) ID { return ID(strconv.FormatUint(n, 10)) }

func (id ID) String() string { return string(id) }

// IsZero reports whether the id is unset.
func (id ID) IsZero() bool { return id == "" }

// Uint returns the id as an unsigned integer if it is a canonical
// non-negative integer.
func (id ID) Uint() (uint64, bool) {
	n, err := strconv.ParseUint(string(id), 10, 64)
	if err != nil || strconv.FormatUint(n, 10) != string(id) {
		return 0, false
	}
	return n, true
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	n, err := canonicalNumber(string(data))
	if err != nil {
		return fmt.Errorf("labapi: id %s is neither a string nor a number", data)
	}
	*id = ID(n)
	return nil
}

// MarshalJSON writes canonical integers as JSON numbers, so numeric
// foreign keys go back to the server in the form it sent them.
func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if _, ok := id.Uint(); ok {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func canonicalNumber(lit string) (string, error) {
	if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	if u, err := strconv.ParseUint(lit, 10, 64); err == nil {
		return strconv.FormatUint(u, 10), nil
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return "", err
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}
