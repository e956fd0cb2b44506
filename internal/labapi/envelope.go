package labapi

import (
	"encoding/json"
	"errors"

	"github.com/tidwall/gjson"
)

var errNotAList = errors.New("list body is neither an array nor a paginated envelope")

// ToArray unwraps a list response.  A bare JSON array is returned
// unchanged; an object with a "results" array yields that array.  Any
// other shape is an error.  next/previous cursors are never followed.
func ToArray(raw []byte) ([]byte, error) {
	if !gjson.ValidBytes(raw) {
		return nil, errNotAList
	}
	body := gjson.ParseBytes(raw)
	if body.IsArray() {
		return raw, nil
	}
	if body.IsObject() {
		if results := body.Get("results"); results.IsArray() {
			return []byte(results.Raw), nil
		}
	}
	return nil, errNotAList
}

// DecodeList unwraps raw with ToArray and decodes the items.  The result
// is never nil.
func DecodeList[T any](raw []byte) ([]T, error) {
	arr, err := ToArray(raw)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if err := json.Unmarshal(arr, &out); err != nil {
		return nil, err
	}
	return out, nil
}
