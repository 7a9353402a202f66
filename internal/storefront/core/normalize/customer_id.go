package normalize

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/jcmexdev/digital-storefront/internal/storefront/core/domain/entity"
)

var ErrCustomerIDNotFound = errors.New("failed to get customer ID from response")

// customerIDPaths lists the known locations of the customer id, in the
// order they are checked. A response may satisfy several; the first wins.
var customerIDPaths = [][]string{
	{"_id"},
	{"data", "_id"},
	{"id"},
	{"customer", "_id"},
}

// CustomerID extracts the customer id from a create-customer response.
func CustomerID(raw entity.RawResponse) (string, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return "", ErrCustomerIDNotFound
	}

	for _, path := range customerIDPaths {
		if id, ok := lookup(obj, path); ok {
			return id, nil
		}
	}
	return "", ErrCustomerIDNotFound
}

func lookup(obj map[string]any, path []string) (string, bool) {
	cur := obj
	for i, key := range path {
		v, ok := cur[key]
		if !ok || v == nil {
			return "", false
		}
		if i == len(path)-1 {
			return idString(v)
		}
		next, ok := v.(map[string]any)
		if !ok {
			return "", false
		}
		cur = next
	}
	return "", false
}

// idString accepts non-empty strings and non-zero numbers; anything else
// does not count as an id.
func idString(v any) (string, bool) {
	switch id := v.(type) {
	case string:
		return id, id != ""
	case json.Number:
		f, err := id.Float64()
		if err != nil || f == 0 {
			return "", false
		}
		return id.String(), true
	case float64:
		if id == 0 {
			return "", false
		}
		return strconv.FormatFloat(id, 'f', -1, 64), true
	default:
		return "", false
	}
}
