// Package store implements the repositories over the document store. All
// encoding and decoding between the entity model and stored documents lives
// in record.go, so the field-name schema exists in exactly one place.
package store

import (
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cast"

	"github.com/Ruggero-R/EzSupply/internal/docstore"
	"github.com/Ruggero-R/EzSupply/internal/model"
)

// Collection names in the document store.
const (
	itemsCollection      = "items"
	categoriesCollection = "categories"
	usersCollection      = "users"
	settingsCollection   = "settings"
)

// encodeItem converts an item to its stored record. Every declared field is
// always present: optionals encode as explicit nulls rather than being
// omitted, so a merge-upsert can clear a previously set value. lastUpdate is
// always stamped now; a caller-supplied value is ignored.
func encodeItem(item *model.Item, now time.Time) docstore.Fields {
	categoryIDs := item.CategoryIDs
	if categoryIDs == nil {
		categoryIDs = []string{}
	}

	batches := make([]any, 0, len(item.Batches))
	for _, b := range item.Batches {
		batches = append(batches, map[string]any{
			"quantity":       b.Quantity,
			"expirationDate": encodeDate(b.ExpirationDate),
			"purchaseDate":   encodeDate(b.PurchaseDate),
		})
	}

	return docstore.Fields{
		"name":         item.Name,
		"unit":         item.Unit,
		"minThreshold": item.MinThreshold,
		"categoryIds":  categoryIDs,
		"batches":      batches,
		"location":     encodeOptString(item.Location),
		"notes":        encodeOptString(item.Notes),
		"lastUpdate":   now,
		"updatedBy":    item.UpdatedBy,
	}
}

// decodeItem converts a stored record back to an item, default-filling
// whatever the document is missing: batches and categoryIds become empty
// slices, updatedBy becomes "" (unlike the other optionals, which stay
// absent; existing documents rely on that asymmetry), and a missing
// lastUpdate becomes the read time.
func decodeItem(id string, raw docstore.Fields) *model.Item {
	item := &model.Item{
		ID:           id,
		Name:         cast.ToString(raw["name"]),
		Unit:         cast.ToString(raw["unit"]),
		MinThreshold: cast.ToFloat64(raw["minThreshold"]),
		CategoryIDs:  decodeStrings(raw["categoryIds"]),
		Batches:      decodeBatches(raw["batches"]),
		Location:     decodeOptString(raw["location"]),
		Notes:        decodeOptString(raw["notes"]),
		UpdatedBy:    cast.ToString(raw["updatedBy"]),
	}

	if t := decodeDate(raw["lastUpdate"]); t != nil {
		item.LastUpdate = *t
	} else {
		item.LastUpdate = time.Now()
	}

	return item
}

func decodeBatches(v any) []model.ItemBatch {
	raw := cast.ToSlice(v)
	batches := make([]model.ItemBatch, 0, len(raw))
	for _, rb := range raw {
		fields := cast.ToStringMap(rb)
		batches = append(batches, model.ItemBatch{
			Quantity:       cast.ToFloat64(fields["quantity"]),
			ExpirationDate: decodeDate(fields["expirationDate"]),
			PurchaseDate:   decodeDate(fields["purchaseDate"]),
		})
	}
	return batches
}

func decodeCategory(id string, raw docstore.Fields) model.Category {
	return model.Category{
		ID:   id,
		Name: cast.ToString(raw["name"]),
		Icon: decodeOptString(raw["icon"]),
	}
}

func decodeUser(id string, raw docstore.Fields) model.User {
	return model.User{
		ID:       id,
		Username: cast.ToString(raw["username"]),
	}
}

// encodeDate encodes an optional date as an ISO 8601 string, or as an
// explicit null when absent.
func encodeDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// decodeDate accepts the date encodings both write paths produce: native
// timestamps (time.Time or epoch milliseconds) and ISO 8601 strings. Absent
// values, explicit nulls, and unparseable strings all decode to absent.
func decodeDate(v any) *time.Time {
	switch val := v.(type) {
	case nil:
		return nil
	case time.Time:
		return &val
	case string:
		if val == "" {
			return nil
		}
		t, err := dateparse.ParseAny(val)
		if err != nil {
			return nil
		}
		return &t
	default:
		millis := cast.ToInt64(val)
		if millis == 0 {
			return nil
		}
		t := time.UnixMilli(millis).UTC()
		return &t
	}
}

// encodeOptString encodes an optional string, using an explicit null for
// absence so a merge can clear a stored value.
func encodeOptString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// decodeOptString decodes nulls and absent values to absent, never to "".
// A present empty string stays a present empty string.
func decodeOptString(v any) *string {
	if v == nil {
		return nil
	}
	s := cast.ToString(v)
	return &s
}

func decodeStrings(v any) []string {
	out := cast.ToStringSlice(v)
	if out == nil {
		out = []string{}
	}
	return out
}
