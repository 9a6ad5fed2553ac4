package session

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Ref models a back-reference field that the backend serializes
// inconsistently: sometimes a bare identifier string, sometimes an
// embedded object carrying "_id". All reads go through this one
// normalization point.
type Ref struct {
	// ID is the referenced identifier, regardless of wire shape.
	ID string
	// Object holds the embedded record when the backend sent one.
	Object json.RawMessage
}

// IsZero reports whether the reference is absent.
func (r Ref) IsZero() bool {
	return r.ID == ""
}

// UnmarshalJSON accepts either "64ab..." or {"_id": "64ab...", ...}.
func (r *Ref) UnmarshalJSON(data []byte) error {
	parsed := gjson.ParseBytes(data)
	switch parsed.Type {
	case gjson.Null:
		*r = Ref{}
		return nil
	case gjson.String:
		*r = Ref{ID: parsed.String()}
		return nil
	case gjson.JSON:
		if parsed.IsObject() {
			id := parsed.Get("_id")
			if !id.Exists() {
				id = parsed.Get("id")
			}
			*r = Ref{ID: id.String(), Object: append([]byte(nil), data...)}
			return nil
		}
	}
	return fmt.Errorf("session: reference must be a string or object, got %s", parsed.Type)
}

// MarshalJSON writes the embedded object back when present, otherwise the
// bare identifier.
func (r Ref) MarshalJSON() ([]byte, error) {
	if len(r.Object) > 0 {
		return r.Object, nil
	}
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

// User is the backend profile record. It is owned exclusively by the
// session store: replaced wholesale on login or refresh, cleared on
// logout.
type User struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Mobile     string `json:"mobile,omitempty"`
	Role       Role   `json:"role"`
	Salon      Ref    `json:"salon,omitempty"`
	Stylist    Ref    `json:"stylist,omitempty"`
	Coins      int    `json:"coins,omitempty"`
	Timezone   string `json:"timezone,omitempty"`
	Image      string `json:"image,omitempty"`
	IsVerified bool   `json:"isVerified,omitempty"`
}
