package model

// Category groups items for filtering in clients. Icon is a glyph name; an
// empty string is a valid icon and is distinct from no icon at all.
type Category struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Icon *string `json:"icon,omitempty"`
}
