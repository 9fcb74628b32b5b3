package model

const EmptyTitle string = ""

// Movie is an element of a room snapshot. Thumb is an opaque reference
// resolved through the image proxy, never a direct media server URL.
type Movie struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Summary  string   `json:"summary"`
	Thumb    string   `json:"thumb"`
	Rating   *float64 `json:"rating"`
	Duration string   `json:"duration"`
}

func (m Movie) Validate() error {
	if m.ID == "" {
		return &ValidationError{Field: "id", Reason: "required"}
	}
	if m.Title == EmptyTitle {
		return &ValidationError{Field: "title", Reason: "required"}
	}
	return nil
}
