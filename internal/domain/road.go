package domain

// A directed road between two locations. A two-way street is two Road records.
type Road struct {
	From       int     `json:"from_id"`
	To         int     `json:"to_id"`
	TravelTime float64 `json:"travel_time_minutes"`
	Blocked    bool    `json:"blocked,omitempty"`
}
