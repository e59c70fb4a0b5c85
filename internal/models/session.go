package models

// Session is an open coaching slot returned by the backend for one date.
type Session struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Location  string `json:"location"`
	Booked    bool   `json:"booked"`
}

type BookingSummary struct {
	ID          int64   `json:"id"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Date        string  `json:"date"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	Paid        bool    `json:"paid"`
	Price       int     `json:"price"`
	Children    []Child `json:"children"`
}

func (b BookingSummary) ChildIDs() []int64 {
	ids := make([]int64, 0, len(b.Children))
	for _, child := range b.Children {
		if child.ID != nil {
			ids = append(ids, *child.ID)
		}
	}
	return ids
}

// BookingRequest is the body sent when creating or editing a booking.
type BookingRequest struct {
	SessionID   *int64  `json:"session_id,omitempty"`
	Price       int     `json:"price"`
	NumOfKids   int     `json:"num_of_kids"`
	ChildIDs    []int64 `json:"child_ids"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
}
