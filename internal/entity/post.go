package entity

import "time"

type PostType string

const (
	PostTypePlace  PostType = "place"
	PostTypeHostel PostType = "hostel"
	PostTypePeople PostType = "people"
	PostTypeBus    PostType = "bus"
	PostTypePhoto  PostType = "photo"
	PostTypeOther  PostType = "other"
)

// PostTypes is the closed set of journal entry kinds.
var PostTypes = []PostType{
	PostTypePlace,
	PostTypeHostel,
	PostTypePeople,
	PostTypeBus,
	PostTypePhoto,
	PostTypeOther,
}

func (t PostType) Valid() bool {
	for _, known := range PostTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Post is a single timeline entry. Date is the event date the author
// picked (YYYY-MM-DD), distinct from CreatedAt which records when the
// entry was written. Optional text fields are empty strings when absent.
type Post struct {
	ID          string                 `json:"id"`
	UserID      string                 `json:"user_id"`
	Type        PostType               `json:"type"`
	Title       string                 `json:"title"`
	Description string                 `json:"description,omitempty"`
	Location    string                 `json:"location,omitempty"`
	Country     string                 `json:"country,omitempty"`
	Latitude    *float64               `json:"latitude,omitempty"`
	Longitude   *float64               `json:"longitude,omitempty"`
	Date        string                 `json:"date"`
	Photos      []string               `json:"photos"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// Filter narrows a timeline query. Zero-value fields are ignored.
// Dates are inclusive YYYY-MM-DD bounds on the event date.
type Filter struct {
	Country   string `json:"country,omitempty" form:"country"`
	StartDate string `json:"start_date,omitempty" form:"start_date"`
	EndDate   string `json:"end_date,omitempty" form:"end_date"`
}

func (f Filter) IsZero() bool {
	return f.Country == "" && f.StartDate == "" && f.EndDate == ""
}
