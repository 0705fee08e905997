package domain

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (l Location) IsZero() bool {
	return l.Lat == 0 && l.Lng == 0
}

// CourseInfo is one stop of a submitted course, before it is bound to a restaurant id.
type CourseInfo struct {
	RestaurantName string   `json:"restaurantName,omitempty"`
	Address        string   `json:"address,omitempty"`
	Location       Location `json:"location"`
	ImgUrl         string   `json:"imgUrl,omitempty"`
	Description    string   `json:"description,omitempty"`
	// lookup hints for the restaurant service
	Section string `json:"section,omitempty"`
	Area    string `json:"area,omitempty"`
}

// RestaurantDetail is the canonical record owned by the restaurant service.
type RestaurantDetail struct {
	Id             RestaurantId `json:"_id,omitempty"`
	RestaurantId   RestaurantId `json:"restaurantId,omitempty"`
	RestaurantName string       `json:"restaurantName,omitempty"`
	Address        string       `json:"address,omitempty"`
	Location       Location     `json:"location"`
	PhoneNumber    *string      `json:"phoneNumber"`
	OpeningDays    []string     `json:"openingDays"`
	Version        int          `json:"__v,omitempty"`
}

// Identifier returns the restaurant id whichever key the service used.
func (d RestaurantDetail) Identifier() RestaurantId {
	if d.RestaurantId != "" {
		return d.RestaurantId
	}
	return d.Id
}
