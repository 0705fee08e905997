package domain

import "time"

// PersonalMapEntry is the persisted annotation on one restaurant of a board.
// Phone number, opening days and the remote revision have no column here:
// they are always read live from the restaurant service.
type PersonalMapEntry struct {
	Id             EntryId      `json:"id"`
	BoardId        BoardId      `json:"boardId"`
	RestaurantId   RestaurantId `json:"restaurantId"`
	RestaurantName string       `json:"restaurantName"`
	Address        string       `json:"address"`
	Location       Location     `json:"location"`
	ImgUrl         string       `json:"imgUrl"`
	Description    string       `json:"description"`
	CreatedAt      time.Time    `json:"createdAt"`
}

// EnrichedEntry is a stored entry plus the remote-only restaurant fields.
type EnrichedEntry struct {
	PersonalMapEntry
	PhoneNumber *string  `json:"phoneNumber"`
	OpeningDays []string `json:"openingDays"`
	// revision of the remote record the entry was merged with
	Version int `json:"__v"`
}

// Stored drops remote-only fields.
func (e EnrichedEntry) Stored() PersonalMapEntry {
	return e.PersonalMapEntry
}
