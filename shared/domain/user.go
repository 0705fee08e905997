package domain

import "time"

type User struct {
	Id        UserId    `json:"id"`
	Nickname  Nickname  `json:"nickname"`
	CreatedAt time.Time `json:"createdAt"`
	// loaded only by the owner resolver
	Boards []BoardRef `json:"-"`
	Likes  []Like     `json:"-"`
}

// BoardRef is an owned board in creation order.
type BoardRef struct {
	Id        BoardId
	CreatedAt time.Time
}

// Like marks that the user liked a board. CreatedAt is informational,
// list views order by the board's own creation time.
type Like struct {
	BoardId   BoardId
	CreatedAt time.Time
}

func (u *User) OwnsBoard(id BoardId) bool {
	for _, b := range u.Boards {
		if b.Id == id {
			return true
		}
	}
	return false
}
