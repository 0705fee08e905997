package domain

import (
	"time"
)

// to iterate thru layers: handler -> service -> storage
type BoardDraft struct {
	Title      BoardTitle
	Course     string
	BoardImg   string
	StartPoint Region
	EndPoint   Region
}

type BoardMetadata struct {
	Id         BoardId    `json:"id"`
	Title      BoardTitle `json:"title"`
	Course     string     `json:"course"`
	BoardImg   string     `json:"boardImg"`
	StartPoint Region     `json:"startPoint"`
	EndPoint   Region     `json:"endPoint"`
	Like       int        `json:"like"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// Board is the persisted record with whichever relations were requested.
type Board struct {
	BoardMetadata
	Owner    *User              `json:"user,omitempty"`
	Entries  []PersonalMapEntry `json:"personalMapData"`
	Comments []Comment          `json:"comments"`
}

// EnrichedBoard is the read-time view: stored entries merged with live restaurant details.
type EnrichedBoard struct {
	BoardMetadata
	CourseHTML string          `json:"courseHtml,omitempty"`
	Owner      *User           `json:"user,omitempty"`
	Entries    []EnrichedEntry `json:"personalMapData"`
	Comments   []Comment       `json:"comments"`
}

// BoardRelations selects what is loaded together with the board row.
type BoardRelations struct {
	Owner    bool
	Entries  bool
	Comments bool
}

var AllRelations = BoardRelations{Owner: true, Entries: true, Comments: true}

// BoardFilter is a conjunction; zero fields are ignored. A non-nil empty
// Ids matches nothing.
type BoardFilter struct {
	Ids        []BoardId
	OwnerId    *UserId
	StartPoint Region
	EndPoint   Region
}

func (f BoardFilter) IsEmpty() bool {
	return f.Ids == nil && f.OwnerId == nil && f.StartPoint == "" && f.EndPoint == ""
}

type DeleteResult string

const (
	Deleted        DeleteResult = "deleted"
	AlreadyDeleted DeleteResult = "already deleted"
	NoPermission   DeleteResult = "no permission"
)

// Message is the user-facing text for the result.
func (r DeleteResult) Message() string {
	switch r {
	case Deleted:
		return "the board was deleted"
	case AlreadyDeleted:
		return "the board has already been deleted"
	case NoPermission:
		return "no permission to delete the board"
	default:
		return string(r)
	}
}
