package domain

type (
	UserId   = int64
	Nickname = string

	BoardId    = string
	BoardTitle = string
	Region     = string

	EntryId      = string
	RestaurantId = string

	CommentId = string
	ReplyId   = string
)
