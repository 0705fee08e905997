package domain

import "time"

type Comment struct {
	Id        CommentId `json:"id"`
	BoardId   BoardId   `json:"boardId"`
	Author    User      `json:"user"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Replies   []Reply   `json:"replies"`
}

type Reply struct {
	Id        ReplyId   `json:"id"`
	CommentId CommentId `json:"commentId"`
	Author    User      `json:"user"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
