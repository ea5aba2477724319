package models

import "time"

// Comment is a reply to a post. CommentDate is server-assigned.
type Comment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PostID      uint      `gorm:"index;not null" json:"post_id"`
	Body        string    `gorm:"type:text;not null" json:"body"`
	CommentDate time.Time `json:"comment_date"`
}
