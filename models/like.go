package models

import "time"

// Like records approval of either a post or a comment, never both.
// Exactly one of PostID and CommentID is set; the store enforces it.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    *uint     `gorm:"index" json:"post_id,omitempty"`
	CommentID *uint     `gorm:"index" json:"comment_id,omitempty"`
	LikeDate  time.Time `json:"like_date"`
}
