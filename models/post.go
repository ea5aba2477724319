package models

import "time"

// PostStatus is the publication state of a post.
type PostStatus int

const (
	PostApproved PostStatus = 1
	PostPending  PostStatus = 2
	PostDeleted  PostStatus = 3
)

// Post is a blog entry. Author is free text supplied by the caller and is
// intentionally not a foreign key to users.
type Post struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"size:255;not null" json:"title"`
	Author    string     `gorm:"size:64" json:"author"`
	Category  string     `gorm:"size:64" json:"category"`
	Photo     string     `gorm:"size:512" json:"photo"`
	Body      string     `gorm:"type:text;not null" json:"body"`
	PostDate  time.Time  `json:"postDate"`
	Status    PostStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Comments  []Comment  `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}
