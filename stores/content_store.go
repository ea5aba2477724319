package stores

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/bloggapi/blogg/models"
)

var (
	ErrPostNotFound      = errors.New("post not found")
	ErrCommentNotFound   = errors.New("comment not found")
	ErrInvalidLikeTarget = errors.New("like must reference exactly one target")
)

// ContentStore persists posts, comments and likes. Every reference is
// validated with an explicit existence check before the write; missing
// rows surface as typed errors, never as intercepted driver faults.
type ContentStore struct {
	db *gorm.DB
}

func NewContentStore(db *gorm.DB) *ContentStore {
	return &ContentStore{db: db}
}

// CreatePost persists a post as supplied by the caller.
func (s *ContentStore) CreatePost(post *models.Post) error {
	return s.db.Create(post).Error
}

// FindPost returns the post or ErrPostNotFound.
func (s *ContentStore) FindPost(id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// PostExists reports whether a post row with the id exists.
func (s *ContentStore) PostExists(id uint) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Post{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CommentExists reports whether a comment row with the id exists.
func (s *ContentStore) CommentExists(id uint) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Comment{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateComment stamps the server time and persists the comment after
// verifying the referenced post exists.
func (s *ContentStore) CreateComment(comment *models.Comment) error {
	ok, err := s.PostExists(comment.PostID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPostNotFound
	}
	comment.CommentDate = time.Now()
	return s.db.Create(comment).Error
}

// CreateLike stamps the server time and persists the like. The like must
// reference exactly one existing target.
func (s *ContentStore) CreateLike(like *models.Like) error {
	if (like.PostID == nil) == (like.CommentID == nil) {
		return ErrInvalidLikeTarget
	}

	if like.PostID != nil {
		ok, err := s.PostExists(*like.PostID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrPostNotFound
		}
	} else {
		ok, err := s.CommentExists(*like.CommentID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrCommentNotFound
		}
	}

	like.LikeDate = time.Now()
	return s.db.Create(like).Error
}
