package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bloggapi/blogg/authz"
	"github.com/bloggapi/blogg/models"
	"github.com/bloggapi/blogg/stores"
	"github.com/bloggapi/blogg/utils"
)

const (
	msgNotRegistered   = "You need to be a registered member of our community"
	msgCreatePostDeny  = "Check the username, or visit our register page to have access to this feature"
	msgPostNotFound    = "Invalid Post ID. Post does not exist"
	msgCommentNotFound = "Invalid Comment ID. Comment does not exist"
)

// PostController handles post creation, commenting and liking. Callers
// identify themselves by the Username query parameter; the named user is
// resolved against the credential store per request.
type PostController struct {
	creds   *stores.CredentialStore
	content *stores.ContentStore
}

func NewPostController(creds *stores.CredentialStore, content *stores.ContentStore) *PostController {
	return &PostController{creds: creds, content: content}
}

// CreatePost persists a post for an admin caller. A nonexistent user and
// a user without the admin role produce the same error so the response
// does not disclose which check failed.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req struct {
		Title    string            `json:"title" binding:"required"`
		Author   string            `json:"author"`
		Category string            `json:"category"`
		Photo    string            `json:"photo"`
		Body     string            `json:"body" binding:"required"`
		PostDate time.Time         `json:"postDate"`
		Status   models.PostStatus `json:"status"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	id, ok := p.resolveIdentity(ctx.Query("Username"))
	if !ok || !authz.Allow(authz.OpCreatePost, id) {
		utils.Error(ctx, http.StatusInternalServerError, msgCreatePostDeny)
		return
	}

	post := models.Post{
		Title:    utils.Sanitize(strings.TrimSpace(req.Title)),
		Author:   req.Author,
		Category: req.Category,
		Photo:    req.Photo,
		Body:     utils.Sanitize(req.Body),
		PostDate: req.PostDate,
		Status:   req.Status,
	}
	if err := p.content.CreatePost(&post); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to create post")
		return
	}
	utils.Success(ctx, "Post Approved and Created.")
}

// AddComment attaches a comment to an existing post. The comment date is
// server-assigned.
func (p *PostController) AddComment(ctx *gin.Context) {
	var req struct {
		PostID uint   `json:"postId" binding:"required"`
		Body   string `json:"body" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	if _, ok := p.resolveIdentity(ctx.Query("Username")); !ok {
		utils.Error(ctx, http.StatusInternalServerError, msgNotRegistered)
		return
	}

	comment := models.Comment{
		PostID: req.PostID,
		Body:   utils.Sanitize(req.Body),
	}
	if err := p.content.CreateComment(&comment); err != nil {
		if errors.Is(err, stores.ErrPostNotFound) {
			utils.Error(ctx, http.StatusNotFound, msgPostNotFound)
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, "failed to create comment")
		return
	}
	utils.Success(ctx, "Comment Added")
}

// LikePost records a like on an existing post.
func (p *PostController) LikePost(ctx *gin.Context) {
	var req struct {
		PostID uint `json:"postId" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	if _, ok := p.resolveIdentity(ctx.Query("Username")); !ok {
		utils.Error(ctx, http.StatusInternalServerError, msgNotRegistered)
		return
	}

	like := models.Like{PostID: &req.PostID}
	if err := p.content.CreateLike(&like); err != nil {
		if errors.Is(err, stores.ErrPostNotFound) {
			utils.Error(ctx, http.StatusNotFound, msgPostNotFound)
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, "failed to create like")
		return
	}
	utils.Success(ctx, "Post Liked")
}

// LikeComment records a like on an existing comment.
func (p *PostController) LikeComment(ctx *gin.Context) {
	var req struct {
		CommentID uint `json:"commentId" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	if _, ok := p.resolveIdentity(ctx.Query("Username")); !ok {
		utils.Error(ctx, http.StatusInternalServerError, msgNotRegistered)
		return
	}

	like := models.Like{CommentID: &req.CommentID}
	if err := p.content.CreateLike(&like); err != nil {
		if errors.Is(err, stores.ErrCommentNotFound) {
			utils.Error(ctx, http.StatusNotFound, msgCommentNotFound)
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, "failed to create like")
		return
	}
	utils.Success(ctx, "Comment Liked")
}

// resolveIdentity looks up the named user and its roles. ok is false when
// the user does not exist or the lookup failed.
func (p *PostController) resolveIdentity(username string) (authz.Identity, bool) {
	user, err := p.creds.FindByUsername(strings.TrimSpace(username))
	if err != nil {
		return authz.Identity{}, false
	}
	roles, err := p.creds.RolesOf(user)
	if err != nil {
		return authz.Identity{}, false
	}
	return authz.Identity{Username: user.Username, Roles: roles}, true
}
