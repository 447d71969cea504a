package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quill-dev/quill/internal/models"
	"github.com/quill-dev/quill/internal/utils"
)

type CreatePostRequest struct {
	Title       string `json:"title" binding:"required"`
	Content     string `json:"content" binding:"required"`
	CategoryIDs []uint `json:"category_ids"`
	TagIDs      []uint `json:"tag_ids"`
}

type UpdatePostRequest struct {
	Title       string `json:"title" binding:"required"`
	Content     string `json:"content"`
	CategoryIDs []uint `json:"category_ids"`
	TagIDs      []uint `json:"tag_ids"`
}

type PostResponse struct {
	ID         uint               `json:"id"`
	Title      string             `json:"title"`
	Content    string             `json:"content"`
	UserID     uint               `json:"user_id"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	Categories []CategoryResponse `json:"categories"`
	Tags       []TagResponse      `json:"tags"`
}

func postResponse(post *models.Post) PostResponse {
	response := PostResponse{
		ID:         post.ID,
		Title:      post.Title,
		Content:    post.Content,
		UserID:     post.UserID,
		CreatedAt:  post.CreatedAt,
		UpdatedAt:  post.UpdatedAt,
		Categories: make([]CategoryResponse, 0, len(post.Categories)),
		Tags:       make([]TagResponse, 0, len(post.Tags)),
	}

	for i := range post.Categories {
		response.Categories = append(response.Categories, categoryResponse(&post.Categories[i]))
	}

	for i := range post.Tags {
		response.Tags = append(response.Tags, tagResponse(&post.Tags[i]))
	}

	return response
}

// ownedCategories resolves the requested ids against the caller's own
// categories. Ids that are missing or owned by another user do not resolve,
// so attaching someone else's category is impossible.
func (h *Handler) ownedCategories(userID uint, ids []uint) ([]models.Category, bool, error) {
	ids = uniqueIDs(ids)

	if len(ids) == 0 {
		return []models.Category{}, true, nil
	}

	var categories []models.Category

	if err := h.db.Where("id IN ? AND user_id = ?", ids, userID).Find(&categories).Error; err != nil {
		return nil, false, err
	}

	return categories, len(categories) == len(ids), nil
}

func (h *Handler) ownedTags(userID uint, ids []uint) ([]models.Tag, bool, error) {
	ids = uniqueIDs(ids)

	if len(ids) == 0 {
		return []models.Tag{}, true, nil
	}

	var tags []models.Tag

	if err := h.db.Where("id IN ? AND user_id = ?", ids, userID).Find(&tags).Error; err != nil {
		return nil, false, err
	}

	return tags, len(tags) == len(ids), nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	unique := make([]uint, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	return unique
}

func (h *Handler) ListPosts(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var posts []models.Post

	err = h.db.Where("user_id = ?", userID).
		Preload("Categories").
		Preload("Tags").
		Order("created_at DESC, id DESC").
		Find(&posts).Error

	if err != nil {
		h.internalError(ctx, "Failed to fetch posts", err)
		return
	}

	response := make([]PostResponse, 0, len(posts))

	for i := range posts {
		response = append(response, postResponse(&posts[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *Handler) CreatePost(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req CreatePostRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Title and content are required"})
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Title and content are required"})
		return
	}

	categories, ok, err := h.ownedCategories(userID, req.CategoryIDs)

	if err != nil {
		h.internalError(ctx, "Failed to resolve categories", err)
		return
	}

	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category or tag ID provided"})
		return
	}

	tags, ok, err := h.ownedTags(userID, req.TagIDs)

	if err != nil {
		h.internalError(ctx, "Failed to resolve tags", err)
		return
	}

	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category or tag ID provided"})
		return
	}

	post := models.Post{
		Title:      req.Title,
		Content:    req.Content,
		UserID:     userID,
		Categories: categories,
		Tags:       tags,
	}

	if err := h.db.Create(&post).Error; err != nil {
		h.internalError(ctx, "Failed to create post", err)
		return
	}

	ctx.JSON(http.StatusCreated, postResponse(&post))
}

func (h *Handler) GetPost(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var post models.Post

	err = h.db.Where("id = ? AND user_id = ?", ctx.Param("id"), userID).
		Preload("Categories").
		Preload("Tags").
		First(&post).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		} else {
			h.internalError(ctx, "Failed to fetch post", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, postResponse(&post))
}

// UpdatePost replaces the post's mutable fields and both association sets.
// An empty or absent id list clears the corresponding set.
func (h *Handler) UpdatePost(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req UpdatePostRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	var post models.Post

	if err := h.db.Where("id = ? AND user_id = ?", ctx.Param("id"), userID).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		} else {
			h.internalError(ctx, "Failed to fetch post", err)
		}
		return
	}

	categories, ok, err := h.ownedCategories(userID, req.CategoryIDs)

	if err != nil {
		h.internalError(ctx, "Failed to resolve categories", err)
		return
	}

	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category or tag ID provided"})
		return
	}

	tags, ok, err := h.ownedTags(userID, req.TagIDs)

	if err != nil {
		h.internalError(ctx, "Failed to resolve tags", err)
		return
	}

	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category or tag ID provided"})
		return
	}

	post.Title = req.Title
	post.Content = req.Content

	if err := h.db.Save(&post).Error; err != nil {
		h.internalError(ctx, "Failed to update post", err)
		return
	}

	if err := h.db.Model(&post).Association("Categories").Replace(categories); err != nil {
		h.internalError(ctx, "Failed to update post categories", err)
		return
	}

	if err := h.db.Model(&post).Association("Tags").Replace(tags); err != nil {
		h.internalError(ctx, "Failed to update post tags", err)
		return
	}

	post.Categories = categories
	post.Tags = tags

	ctx.JSON(http.StatusOK, postResponse(&post))
}

func (h *Handler) DeletePost(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var post models.Post

	if err := h.db.Where("id = ? AND user_id = ?", ctx.Param("id"), userID).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		} else {
			h.internalError(ctx, "Failed to fetch post", err)
		}
		return
	}

	// drop the association links first, then the row itself
	if err := h.db.Model(&post).Association("Categories").Clear(); err != nil {
		h.internalError(ctx, "Failed to detach post categories", err)
		return
	}

	if err := h.db.Model(&post).Association("Tags").Clear(); err != nil {
		h.internalError(ctx, "Failed to detach post tags", err)
		return
	}

	if err := h.db.Delete(&post).Error; err != nil {
		h.internalError(ctx, "Failed to delete post", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
