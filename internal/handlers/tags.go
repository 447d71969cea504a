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

type TagRequest struct {
	Name string `json:"name" binding:"required"`
}

type TagResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	UserID    uint      `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func tagResponse(tag *models.Tag) TagResponse {
	return TagResponse{
		ID:        tag.ID,
		Name:      tag.Name,
		UserID:    tag.UserID,
		CreatedAt: tag.CreatedAt,
		UpdatedAt: tag.UpdatedAt,
	}
}

func (h *Handler) ListTags(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var tags []models.Tag

	if err := h.db.Where("user_id = ?", userID).Order("name ASC").Find(&tags).Error; err != nil {
		h.internalError(ctx, "Failed to fetch tags", err)
		return
	}

	response := make([]TagResponse, 0, len(tags))

	for i := range tags {
		response = append(response, tagResponse(&tags[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *Handler) CreateTag(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req TagRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Tag name is required"})
		return
	}

	name := strings.TrimSpace(req.Name)

	if name == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Tag name is required"})
		return
	}

	var existing models.Tag

	err = h.db.Where("name = ? AND user_id = ?", name, userID).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": "A tag with this name already exists"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		h.internalError(ctx, "Failed to check existing tag", err)
		return
	}

	tag := models.Tag{
		Name:   name,
		UserID: userID,
	}

	if err := h.db.Create(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "A tag with this name already exists"})
			return
		}
		h.internalError(ctx, "Failed to create tag", err)
		return
	}

	ctx.JSON(http.StatusCreated, tagResponse(&tag))
}

func (h *Handler) GetTag(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var tag models.Tag

	if err := h.db.Where("id = ? AND user_id = ?", ctx.Param("id"), userID).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		} else {
			h.internalError(ctx, "Failed to fetch tag", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, tagResponse(&tag))
}

func (h *Handler) UpdateTag(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req TagRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Tag name is required"})
		return
	}

	name := strings.TrimSpace(req.Name)

	if name == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Tag name is required"})
		return
	}

	var tag models.Tag

	if err := h.db.Where("id = ? AND user_id = ?", ctx.Param("id"), userID).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		} else {
			h.internalError(ctx, "Failed to fetch tag", err)
		}
		return
	}

	var duplicate models.Tag

	err = h.db.Where("name = ? AND user_id = ? AND id != ?", name, userID, tag.ID).First(&duplicate).Error

	if err == nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": "A tag with this name already exists"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		h.internalError(ctx, "Failed to check existing tag", err)
		return
	}

	tag.Name = name

	if err := h.db.Save(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "A tag with this name already exists"})
			return
		}
		h.internalError(ctx, "Failed to update tag", err)
		return
	}

	ctx.JSON(http.StatusOK, tagResponse(&tag))
}

func (h *Handler) DeleteTag(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var tag models.Tag

	if err := h.db.Where("id = ? AND user_id = ?", ctx.Param("id"), userID).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		} else {
			h.internalError(ctx, "Failed to fetch tag", err)
		}
		return
	}

	if err := h.db.Model(&tag).Association("Posts").Clear(); err != nil {
		h.internalError(ctx, "Failed to detach tag from posts", err)
		return
	}

	if err := h.db.Delete(&tag).Error; err != nil {
		h.internalError(ctx, "Failed to delete tag", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
