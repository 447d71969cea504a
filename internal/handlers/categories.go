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

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type CategoryResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	UserID    uint      `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func categoryResponse(category *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		UserID:    category.UserID,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

func (h *Handler) ListCategories(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var categories []models.Category

	if err := h.db.Where("user_id = ?", userID).Order("name ASC").Find(&categories).Error; err != nil {
		h.internalError(ctx, "Failed to fetch categories", err)
		return
	}

	response := make([]CategoryResponse, 0, len(categories))

	for i := range categories {
		response = append(response, categoryResponse(&categories[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *Handler) CreateCategory(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req CategoryRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Category name is required"})
		return
	}

	name := strings.TrimSpace(req.Name)

	if name == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Category name is required"})
		return
	}

	var existing models.Category

	err = h.db.Where("name = ? AND user_id = ?", name, userID).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": "A category with this name already exists"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		h.internalError(ctx, "Failed to check existing category", err)
		return
	}

	category := models.Category{
		Name:   name,
		UserID: userID,
	}

	if err := h.db.Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "A category with this name already exists"})
			return
		}
		h.internalError(ctx, "Failed to create category", err)
		return
	}

	ctx.JSON(http.StatusCreated, categoryResponse(&category))
}

func (h *Handler) GetCategory(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var category models.Category

	// a row owned by someone else reads the same as a missing one
	if err := h.db.Where("id = ? AND user_id = ?", ctx.Param("id"), userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		} else {
			h.internalError(ctx, "Failed to fetch category", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, categoryResponse(&category))
}

func (h *Handler) UpdateCategory(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req CategoryRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Category name is required"})
		return
	}

	name := strings.TrimSpace(req.Name)

	if name == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Category name is required"})
		return
	}

	var category models.Category

	if err := h.db.Where("id = ? AND user_id = ?", ctx.Param("id"), userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		} else {
			h.internalError(ctx, "Failed to fetch category", err)
		}
		return
	}

	var duplicate models.Category

	err = h.db.Where("name = ? AND user_id = ? AND id != ?", name, userID, category.ID).First(&duplicate).Error

	if err == nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": "A category with this name already exists"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		h.internalError(ctx, "Failed to check existing category", err)
		return
	}

	category.Name = name

	if err := h.db.Save(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "A category with this name already exists"})
			return
		}
		h.internalError(ctx, "Failed to update category", err)
		return
	}

	ctx.JSON(http.StatusOK, categoryResponse(&category))
}

func (h *Handler) DeleteCategory(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var category models.Category

	if err := h.db.Where("id = ? AND user_id = ?", ctx.Param("id"), userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		} else {
			h.internalError(ctx, "Failed to fetch category", err)
		}
		return
	}

	// detach from posts; the posts themselves survive
	if err := h.db.Model(&category).Association("Posts").Clear(); err != nil {
		h.internalError(ctx, "Failed to detach category from posts", err)
		return
	}

	if err := h.db.Delete(&category).Error; err != nil {
		h.internalError(ctx, "Failed to delete category", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
