package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quill-dev/quill/internal/auth"
	"github.com/quill-dev/quill/internal/models"
	"github.com/quill-dev/quill/internal/types"
	"github.com/quill-dev/quill/internal/utils"
)

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func userResponse(user *models.User) types.UserResponse {
	return types.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func (h *Handler) Signup(ctx *gin.Context) {
	var req SignupRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Name, email and password (at least 6 characters) are required"})
		return
	}

	var existing models.User

	err := h.db.Where("email = ?", req.Email).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": "User already exists with this email"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		h.internalError(ctx, "Failed to check existing user", err)
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)

	if err != nil {
		h.internalError(ctx, "Failed to hash password", err)
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
	}

	if err := h.db.Create(&user).Error; err != nil {
		// backstop for two concurrent signups racing past the pre-check
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "User already exists with this email"})
			return
		}
		h.internalError(ctx, "Failed to create user", err)
		return
	}

	token, err := h.sessions.Create(ctx, &user)

	if err != nil {
		h.internalError(ctx, "Failed to create session", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"user":  userResponse(&user),
		"token": token,
	})
}

func (h *Handler) Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	var user models.User

	err := h.db.Where("email = ?", req.Email).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// same message as a bad password so the response never reveals
			// whether the email is registered
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		h.internalError(ctx, "Failed to fetch user", err)
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.sessions.Create(ctx, &user)

	if err != nil {
		h.internalError(ctx, "Failed to create session", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user":  userResponse(&user),
		"token": token,
	})
}

// Logout revokes the current session and clears the cookie. It succeeds
// even when no session exists.
func (h *Handler) Logout(ctx *gin.Context) {
	h.sessions.Destroy(ctx)

	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Session reports the user behind the current session. The auth middleware
// already rejected requests without one.
func (h *Handler) Session(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var user models.User

	if err := h.db.First(&user, currentUser.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		h.internalError(ctx, "Failed to fetch user", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": userResponse(&user)})
}
