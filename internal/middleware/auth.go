package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/quill-dev/quill/internal/models"
	"github.com/quill-dev/quill/internal/session"
	"github.com/quill-dev/quill/internal/types"
)

type AuthenticatedUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Auth guards every resource route: requests without a resolvable session
// are rejected before any handler touches storage.
func Auth(conn *gorm.DB, sessions *session.Manager) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := sessions.Resolve(ctx)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		var user models.User

		if err := conn.Where("id = ?", userID).First(&user).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Error().Err(err).Msg("Failed to load user for session")
			}
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		})
		ctx.Next()
	}
}
