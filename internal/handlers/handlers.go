package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/quill-dev/quill/internal/config"
	"github.com/quill-dev/quill/internal/session"
)

// Handler owns the request handlers for every resource. The database handle
// and session manager are injected once at startup instead of being reached
// for as package state.
type Handler struct {
	db         *gorm.DB
	sessions   *session.Manager
	production bool
}

func New(conn *gorm.DB, sessions *session.Manager, cfg *config.Config) *Handler {
	return &Handler{
		db:         conn,
		sessions:   sessions,
		production: cfg.IsProduction(),
	}
}

// internalError logs the real failure and answers with a generic message.
// Error detail is only echoed back outside production.
func (h *Handler) internalError(ctx *gin.Context, message string, err error) {
	log.Error().Err(err).Str("path", ctx.FullPath()).Msg(message)

	body := gin.H{"error": message}

	if !h.production && err != nil {
		body["details"] = err.Error()
	}

	ctx.JSON(http.StatusInternalServerError, body)
}
