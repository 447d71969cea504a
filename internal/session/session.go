package session

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/quill-dev/quill/internal/auth"
	"github.com/quill-dev/quill/internal/models"
)

const (
	CookieName = "app-session"
	TTL        = 7 * 24 * time.Hour
)

// Manager binds authenticated requests to user ids. Tokens are HS256 JWTs
// carrying a session id that must still exist in the sessions table, so a
// logout revokes the token server-side before its embedded expiry.
type Manager struct {
	db     *gorm.DB
	secret []byte
	secure bool
	domain string
}

func NewManager(conn *gorm.DB, secret string, secure bool, domain string) *Manager {
	return &Manager{
		db:     conn,
		secret: []byte(secret),
		secure: secure,
		domain: domain,
	}
}

// Create issues a fresh session for user and emits it as an http-only
// cookie. The signed token is also returned for clients that prefer the
// Authorization header.
func (m *Manager) Create(ctx *gin.Context, user *models.User) (string, error) {
	record := models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(TTL),
	}

	if err := m.db.Create(&record).Error; err != nil {
		return "", err
	}

	token, err := auth.GenerateJWT(m.secret, user.ID, user.Email, record.ID, TTL)

	if err != nil {
		return "", err
	}

	m.setCookie(ctx, token, int(TTL.Seconds()))

	return token, nil
}

// Resolve maps the request to a user id. It fails open to (0, false) on any
// missing, malformed, expired, or revoked token and never returns an error;
// client-supplied plaintext ids are never consulted.
func (m *Manager) Resolve(ctx *gin.Context) (uint, bool) {
	tokenString := tokenFromRequest(ctx)

	if tokenString == "" {
		return 0, false
	}

	claims, err := auth.VerifyJWT(m.secret, tokenString)

	if err != nil {
		return 0, false
	}

	var record models.Session

	if err := m.db.Where("id = ?", claims.SessionID).First(&record).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error().Err(err).Msg("Failed to load session record")
		}
		return 0, false
	}

	if time.Now().After(record.ExpiresAt) {
		// lazy cleanup of the stale row
		m.db.Delete(&models.Session{}, "id = ?", record.ID)
		return 0, false
	}

	if record.UserID != claims.UserID {
		return 0, false
	}

	return record.UserID, true
}

// Destroy revokes the current session row, if any, and clears the cookie.
// Safe to call with no active session.
func (m *Manager) Destroy(ctx *gin.Context) {
	if tokenString := tokenFromRequest(ctx); tokenString != "" {
		if claims, err := auth.VerifyJWT(m.secret, tokenString); err == nil {
			if err := m.db.Delete(&models.Session{}, "id = ?", claims.SessionID).Error; err != nil {
				log.Error().Err(err).Msg("Failed to delete session record")
			}
		}
	}

	m.setCookie(ctx, "", -1)
}

func (m *Manager) setCookie(ctx *gin.Context, value string, maxAge int) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Domain:   m.domain,
		MaxAge:   maxAge,
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func tokenFromRequest(ctx *gin.Context) string {
	if cookie, err := ctx.Request.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := ctx.GetHeader("Authorization")

	parts := strings.SplitN(authHeader, " ", 2)

	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}

	return ""
}
