package router

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quill-dev/quill/internal/config"
	"github.com/quill-dev/quill/internal/handlers"
	"github.com/quill-dev/quill/internal/middleware"
	"github.com/quill-dev/quill/internal/session"
	"github.com/quill-dev/quill/internal/types"
)

func New(conn *gorm.DB, sessions *session.Manager, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	h := handlers.New(conn, sessions, cfg)
	authenticated := middleware.Auth(conn, sessions)

	// unsupported methods answer 405 with an Allow header instead of 404
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(ctx *gin.Context) {
		if allow := allowedMethods(r, ctx.Request.URL.Path); allow != "" {
			ctx.Header("Allow", allow)
		}
		ctx.JSON(http.StatusMethodNotAllowed, gin.H{
			"error": fmt.Sprintf("Method %s not allowed", ctx.Request.Method),
		})
	})

	r.GET("/health", h.HealthCheck)

	auth := r.Group("/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/session", authenticated, h.Session)
	}

	posts := r.Group("/posts", authenticated)
	{
		posts.GET("", h.ListPosts)
		posts.POST("", h.CreatePost)
		posts.GET("/:id", h.GetPost)
		posts.PUT("/:id", h.UpdatePost)
		posts.DELETE("/:id", h.DeletePost)
	}

	categories := r.Group("/categories", authenticated)
	{
		categories.GET("", h.ListCategories)
		categories.POST("", h.CreateCategory)
		categories.GET("/:id", h.GetCategory)
		categories.PUT("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}

	tags := r.Group("/tags", authenticated)
	{
		tags.GET("", h.ListTags)
		tags.POST("", h.CreateTag)
		tags.GET("/:id", h.GetTag)
		tags.PUT("/:id", h.UpdateTag)
		tags.DELETE("/:id", h.DeleteTag)
	}

	return r
}

// allowedMethods lists the methods registered for the route matching path,
// sorted for a stable Allow header.
func allowedMethods(r *gin.Engine, path string) string {
	seen := make(map[string]struct{})

	for _, route := range r.Routes() {
		if matchesRoute(route.Path, path) {
			seen[route.Method] = struct{}{}
		}
	}

	methods := make([]string, 0, len(seen))

	for method := range seen {
		methods = append(methods, method)
	}

	sort.Strings(methods)

	return strings.Join(methods, ", ")
}

func matchesRoute(pattern, path string) bool {
	patternParts := strings.Split(pattern, "/")
	pathParts := strings.Split(path, "/")

	if len(patternParts) != len(pathParts) {
		return false
	}

	for i := range patternParts {
		if strings.HasPrefix(patternParts[i], ":") {
			if pathParts[i] == "" {
				return false
			}
			continue
		}
		if patternParts[i] != pathParts[i] {
			return false
		}
	}

	return true
}
