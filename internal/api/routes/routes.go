package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/gigfeed/gigfeed/internal/api/handlers"
	"github.com/gigfeed/gigfeed/internal/api/middleware"
)

type Deps struct {
	Resume  *handlers.ResumeHandler
	Draft   *handlers.DraftHandler
	Profile *handlers.ProfileHandler
	Job     *handlers.JobHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// cross-origin requests from any origin are permitted
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsCfg))

	// non-POST on a POST-only route must be 405, not gin's default 404
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"error": gin.H{"message": "Method not allowed"},
		})
	})

	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Public: callable-style draft generation and storage notifications
	r.POST("/drafts/generate", d.Draft.Generate)
	r.POST("/events/storage", d.Resume.StorageEvent)

	// Public catalog
	r.GET("/jobs", d.Job.List)
	r.GET("/jobs/:id", d.Job.Get)

	// Protected routes (JWT)
	auth := r.Group("/")
	auth.Use(middleware.JWTAuth())

	auth.POST("/resumes/upload", d.Resume.Upload)
	auth.POST("/resumes/process", d.Resume.Process)

	auth.GET("/profile/me", d.Profile.Me)
	auth.POST("/profile/approve", d.Profile.Approve)

	auth.GET("/me/matched-jobs", d.Job.Matched)

	auth.GET("/drafts", d.Draft.List)
	auth.PUT("/drafts/:jobId", d.Draft.Save)
	auth.POST("/drafts/:jobId/applied", d.Draft.MarkApplied)
	auth.DELETE("/drafts/:jobId", d.Draft.Delete)
}
