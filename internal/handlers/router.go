package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/diabetes-api/internal/middleware"
	"github.com/harentsoaR/diabetes-api/internal/views"
)

// NewRouter builds the engine with the middleware chain, the pages and every
// route.
func NewRouter(h *Handler, corsOrigins []string) (*gin.Engine, error) {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(h.Logger),
		middleware.Recovery(h.Logger),
	)

	// cors.New panics without origins
	if len(corsOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     corsOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	tmpl, err := views.Templates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusTemporaryRedirect, "/login")
	})

	r.GET("/register", h.RegisterPage)
	r.POST("/register", h.Register)
	r.GET("/login", h.LoginPage)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)

	protected := r.Group("/")
	protected.Use(h.Session.Require())
	{
		protected.GET("/home", h.Home)
		protected.GET("/add", h.AddPatientPage)
		protected.POST("/submet", h.CreatePatient)
		protected.GET("/patients", h.ListPatients)
		protected.GET("/delete/:id", h.DeletePatient)
		protected.POST("/delete/:id", h.DeletePatient)
	}

	return r, nil
}
