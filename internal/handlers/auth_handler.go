package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/diabetes-api/internal/services"
)

const (
	msgPasswordMismatch   = "Mots de passe différents"
	msgDoctorExists       = "Nom d'utilisateur ou email déjà utilisé"
	msgInvalidCredentials = "Identifiants invalides"
)

type registerForm struct {
	Username        string `form:"username" binding:"required"`
	Email           string `form:"email" binding:"required"`
	Password        string `form:"password" binding:"required"`
	ConfirmPassword string `form:"confirm_password" binding:"required"`
}

type loginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func (h *Handler) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{"Title": "Inscription"})
}

// Register creates the account and sends the doctor to the login page.
// A mismatch or a taken username/email re-renders the form.
func (h *Handler) Register(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusUnprocessableEntity, "formulaire invalide")
		return
	}

	page := gin.H{"Title": "Inscription", "Username": form.Username, "Email": form.Email}

	d, err := h.Auth.Register(c.Request.Context(), services.RegisterInput{
		Username:        form.Username,
		Email:           form.Email,
		Password:        form.Password,
		ConfirmPassword: form.ConfirmPassword,
	})
	switch {
	case errors.Is(err, services.ErrPasswordMismatch):
		page["Error"] = msgPasswordMismatch
		c.HTML(http.StatusOK, "register.html", page)
		return
	case errors.Is(err, services.ErrDoctorExists):
		page["Error"] = msgDoctorExists
		c.HTML(http.StatusOK, "register.html", page)
		return
	case err != nil:
		h.internalError(c, err)
		return
	}

	h.Logger.Info().Int64("doctor_id", d.ID).Msg("doctor registered")
	c.Redirect(http.StatusSeeOther, "/login")
}

func (h *Handler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Title": "Connexion"})
}

// Login opens a session. Unknown usernames and wrong passwords get the same
// answer.
func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusUnprocessableEntity, "formulaire invalide")
		return
	}

	d, err := h.Auth.Login(c.Request.Context(), form.Username, form.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Title":    "Connexion",
			"Username": form.Username,
			"Error":    msgInvalidCredentials,
		})
		return
	}
	if err != nil {
		h.internalError(c, err)
		return
	}

	if err := h.Session.Start(c, d.ID); err != nil {
		h.internalError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/home")
}

func (h *Handler) Logout(c *gin.Context) {
	h.Session.End(c)
	c.Redirect(http.StatusSeeOther, "/login")
}
