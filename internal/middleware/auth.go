package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/diabetes-api/internal/utils"
)

const (
	// SessionCookie keeps the name existing browsers already carry.
	SessionCookie = "doctor_id"
	DoctorIDKey   = "doctorID"
)

// Session issues, checks and clears the signed session cookie.
type Session struct {
	Signer *utils.SessionSigner
	Secure bool
}

func NewSession(signer *utils.SessionSigner, secure bool) *Session {
	return &Session{Signer: signer, Secure: secure}
}

// Start signs a token for the doctor and sets it as an HttpOnly cookie that
// lives as long as the token.
func (s *Session) Start(c *gin.Context, doctorID int64) error {
	token, err := s.Signer.Issue(doctorID)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(s.Signer.TTL().Seconds()), "/", "", s.Secure, true)
	return nil
}

// End deletes the cookie. Nothing is kept server side.
func (s *Session) End(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", s.Secure, true)
}

// Require lets the request through only with a valid session. Anything else
// is sent to the login page.
func (s *Session) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			RedirectToLogin(c)
			return
		}

		doctorID, err := s.Signer.Verify(token)
		if err != nil {
			s.End(c)
			RedirectToLogin(c)
			return
		}

		// Set doctor id in the context for handlers to use
		c.Set(DoctorIDKey, doctorID)

		c.Next()
	}
}

// DoctorID returns the id stored by Require.
func DoctorID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(DoctorIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func RedirectToLogin(c *gin.Context) {
	Redirect(c, "/login")
	c.Abort()
}

// Redirect uses 307 for GET so the browser simply follows, and 303 for form
// posts so the follow-up is a GET.
func Redirect(c *gin.Context, location string) {
	status := http.StatusTemporaryRedirect
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		status = http.StatusSeeOther
	}
	c.Redirect(status, location)
}
