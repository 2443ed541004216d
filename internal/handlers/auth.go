package handlers

import (
	"errors"

	"github.com/consultoria/portal/internal/metrics"
	"github.com/consultoria/portal/internal/middleware"
	"github.com/consultoria/portal/internal/services"
	"github.com/consultoria/portal/pkg/logger"
	"github.com/consultoria/portal/pkg/response"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*App
}

func NewAuthHandler(app *App) *AuthHandler {
	return &AuthHandler{App: app}
}

type loginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

type registerForm struct {
	Email    string `form:"email" binding:"required,email,max=100"`
	Name     string `form:"name" binding:"required,max=100"`
	Password string `form:"password" binding:"required,max=72"`
}

// ShowLogin renders the login form
// GET /login
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	h.render(c, "login.html", "Login", nil)
}

// Login checks the credentials and starts a session
// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.LoginFailure).Inc()
		response.RedirectWithError(c, "/login", bindingMessage(err))
		return
	}

	user, err := h.Auth.Authenticate(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues(metrics.LoginFailure).Inc()
			logger.FromGin(c).Info().Str("ip", c.ClientIP()).Msg("login failed")
		} else {
			metrics.LoginsTotal.WithLabelValues(metrics.LoginError).Inc()
		}
		fail(c, "/login", err)
		return
	}

	token, expireAt, err := h.Sessions.Issue(user.ID, user.Email, user.Role.String())
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.LoginError).Inc()
		fail(c, "/login", err)
		return
	}
	h.Cookie.Set(c, token, expireAt)

	metrics.LoginsTotal.WithLabelValues(metrics.LoginSuccess).Inc()
	logger.FromGin(c).Info().Uint("user_id", user.ID).Str("role", user.Role.String()).Msg("user logged in")
	response.Redirect(c, user.Role.HomePath())
}

// ShowRegister renders the self-service registration form
// GET /register
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	h.render(c, "register.html", "Register", nil)
}

// Register creates a client account
// POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		response.RedirectWithError(c, "/register", bindingMessage(err))
		return
	}

	user, err := h.Auth.Register(c.Request.Context(), services.RegisterInput{
		Email:    form.Email,
		Name:     form.Name,
		Password: form.Password,
	})
	if err != nil {
		fail(c, "/register", err)
		return
	}

	metrics.ClientsCreatedTotal.WithLabelValues("register").Inc()
	logger.FromGin(c).Info().Uint("user_id", user.ID).Msg("client registered")
	response.RedirectWithSuccess(c, "/login", MsgAccountCreated)
}

// Logout ends the current session
// GET /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Sessions.Revoke(middleware.GetClaims(c))
	h.Cookie.Clear(c)
	response.RedirectWithSuccess(c, "/", MsgLoggedOut)
}
