package response

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope used by the machine-facing endpoints.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Flash categories understood by the templates.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// FlashCookie carries flash messages across one redirect.
const FlashCookie = "portal_flash"

const flashContextKey = "flashes"

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// AppError is an expected failure: the user is sent to RedirectTo with Message flashed.
type AppError struct {
	HTTPStatus int
	Message    string
	RedirectTo string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewRedirectError(redirectTo, msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusSeeOther, Message: msg, RedirectTo: redirectTo}
}

// --- Gin response helpers ---

// Success sends a 200 OK response with data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "ok",
		Data:    data,
	})
}

func ServiceUnavailable(c *gin.Context, data interface{}) {
	c.JSON(http.StatusServiceUnavailable, Response{
		Code:    http.StatusServiceUnavailable,
		Message: "unavailable",
		Data:    data,
	})
}

// Redirect answers a form submission with 303 See Other so the browser follows with GET.
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
	c.Abort()
}

// RedirectWithSuccess flashes msg as a success and redirects.
func RedirectWithSuccess(c *gin.Context, location, msg string) {
	SetFlash(c, FlashSuccess, msg)
	Redirect(c, location)
}

// RedirectWithError flashes msg as an error and redirects.
func RedirectWithError(c *gin.Context, location, msg string) {
	SetFlash(c, FlashError, msg)
	Redirect(c, location)
}

// Error turns err into a response. An *AppError becomes a redirect with an
// error flash; anything else is an internal server error.
func Error(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RedirectWithError(c, appErr.RedirectTo, appErr.Message)
		return
	}
	_ = c.Error(err)
	c.String(http.StatusInternalServerError, "Internal Server Error")
	c.Abort()
}

// SetFlash queues a message for the next page the client renders.
func SetFlash(c *gin.Context, category, msg string) {
	pending := pendingFlashes(c)
	pending = append(pending, Flash{Category: category, Message: msg})
	c.Set(flashContextKey, pending)

	data, err := json.Marshal(pending)
	if err != nil {
		return
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     FlashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Flashes returns and consumes the messages queued for this client.
func Flashes(c *gin.Context) []Flash {
	var flashes []Flash

	raw, err := c.Cookie(FlashCookie)
	hadCookie := err == nil && raw != ""
	if hadCookie {
		if data, err := base64.RawURLEncoding.DecodeString(raw); err == nil {
			var stored []Flash
			if json.Unmarshal(data, &stored) == nil {
				flashes = append(flashes, stored...)
			}
		}
	}

	pending := pendingFlashes(c)
	flashes = append(flashes, pending...)

	if hadCookie || len(pending) > 0 {
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     FlashCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	c.Set(flashContextKey, []Flash(nil))
	return flashes
}

func pendingFlashes(c *gin.Context) []Flash {
	if v, ok := c.Get(flashContextKey); ok {
		if f, ok := v.([]Flash); ok {
			return f
		}
	}
	return nil
}
