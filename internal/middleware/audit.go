package middleware

import (
	"net/http"
	"sort"
	"strings"

	"github.com/consultoria/portal/pkg/logger"
	"github.com/gin-gonic/gin"
)

var sensitiveFields = []string{"password", "secret", "token"}

// AuditLog records write operations (POST) with the acting user and the
// submitted form, sensitive values masked.
func AuditLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		c.Next()

		status := c.Writer.Status()
		event := logger.Info()
		if status >= http.StatusInternalServerError {
			event = logger.Error()
		}

		if user := GetUser(c); user != nil {
			event = event.Uint("user_id", user.ID).Str("email", user.Email)
		}

		event.
			Bool("audit", true).
			Str("request_id", c.GetString(logger.RequestIDKey)).
			Str("action", auditAction(c.FullPath())).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Str("ip", c.ClientIP()).
			Str("form", maskForm(c.Request.PostForm)).
			Msg("audit")
	}
}

// auditAction turns a route like "/create_project" into "create_project".
func auditAction(fullPath string) string {
	action := strings.Trim(fullPath, "/")
	if action == "" {
		return "unknown"
	}
	return action
}

// maskForm renders a form as "k=v&k=v" with sensitive values replaced by ***.
func maskForm(form map[string][]string) string {
	if len(form) == 0 {
		return ""
	}

	keys := make([]string, 0, len(form))
	for k := range form {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		if isSensitive(k) {
			b.WriteString("***")
			continue
		}
		b.WriteString(strings.Join(form[k], ","))
	}
	return b.String()
}

func isSensitive(key string) bool {
	lower := strings.ToLower(key)
	for _, s := range sensitiveFields {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}
