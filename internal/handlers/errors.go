package handlers

import (
	"errors"

	"github.com/consultoria/portal/internal/middleware"
	"github.com/consultoria/portal/internal/services"
	"github.com/consultoria/portal/pkg/logger"
	"github.com/consultoria/portal/pkg/response"
	"github.com/gin-gonic/gin"
)

// Flash messages shown to users.
const (
	MsgInvalidCredentials = "Invalid email or password."
	MsgDuplicateEmail     = "That email address is already registered."
	MsgAccountCreated     = "Account created successfully! You can now log in."
	MsgClientCreated      = "Client created successfully!"
	MsgProjectCreated     = "Project created and assigned successfully!"
	MsgInvalidDate        = "Invalid start date, use the format YYYY-MM-DD."
	MsgClientNotFound     = "The selected client does not exist."
	MsgMissingFields      = "Please fill in all required fields."
	MsgPasswordTooLong    = "Password is too long, use at most 72 bytes."
	MsgLoggedOut          = "You have been logged out."
)

// toAppError maps domain errors to the message and page the user is sent
// back to. Unknown errors are returned unchanged.
func toAppError(redirectTo string, err error) error {
	switch {
	case errors.Is(err, services.ErrDuplicateEmail):
		return response.NewRedirectError(redirectTo, MsgDuplicateEmail)
	case errors.Is(err, services.ErrInvalidCredentials):
		return response.NewRedirectError(redirectTo, MsgInvalidCredentials)
	case errors.Is(err, services.ErrInvalidDate):
		return response.NewRedirectError(redirectTo, MsgInvalidDate)
	case errors.Is(err, services.ErrClientNotFound):
		return response.NewRedirectError(redirectTo, MsgClientNotFound)
	case errors.Is(err, services.ErrPasswordTooLong):
		return response.NewRedirectError(redirectTo, MsgPasswordTooLong)
	case errors.Is(err, services.ErrInvalidInput):
		return response.NewRedirectError(redirectTo, MsgMissingFields)
	case errors.Is(err, services.ErrUnauthorized):
		return response.NewRedirectError("/", middleware.MsgNoAccess)
	}
	return err
}

// fail answers a failed request: expected errors redirect with a flash,
// anything else is logged and becomes a 500.
func fail(c *gin.Context, redirectTo string, err error) {
	mapped := toAppError(redirectTo, err)
	var appErr *response.AppError
	if !errors.As(mapped, &appErr) {
		logger.FromGin(c).Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	}
	response.Error(c, mapped)
}
