package auth

import (
	"errors"
	"strings"

	"produce-kart/internal/model"

	"google.golang.org/api/googleapi"
)

// Sign-in failures shown to the admin on the login form.
var (
	ErrInvalidEmail    = model.NewDomainError(model.ErrCodeInvalidCredentials, "Invalid email address")
	ErrUserDisabled    = model.NewDomainError(model.ErrCodeInvalidCredentials, "This account has been disabled")
	ErrUserNotFound    = model.NewDomainError(model.ErrCodeInvalidCredentials, "No account found with this email")
	ErrWrongPassword   = model.NewDomainError(model.ErrCodeInvalidCredentials, "Incorrect password")
	ErrTooManyAttempts = model.NewDomainError(model.ErrCodeInvalidCredentials, "Too many failed attempts. Please try again later")
	ErrSignInFailed    = model.NewDomainError(model.ErrCodeInvalidCredentials, "Failed to sign in. Please try again")
)

// identityErrors maps identity toolkit error codes to sign-in failures.
var identityErrors = map[string]*model.DomainError{
	"INVALID_EMAIL":               ErrInvalidEmail,
	"USER_DISABLED":               ErrUserDisabled,
	"EMAIL_NOT_FOUND":             ErrUserNotFound,
	"INVALID_PASSWORD":            ErrWrongPassword,
	"TOO_MANY_ATTEMPTS_TRY_LATER": ErrTooManyAttempts,
}

// mapIdentityError converts an identity toolkit API error into one of the
// sign-in failures. Messages look like "CODE" or "CODE : detail".
func mapIdentityError(err error) *model.DomainError {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return ErrSignInFailed
	}
	code, _, _ := strings.Cut(apiErr.Message, " ")
	if mapped, ok := identityErrors[code]; ok {
		return mapped
	}
	return ErrSignInFailed
}
