package core

import (
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	BridgeErrorInvalidConfig    = "INVALID_CONFIG"
	BridgeErrorNotConfigured    = "NOT_CONFIGURED"
	BridgeErrorConfig           = "CONFIG_ERROR"
	BridgeErrorLaunch           = "LAUNCH_ERROR"
	BridgeErrorStartNew         = "START_NEW_ERROR"
	BridgeErrorNoActivity       = "NO_ACTIVITY"
	BridgeErrorNotAvailable     = "NOT_AVAILABLE"
	BridgeErrorLoginFailed      = "LOGIN_FAILED"
	BridgeErrorRefreshFailed    = "REFRESH_FAILED"
	BridgeErrorRefreshInFlight  = "REFRESH_IN_FLIGHT"
	BridgeErrorNoPendingRefresh = "NO_PENDING_REFRESH"
	BridgeErrorInternal         = "BRIDGE_INTERNAL_ERROR"
)

func bridgeErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureBridgeErrorEnvelope(richErr)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "not configured"), strings.Contains(msg, "configure first"):
		return newBridgeError(err.Error(), goerrors.CategoryConflict, BridgeErrorNotConfigured)
	case strings.Contains(msg, "refresh already in flight"), strings.Contains(msg, "refresh pending"):
		return newBridgeError(err.Error(), goerrors.CategoryConflict, BridgeErrorRefreshInFlight)
	case strings.Contains(msg, "no pending refresh"):
		return newBridgeError(err.Error(), goerrors.CategoryConflict, BridgeErrorNoPendingRefresh)
	case strings.Contains(msg, "no credential sources"):
		return newBridgeError(err.Error(), goerrors.CategoryAuth, BridgeErrorNoActivity)
	case strings.Contains(msg, "host session"), strings.Contains(msg, "not available"):
		return newBridgeError(err.Error(), goerrors.CategoryAuth, BridgeErrorNotAvailable)
	case strings.Contains(msg, "login failed"):
		return newBridgeError(err.Error(), goerrors.CategoryAuth, BridgeErrorLoginFailed)
	case strings.Contains(msg, "refresh"):
		return newBridgeError(err.Error(), goerrors.CategoryAuth, BridgeErrorRefreshFailed)
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"), strings.Contains(msg, "unsupported agent mode"):
		return newBridgeError(err.Error(), goerrors.CategoryBadInput, BridgeErrorInvalidConfig)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureBridgeErrorEnvelope(mapped)
}

func newBridgeError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureBridgeErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func ensureBridgeErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = bridgeHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultBridgeTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultBridgeTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return BridgeErrorInvalidConfig
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return BridgeErrorNotAvailable
	case goerrors.CategoryConflict:
		return BridgeErrorNotConfigured
	case goerrors.CategoryNotFound:
		return BridgeErrorNotConfigured
	case goerrors.CategoryOperation:
		return BridgeErrorLaunch
	default:
		return BridgeErrorInternal
	}
}

func bridgeHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryConflict:
		return http.StatusConflict
	case goerrors.CategoryRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
