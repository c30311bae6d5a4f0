package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/nkiryanov/sat/internal/apperrors"
	"github.com/nkiryanov/sat/internal/handlers/render"
	"github.com/nkiryanov/sat/internal/logger"
	"github.com/nkiryanov/sat/internal/token"
)

// Windows in seconds as clients send them; missing field means the service default
func windows(expiry *int64, refreshWindow *int64) token.Windows {
	var w token.Windows
	if expiry != nil {
		w = w.WithExpiry(time.Duration(*expiry) * time.Second)
	}
	if refreshWindow != nil {
		w = w.WithRefreshWindow(time.Duration(*refreshWindow) * time.Second)
	}
	return w
}

// Render token service error with matching status code
func tokenError(w http.ResponseWriter, l logger.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidSignature):
		render.ServiceError(w, "Token signature is invalid", http.StatusUnauthorized)
	case errors.Is(err, apperrors.ErrExpiredToken):
		render.ServiceError(w, "Token is expired", http.StatusUnauthorized)
	case errors.Is(err, apperrors.ErrTokenNotRefreshable):
		render.ServiceError(w, "Token can't be refreshed", http.StatusUnauthorized)
	case errors.Is(err, apperrors.ErrMalformedToken):
		render.ServiceError(w, "Token is malformed", http.StatusBadRequest)
	default:
		l.Error("Token service failed", "error", err)
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
	}
}

type tokenResponse struct {
	Token string `json:"token"`
}

type validResponse struct {
	Valid bool `json:"valid"`
}

func handleEncode(tokenService tokenService, l logger.Logger) http.Handler {
	type request struct {
		Payload       json.RawMessage `json:"payload" validate:"required"`
		Expiry        *int64          `json:"expiry" validate:"omitnil,gte=0"`
		RefreshWindow *int64          `json:"refresh_window" validate:"omitnil,gte=0"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		tok, err := tokenService.Issue(data.Payload, windows(data.Expiry, data.RefreshWindow))
		if err != nil {
			tokenError(w, l, err)
			return
		}

		render.JSON(w, tokenResponse{Token: tok})
	})
}

func handleDecode(tokenService tokenService, l logger.Logger) http.Handler {
	type request struct {
		Token string `json:"token" validate:"required,token"`
	}
	type response struct {
		Payload json.RawMessage `json:"payload"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		payload, err := tokenService.Decode(data.Token)
		if err != nil {
			tokenError(w, l, err)
			return
		}

		render.JSON(w, response{Payload: payload})
	})
}

func handleVerify(tokenService tokenService) http.Handler {
	type request struct {
		Token string `json:"token" validate:"required"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		render.JSON(w, validResponse{Valid: tokenService.Verify(data.Token)})
	})
}

// Claims segment alone is accepted as well as the whole token
func handleValidate(tokenService tokenService) http.Handler {
	type request struct {
		Token string `json:"token" validate:"required"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		render.JSON(w, validResponse{Valid: tokenService.Validate(data.Token)})
	})
}

func handleRefresh(tokenService tokenService, l logger.Logger) http.Handler {
	type request struct {
		Token         string `json:"token" validate:"required,token"`
		Expiry        *int64 `json:"expiry" validate:"omitnil,gte=0"`
		RefreshWindow *int64 `json:"refresh_window" validate:"omitnil,gte=0"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		tok, err := tokenService.Refresh(data.Token, windows(data.Expiry, data.RefreshWindow))
		if err != nil {
			tokenError(w, l, err)
			return
		}

		render.JSON(w, tokenResponse{Token: tok})
	})
}

func handleInspect(tokenService tokenService, l logger.Logger) http.Handler {
	type request struct {
		Token string `json:"token" validate:"required,token"`
	}
	type response struct {
		IssuedAt      int64 `json:"iat"`
		ExpiresAt     int64 `json:"exp"`
		RefreshBefore int64 `json:"rbt"`
		Expired       bool  `json:"expired"`
		Refreshable   bool  `json:"refreshable"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		status, err := tokenService.Inspect(data.Token)
		if err != nil {
			tokenError(w, l, err)
			return
		}

		render.JSON(w, response{
			IssuedAt:      status.Claims.IssuedAt,
			ExpiresAt:     status.Claims.ExpiresAt,
			RefreshBefore: status.Claims.RefreshBefore,
			Expired:       status.Expired,
			Refreshable:   status.Refreshable,
		})
	})
}
