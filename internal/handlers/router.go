package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/nkiryanov/sat/internal/handlers/middleware"
	"github.com/nkiryanov/sat/internal/logger"
	"github.com/nkiryanov/sat/internal/token"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

func NewRouter(tokenService tokenService, logger logger.Logger) http.Handler {
	apitoken := http.NewServeMux()

	apitoken.Handle("POST /encode", handleEncode(tokenService, logger))
	apitoken.Handle("POST /decode", handleDecode(tokenService, logger))
	apitoken.Handle("POST /verify", handleVerify(tokenService))
	apitoken.Handle("POST /validate", handleValidate(tokenService))
	apitoken.Handle("POST /refresh", handleRefresh(tokenService, logger))
	apitoken.Handle("POST /inspect", handleInspect(tokenService, logger))

	root := http.NewServeMux()
	root.Handle("/api/token/", http.StripPrefix("/api/token", apitoken))

	handler := chain(root,
		middleware.RequestIDMiddleware(),
		middleware.LoggerMiddleware(logger),
	)

	return handler
}

type tokenService interface {
	// Issue new token with the payload
	Issue(payload json.RawMessage, w token.Windows) (string, error)

	// Return payload of a signed and not expired token
	// Has to return apperrors.ErrInvalidSignature or apperrors.ErrExpiredToken otherwise
	Decode(tok string) (json.RawMessage, error)

	// Report whether the token is signed by the service
	Verify(tok string) bool

	// Report whether the token is not expired. Signature is not checked
	Validate(tok string) bool

	// Issue new token with the payload of the given one
	// Has to return apperrors.ErrInvalidSignature or apperrors.ErrTokenNotRefreshable on failure
	Refresh(tok string, w token.Windows) (string, error)

	// Return claims and state of a signed token
	Inspect(tok string) (token.Status, error)
}
