package api

import (
	"errors"
	"net/http"
	"time"

	handlers "fleet/src/api/handlers"
	"fleet/src/utils"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth"
	"github.com/sirupsen/logrus"
)

// RequestLogger puts logger in the request context and logs every request
// once it has been served.
func RequestLogger(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(utils.WithLogger(r.Context(), logger)))

			entry := logger.WithFields(logrus.Fields{
				"request_id": middleware.GetReqID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"bytes":      ww.BytesWritten(),
				"duration":   time.Since(start).String(),
			})
			switch {
			case ww.Status() >= http.StatusInternalServerError:
				entry.Error("request failed")
			case ww.Status() >= http.StatusBadRequest:
				entry.Warn("request rejected")
			default:
				entry.Info("request served")
			}
		})
	}
}

// Authenticator runs after jwtauth.Verifier. A request without a token gets
// 401, a token that does not verify gets 403, and a valid token puts the
// caller in the context.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if errors.Is(err, jwtauth.ErrNoTokenFound) {
			utils.WriteError(w, utils.Unauthorized("missing token"))
			return
		}
		if err != nil || token == nil {
			utils.WriteError(w, utils.Forbidden("invalid token"))
			return
		}

		user := handlers.AuthUser{
			ID:       claimString(claims, "user_id"),
			Username: claimString(claims, "username"),
			Role:     claimString(claims, "role"),
		}
		if user.ID == "" {
			utils.WriteError(w, utils.Forbidden("invalid token"))
			return
		}
		next.ServeHTTP(w, r.WithContext(handlers.WithUser(r.Context(), user)))
	})
}

func claimString(claims map[string]interface{}, key string) string {
	s, _ := claims[key].(string)
	return s
}
