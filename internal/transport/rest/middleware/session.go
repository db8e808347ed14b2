package middleware

import (
	"context"
	"net/http"
	"strings"
	"winugly/internal/service"

	"go.uber.org/zap"
)

type contextKey string

const SessionIDKey contextKey = "sessionId"

// SessionHeader carries a freshly issued token back to API clients
const SessionHeader = "X-Session-Token"

// SessionMiddleware resolves the caller's coaching session. A caller without a
// valid token gets a new session.
type SessionMiddleware struct {
	sessionSvc *service.SessionService
	cookieName string
	logger     *zap.Logger
}

// NewSessionMiddleware creates a new session middleware
func NewSessionMiddleware(sessionSvc *service.SessionService, cookieName string, logger *zap.Logger) *SessionMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionMiddleware{
		sessionSvc: sessionSvc,
		cookieName: cookieName,
		logger:     logger,
	}
}

// Attach reads the session from the Authorization header or the session cookie
func (m *SessionMiddleware) Attach(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			if c, err := r.Cookie(m.cookieName); err == nil {
				token = c.Value
			}
		}

		if token != "" {
			if claims, err := m.sessionSvc.Validate(token); err == nil {
				next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), claims.SessionID)))
				return
			}
		}

		issued, err := m.sessionSvc.Issue()
		if err != nil {
			m.logger.Error("failed to issue session", zap.Error(err))
			http.Error(w, `{"error":"failed to issue session"}`, http.StatusInternalServerError)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     m.cookieName,
			Value:    issued.Token,
			Path:     "/",
			MaxAge:   int(m.sessionSvc.TTL().Seconds()),
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
		})
		w.Header().Set(SessionHeader, issued.Token)

		next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), issued.SessionID)))
	})
}

// WithSessionID stores a session ID in the context
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionIDKey, sessionID)
}

// GetSessionID extracts session ID from context
func GetSessionID(ctx context.Context) string {
	if v := ctx.Value(SessionIDKey); v != nil {
		return v.(string)
	}
	return ""
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
