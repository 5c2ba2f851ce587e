package middlewares

import (
	"context"
	"net/http"
	"strings"

	"claimbridge-service/internal/pkg/constvars"
	"claimbridge-service/internal/pkg/exceptions"
	"claimbridge-service/internal/pkg/utils"

	"github.com/goccy/go-json"
)

// Authenticate resolves the bearer token to a clinic session. The JWT only
// carries the session id; the clinic id lives in redis so a logout
// invalidates the token immediately.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" || !strings.HasPrefix(authHeader, constvars.AuthorizationBearerPrefix) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}
		tokenString := strings.TrimPrefix(authHeader, constvars.AuthorizationBearerPrefix)

		sessionID, err := utils.ParseJWT(tokenString, m.InternalConfig.JWT.Secret)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		stored, err := m.RedisRepository.Get(r.Context(), constvars.RedisKeyClinicSession+sessionID)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}
		if stored == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(nil))
			return
		}

		// session values are stored JSON-marshaled
		var clinicID string
		if err := json.Unmarshal([]byte(stored), &clinicID); err != nil || clinicID == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_SESSION_ID_KEY, sessionID)
		ctx = context.WithValue(ctx, constvars.CONTEXT_CLINIC_ID_KEY, clinicID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
