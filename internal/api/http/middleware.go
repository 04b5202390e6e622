package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/grievance-hub/grievance-hub/internal/domain/complaint"
)

type contextKey string

const principalKey contextKey = "principal"

// requirePrincipal resolves the caller's principal from the X-Principal
// header. Whether that principal may act is the registry's decision.
func (s *Server) requirePrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := strings.TrimSpace(r.Header.Get("X-Principal"))
		if p == "" {
			respondError(w, http.StatusUnauthorized, "MISSING_PRINCIPAL", "X-Principal header is required")
			return
		}
		ctx := context.WithValue(r.Context(), principalKey, complaint.Principal(p))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdminSecret verifies the administrator shared secret before admin
// endpoints run. The registry still checks that the principal is the
// current administrator.
func (s *Server) requireAdminSecret(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.dir.VerifyAdminSecret(r.Header.Get("X-Admin-Secret")) {
			respondError(w, http.StatusForbidden, "FORBIDDEN", "invalid admin secret")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func principalFromContext(ctx context.Context) complaint.Principal {
	p, _ := ctx.Value(principalKey).(complaint.Principal)
	return p
}
