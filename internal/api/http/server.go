// Package httpapi exposes the grievance service over HTTP. The caller's
// principal arrives in the X-Principal header; admin endpoints additionally
// require the administrator secret. The core never depends on this layer.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/grievance-hub/grievance-hub/internal/application/grievance"
	"github.com/grievance-hub/grievance-hub/internal/domain/complaint"
	"github.com/grievance-hub/grievance-hub/internal/infrastructure/directory"
	"github.com/grievance-hub/grievance-hub/internal/infrastructure/ledger"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	svc    *grievance.Service
	dir    *directory.Directory
	funds  *ledger.Ledger
	logger zerolog.Logger
}

// NewServer constructs the API server. funds may be nil when the binary
// runs with an external payment collaborator.
func NewServer(svc *grievance.Service, dir *directory.Directory, funds *ledger.Ledger, logger zerolog.Logger) *Server {
	return &Server{
		svc:    svc,
		dir:    dir,
		funds:  funds,
		logger: logger.With().Str("component", "http").Logger(),
	}
}

// Router builds the HTTP router.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.health)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/stats", s.registryStats)

		r.Group(func(r chi.Router) {
			r.Use(s.requirePrincipal)

			r.Route("/complaints", func(r chi.Router) {
				r.Post("/", s.submitComplaint)
				r.Get("/{complaintId}", s.getComplaint)
				r.Patch("/{complaintId}", s.updateComplaint)
				r.Post("/{complaintId}/close", s.closeComplaint)
				r.Post("/{complaintId}/escalate", s.escalateComplaint)
				r.Post("/{complaintId}/proposal", s.proposeResolution)
				r.Post("/{complaintId}/proposal/accept", s.acceptResolution)
				r.Get("/{complaintId}/history", s.getHistory)
				r.Get("/{complaintId}/escalation", s.getEscalation)
				r.Get("/{complaintId}/involved/{principal}", s.isInvolved)
			})

			r.Get("/users/{principal}/complaints", s.userComplaints)
			r.Get("/categories/{category}/stats", s.categoryStats)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.requirePrincipal)
			r.Use(s.requireAdminSecret)
			r.Post("/fee", s.setEscalationFee)
			r.Post("/transfer", s.transferAdministration)
			r.Post("/arbiter/{complaintId}", s.assignArbiter)
			r.Post("/participants", s.registerParticipant)
			r.Post("/credits", s.creditFunds)
		})
	})

	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) registryStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.svc.Snapshot())
}

// Helpers

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondOK wraps a payload in the uniform ok-flag result shape.
func respondOK(w http.ResponseWriter, payload map[string]any) {
	body := map[string]any{"ok": true}
	for k, v := range payload {
		body[k] = v
	}
	respondJSON(w, http.StatusOK, body)
}

// respondDomainError maps a domain failure to HTTP, carrying the stable
// integer code alongside the ok flag.
func respondDomainError(w http.ResponseWriter, err error) {
	code := complaint.CodeOf(err)
	respondJSON(w, httpStatusFor(code), map[string]any{
		"ok":      false,
		"code":    int(code),
		"message": err.Error(),
	})
}

func httpStatusFor(code complaint.Code) int {
	switch code {
	case complaint.CodeNotFound:
		return http.StatusNotFound
	case complaint.CodeNotOwner, complaint.CodeUnauthorized:
		return http.StatusForbidden
	case complaint.CodeAlreadyResolved, complaint.CodeEscalationLimitReached, complaint.CodeInvalidStatus:
		return http.StatusConflict
	case complaint.CodeInvalidInput, complaint.CodeInvalidCategory, complaint.CodeCapacityExceeded:
		return http.StatusBadRequest
	case complaint.CodePaymentFailed:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, map[string]any{
		"ok":      false,
		"error":   code,
		"message": message,
	})
}

func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func complaintIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "complaintId"), 10, 64)
}
