package httpapi

import (
	"net/http"

	"github.com/grievance-hub/grievance-hub/internal/domain/complaint"
)

type feeRequest struct {
	Fee int64 `json:"fee"`
}

func (s *Server) setEscalationFee(w http.ResponseWriter, r *http.Request) {
	var req feeRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if err := s.svc.SetEscalationFee(principalFromContext(r.Context()), req.Fee); err != nil {
		respondDomainError(w, err)
		return
	}
	respondOK(w, nil)
}

type transferRequest struct {
	Administrator string `json:"administrator"`
}

func (s *Server) transferAdministration(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if err := s.svc.TransferAdministration(principalFromContext(r.Context()), complaint.Principal(req.Administrator)); err != nil {
		respondDomainError(w, err)
		return
	}
	respondOK(w, nil)
}

type arbiterRequest struct {
	Arbiter string `json:"arbiter"`
}

func (s *Server) assignArbiter(w http.ResponseWriter, r *http.Request) {
	id, err := complaintIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "complaint id must be an integer")
		return
	}
	var req arbiterRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if err := s.svc.AssignArbiter(r.Context(), principalFromContext(r.Context()), id, complaint.Principal(req.Arbiter)); err != nil {
		respondDomainError(w, err)
		return
	}
	respondOK(w, nil)
}

type participantRequest struct {
	Principal string `json:"principal"`
}

func (s *Server) registerParticipant(w http.ResponseWriter, r *http.Request) {
	var req participantRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if err := s.dir.Register(complaint.Principal(req.Principal)); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PRINCIPAL", err.Error())
		return
	}
	respondOK(w, nil)
}

type creditRequest struct {
	Principal string `json:"principal"`
	Amount    int64  `json:"amount"`
}

func (s *Server) creditFunds(w http.ResponseWriter, r *http.Request) {
	if s.funds == nil {
		respondError(w, http.StatusNotImplemented, "NO_LEDGER", "balance ledger is not enabled")
		return
	}
	var req creditRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if err := s.funds.Credit(complaint.Principal(req.Principal), req.Amount); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_AMOUNT", err.Error())
		return
	}
	respondOK(w, nil)
}
