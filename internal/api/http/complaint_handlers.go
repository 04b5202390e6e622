package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/grievance-hub/grievance-hub/internal/domain/complaint"
	"github.com/grievance-hub/grievance-hub/internal/registry"
)

type submitRequest struct {
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	Attachments     []string `json:"attachments"`
	InvolvedParties []string `json:"involvedParties"`
}

func (s *Server) submitComplaint(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	parties := make([]complaint.Principal, len(req.InvolvedParties))
	for i, p := range req.InvolvedParties {
		parties[i] = complaint.Principal(p)
	}
	id, err := s.svc.Submit(r.Context(), principalFromContext(r.Context()), req.Description, req.Category, req.Attachments, parties)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondOK(w, map[string]any{"id": id})
}

type updateRequest struct {
	Description    *string  `json:"description"`
	Status         *string  `json:"status"`
	AddAttachments []string `json:"addAttachments"`
	AddParties     []string `json:"addParties"`
}

func (s *Server) updateComplaint(w http.ResponseWriter, r *http.Request) {
	id, err := complaintIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "complaint id must be an integer")
		return
	}
	var req updateRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	in := registry.UpdateInput{
		Description:    req.Description,
		AddAttachments: req.AddAttachments,
	}
	if req.Status != nil {
		st := complaint.Status(*req.Status)
		in.Status = &st
	}
	for _, p := range req.AddParties {
		in.AddParties = append(in.AddParties, complaint.Principal(p))
	}
	if err := s.svc.Update(r.Context(), principalFromContext(r.Context()), id, in); err != nil {
		respondDomainError(w, err)
		return
	}
	respondOK(w, nil)
}

func (s *Server) closeComplaint(w http.ResponseWriter, r *http.Request) {
	id, err := complaintIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "complaint id must be an integer")
		return
	}
	if err := s.svc.Close(r.Context(), principalFromContext(r.Context()), id); err != nil {
		respondDomainError(w, err)
		return
	}
	respondOK(w, nil)
}

func (s *Server) escalateComplaint(w http.ResponseWriter, r *http.Request) {
	id, err := complaintIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "complaint id must be an integer")
		return
	}
	if err := s.svc.Escalate(r.Context(), principalFromContext(r.Context()), id); err != nil {
		respondDomainError(w, err)
		return
	}
	respondOK(w, nil)
}

type proposalRequest struct {
	Proposal string `json:"proposal"`
}

func (s *Server) proposeResolution(w http.ResponseWriter, r *http.Request) {
	id, err := complaintIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "complaint id must be an integer")
		return
	}
	var req proposalRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if err := s.svc.ProposeResolution(r.Context(), principalFromContext(r.Context()), id, req.Proposal); err != nil {
		respondDomainError(w, err)
		return
	}
	respondOK(w, nil)
}

func (s *Server) acceptResolution(w http.ResponseWriter, r *http.Request) {
	id, err := complaintIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "complaint id must be an integer")
		return
	}
	if err := s.svc.AcceptResolution(r.Context(), principalFromContext(r.Context()), id); err != nil {
		respondDomainError(w, err)
		return
	}
	respondOK(w, nil)
}

func (s *Server) getComplaint(w http.ResponseWriter, r *http.Request) {
	id, err := complaintIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "complaint id must be an integer")
		return
	}
	c, ok := s.svc.Get(id)
	if !ok {
		respondDomainError(w, complaint.ErrNotFound)
		return
	}
	respondOK(w, map[string]any{"complaint": c})
}

func (s *Server) getHistory(w http.ResponseWriter, r *http.Request) {
	id, err := complaintIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "complaint id must be an integer")
		return
	}
	entries, ok := s.svc.History(id)
	if !ok {
		entries = []complaint.HistoryEntry{}
	}
	respondOK(w, map[string]any{"history": entries})
}

func (s *Server) getEscalation(w http.ResponseWriter, r *http.Request) {
	id, err := complaintIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "complaint id must be an integer")
		return
	}
	rec, ok := s.svc.Escalation(id)
	if !ok {
		respondOK(w, map[string]any{"escalation": nil})
		return
	}
	respondOK(w, map[string]any{"escalation": rec})
}

func (s *Server) isInvolved(w http.ResponseWriter, r *http.Request) {
	id, err := complaintIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "complaint id must be an integer")
		return
	}
	involved, err := s.svc.IsInvolved(id, complaint.Principal(chi.URLParam(r, "principal")))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondOK(w, map[string]any{"involved": involved})
}

func (s *Server) userComplaints(w http.ResponseWriter, r *http.Request) {
	ids, ok := s.svc.UserComplaints(complaint.Principal(chi.URLParam(r, "principal")))
	if !ok {
		ids = []int64{}
	}
	respondOK(w, map[string]any{"complaints": ids})
}

func (s *Server) categoryStats(w http.ResponseWriter, r *http.Request) {
	st, ok := s.svc.CategoryStats(chi.URLParam(r, "category"))
	if !ok {
		respondOK(w, map[string]any{"stats": nil})
		return
	}
	respondOK(w, map[string]any{"stats": st})
}
