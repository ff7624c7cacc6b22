package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/bmic/internal/common"
	"github.com/dmitrijs2005/bmic/internal/content"
	"github.com/gorilla/mux"
)

const maxBodySize = 64 << 10

type registerRequest struct {
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

type presignRequest struct {
	ContentType string `json:"content_type"`
	Ext         string `json:"ext,omitempty"`
}

type avatarRequest struct {
	Avatar string `json:"avatar"`
}

func (s *HTTPServer) ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = io.WriteString(w, "OK")
	}
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	p, err := s.accounts.Login(r.Context())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeJSONError(w, http.StatusNotFound, "no canonical account")
			return
		}
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, p)
}

func (s *HTTPServer) registerAccount(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !s.decode(w, r, &req) {
		return
	}

	a, created, err := s.accounts.Register(r.Context(), req.Email, req.Avatar)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		s.logger.Info(r.Context(), "account created", "id", a.ID)
	}
	writeJSON(w, status, a)
}

func (s *HTTPServer) listAccounts(w http.ResponseWriter, r *http.Request) {
	all, err := s.accounts.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, all)
}

func (s *HTTPServer) currentAccount(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, accountFromContext(r.Context()))
}

func (s *HTTPServer) updateAvatar(w http.ResponseWriter, r *http.Request) {
	var req avatarRequest
	if !s.decode(w, r, &req) {
		return
	}

	a := accountFromContext(r.Context())
	if err := s.accounts.SetAvatar(r.Context(), a.ID, req.Avatar); err != nil {
		s.writeError(w, r, err)
		return
	}

	a.Avatar = req.Avatar
	writeJSON(w, http.StatusOK, a)
}

func (s *HTTPServer) presignAvatar(w http.ResponseWriter, r *http.Request) {
	var req presignRequest
	if !s.decode(w, r, &req) {
		return
	}

	p, err := s.avatars.Presign(r.Context(), req.ContentType, req.Ext)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *HTTPServer) contentSection(w http.ResponseWriter, r *http.Request) {
	var body any

	switch mux.Vars(r)["section"] {
	case "tokenomics":
		body = content.Tokenomics()
	case "roadmap":
		body = content.Roadmap()
	case "problems":
		body = content.Problems()
	case "solutions":
		body = content.Solutions()
	case "benefits":
		body = content.Benefits()
	case "investment":
		body = content.Investment()
	case "info":
		body = content.Info()
	default:
		writeJSONError(w, http.StatusNotFound, "unknown section")
		return
	}

	writeJSON(w, http.StatusOK, body)
}

// decode reads a JSON body into dst, answering 400 itself on failure.
func (s *HTTPServer) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(dst); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		writeJSONError(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrorValidation):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		writeJSONError(w, http.StatusConflict, "already exists")
	case errors.Is(err, common.ErrTokenExpired):
		writeJSONError(w, http.StatusUnauthorized, "token expired")
	case errors.Is(err, common.ErrInvalidToken):
		writeJSONError(w, http.StatusUnauthorized, "invalid token")
	default:
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
