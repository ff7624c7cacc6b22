package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Router wires every route. Account reads and avatar updates need a bearer
// token issued by the login endpoint.
func (s *HTTPServer) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/ping", s.ping).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/bmic-login.json", s.login).Methods(http.MethodGet)

	r.HandleFunc("/accounts", s.registerAccount).Methods(http.MethodPost)
	r.Handle("/accounts", s.requireToken(http.HandlerFunc(s.listAccounts))).Methods(http.MethodGet)
	r.Handle("/accounts/me", s.requireToken(http.HandlerFunc(s.currentAccount))).Methods(http.MethodGet)
	r.Handle("/accounts/me/avatar", s.requireToken(http.HandlerFunc(s.updateAvatar))).Methods(http.MethodPut)

	r.HandleFunc("/avatars", s.presignAvatar).Methods(http.MethodPost)

	r.HandleFunc("/content/{section}", s.contentSection).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSONError(w, http.StatusNotFound, "not found")
	})

	return r
}
