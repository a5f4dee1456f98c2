package stub

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/mergington-hs/activities-client/internal/model"
)

// Handler serves the activities contract from a Store.
type Handler struct {
	store  *Store
	logger *log.Logger
}

// NewHandler constructs a Handler. A nil logger falls back to
// log.Default().
func NewHandler(store *Store, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{store: store, logger: logger}
}

// Routes returns a chi router exposing the contract:
//
//	GET  /activities
//	POST /activities/{name}/signup?email=...
//	POST /activities/{name}/unregister?email=...
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/activities", h.listActivities)
	r.Post("/activities/{name}/signup", h.signup)
	r.Post("/activities/{name}/unregister", h.unregister)
	return r
}

// ─── Helper utilities ────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, model.DetailResponse{Detail: detail})
}

// activityName recovers the literal activity name from the path segment.
// chi matches on the escaped path when one exists, so names containing
// reserved characters arrive percent-encoded.
func activityName(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

// ─── Handlers ────────────────────────────────────────────────────────────

func (h *Handler) listActivities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Snapshot())
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	name := activityName(r)
	email := r.URL.Query().Get("email")
	if email == "" {
		writeDetail(w, http.StatusBadRequest, "Email is required")
		return
	}

	if err := h.store.Signup(name, email); err != nil {
		h.logger.Printf("signup %q %s: %v", name, email, err)
		switch {
		case errors.Is(err, ErrNotFound):
			writeDetail(w, http.StatusNotFound, "Activity not found")
		case errors.Is(err, ErrAlreadySignedUp):
			writeDetail(w, http.StatusBadRequest, "Student is already signed up")
		case errors.Is(err, ErrActivityFull):
			writeDetail(w, http.StatusBadRequest, "Activity is full")
		default:
			writeDetail(w, http.StatusInternalServerError, "Internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{
		Message: "Signed up " + email + " for " + name,
	})
}

func (h *Handler) unregister(w http.ResponseWriter, r *http.Request) {
	name := activityName(r)
	email := r.URL.Query().Get("email")
	if email == "" {
		writeDetail(w, http.StatusBadRequest, "Email is required")
		return
	}

	if err := h.store.Unregister(name, email); err != nil {
		h.logger.Printf("unregister %q %s: %v", name, email, err)
		switch {
		case errors.Is(err, ErrNotFound):
			writeDetail(w, http.StatusNotFound, "Activity not found")
		case errors.Is(err, ErrNotSignedUp):
			writeDetail(w, http.StatusBadRequest, "Student is not signed up for this activity")
		default:
			writeDetail(w, http.StatusInternalServerError, "Internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{
		Message: "Unregistered " + email + " from " + name,
	})
}
