package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"graze/internal/resource"
	"graze/internal/store"
)

// Handlers serves every resource through one descriptor-driven pair of
// handler funcs, so the validate/store/serialize state machine exists once.
type Handlers struct {
	store store.Store
}

func NewHandlers(s store.Store) *Handlers {
	return &Handlers{store: s}
}

// Register wires both routes for every resource onto the mux.
func (h *Handlers) Register(mux *http.ServeMux, resources []resource.Descriptor) {
	for _, d := range resources {
		mux.HandleFunc("/api/"+d.Path, h.Collection(d))
		mux.HandleFunc("/api/"+d.Path+"/", h.Item(d))
	}
}

// Collection handles list and create.
func (h *Handlers) Collection(d resource.Descriptor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			records, err := h.store.ListAll(d)
			if err != nil {
				h.serverError(w, d, err)
				return
			}
			writeJSON(w, http.StatusOK, serializeAll(d, records))

		case http.MethodPost:
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				WriteError(w, http.StatusBadRequest, "Invalid request body")
				return
			}

			fields := d.CreateFields(body)
			if missing := d.Validate(fields); missing != "" {
				WriteError(w, http.StatusBadRequest, fmt.Sprintf("Missing '%s' in request body", missing))
				return
			}

			created, err := h.store.Insert(d, fields)
			if err != nil {
				h.serverError(w, d, err)
				return
			}

			w.Header().Set("Location", fmt.Sprintf("/api/%s/%d", d.Path, created["id"]))
			writeJSON(w, http.StatusCreated, serialize(d, created))

		default:
			WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}

// Item handles fetch, partial update and delete by id. All three share the
// same existence precondition: an id with no matching record is a 404 before
// anything else is attempted.
func (h *Handlers) Item(d resource.Descriptor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/api/"+d.Path+"/"), 10, 64)
		if err != nil {
			// A malformed id cannot name an existing record.
			WriteError(w, http.StatusNotFound, d.NotFoundMessage())
			return
		}

		rec, err := h.store.GetByID(d, id)
		if err != nil {
			h.serverError(w, d, err)
			return
		}
		if rec == nil {
			WriteError(w, http.StatusNotFound, d.NotFoundMessage())
			return
		}

		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, serialize(d, rec))

		case http.MethodPatch:
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				WriteError(w, http.StatusBadRequest, "Invalid request body")
				return
			}

			fields := d.UpdateFields(body)
			if !d.ValidateUpdate(fields) {
				WriteError(w, http.StatusBadRequest, fmt.Sprintf("Request body must contain '%s'", d.PrimaryUpdatable()))
				return
			}

			affected, err := h.store.Update(d, id, fields)
			if err != nil {
				h.serverError(w, d, err)
				return
			}
			if affected == 0 {
				WriteError(w, http.StatusNotFound, d.NotFoundMessage())
				return
			}
			w.WriteHeader(http.StatusNoContent)

		case http.MethodDelete:
			affected, err := h.store.Delete(d, id)
			if err != nil {
				h.serverError(w, d, err)
				return
			}
			if affected == 0 {
				WriteError(w, http.StatusNotFound, d.NotFoundMessage())
				return
			}
			w.WriteHeader(http.StatusNoContent)

		default:
			WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}

// serverError logs the storage fault and answers with a generic body; the
// driver detail never reaches the caller.
func (h *Handlers) serverError(w http.ResponseWriter, d resource.Descriptor, err error) {
	log.Printf("store error on %s: %v", d.Table, err)
	WriteError(w, http.StatusInternalServerError, "server error")
}
