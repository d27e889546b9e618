// Package admin is the non-wire administrative HTTP surface of
// spec.md §6.3, routed with gorilla/mux in the style of the teacher's
// ControlServer/HandleControlHTTP (daemon/control/server.go).
package admin

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/op/go-logging"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fillwire.dev/fillwire/internal/version"
	"fillwire.dev/fillwire/registry"
)

var log = logging.MustGetLogger("admin")

// Server routes the administrative API against reg.
type Server struct {
	reg    registry.Registry
	router *mux.Router
}

// tagDTO is the wire-visible-on-HTTP (but not wire-visible-on-TCP, per
// spec.md §6.3) JSON representation of a Tag.
type tagDTO struct {
	ID     uint16 `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Access string `json:"access"`
	Value  string `json:"value,omitempty"`
}

// New builds a Server routed against reg.
func New(reg registry.Registry) *Server {
	s := &Server{reg: reg, router: mux.NewRouter()}
	s.router.HandleFunc("/version", s.handleVersion).Methods(http.MethodGet)
	s.router.HandleFunc("/tags", s.handleListTags).Methods(http.MethodGet)
	s.router.HandleFunc("/tags", s.handleInsertTag).Methods(http.MethodPost)
	s.router.HandleFunc("/tags/{id}", s.handleGetTag).Methods(http.MethodGet)
	s.router.HandleFunc("/tags/{id}/value", s.handleUpdateValue).Methods(http.MethodPut)
	s.router.HandleFunc("/tags/{id}", s.handleRemoveTag).Methods(http.MethodDelete)
	s.router.HandleFunc("/clients/count", s.handleClientCount).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.Handler())
	return s
}

// ListenAndServe blocks serving the admin API on addr.
func (s *Server) ListenAndServe(addr string) error {
	log.Infof("admin API listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(version.Current.String()))
}

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	tags := s.reg.List()
	dtos := make([]tagDTO, 0, len(tags))
	for _, t := range tags {
		dtos = append(dtos, toDTO(t))
	}
	writeJSON(w, dtos)
}

func (s *Server) handleGetTag(w http.ResponseWriter, r *http.Request) {
	id, err := tagIDFromPath(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	tag, err := s.reg.Get(id)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, toDTO(tag))
}

func (s *Server) handleInsertTag(w http.ResponseWriter, r *http.Request) {
	var dto tagDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	tag, err := fromDTO(dto)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(err.Error()))
		return
	}
	if err := s.reg.Insert(tag); err != nil {
		log.Error("insert tag: " + err.Error())
		w.WriteHeader(http.StatusInsufficientStorage)
		w.Write([]byte(err.Error()))
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleUpdateValue(w http.ResponseWriter, r *http.Request) {
	id, err := tagIDFromPath(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	tag, err := s.reg.Get(id)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	var dto tagDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	value, err := valueFromDTOString(tag.Type, dto.Value)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(err.Error()))
		return
	}
	if err := s.reg.SetValue(id, value); err != nil {
		log.Error("update value: " + err.Error())
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(err.Error()))
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleRemoveTag(w http.ResponseWriter, r *http.Request) {
	id, err := tagIDFromPath(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	s.reg.Remove(id)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleClientCount(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]int{"count": s.reg.ClientCount()})
}

func tagIDFromPath(r *http.Request) (uint16, error) {
	n, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 16)
	return uint16(n), err
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("encode response: " + err.Error())
	}
}
