package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/smartview/pkg/draw"
	"github.com/matzehuels/smartview/pkg/errors"
	"github.com/matzehuels/smartview/pkg/newick"
	"github.com/matzehuels/smartview/pkg/store"
)

type treeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Newick      string `json:"newick"`
}

type drawerResponse struct {
	Name   string   `json:"name"`
	Inline []string `json:"inline"`
	Float  []string `json:"float"`
	Align  []string `json:"align"`
}

func toDrawerResponse(d draw.Drawer) drawerResponse {
	return drawerResponse{
		Name:   d.Name,
		Inline: nonNil(d.Inline.Names()),
		Float:  nonNil(d.Float.Names()),
		Align:  nonNil(d.Align.Names()),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func (s *Server) listDrawers(w http.ResponseWriter, r *http.Request) {
	drawers := draw.Drawers()
	out := make([]drawerResponse, 0, len(drawers))
	for _, d := range drawers {
		out = append(out, toDrawerResponse(d))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getDrawer(w http.ResponseWriter, r *http.Request) {
	d, err := draw.Lookup(chi.URLParam(r, "name"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: errors.UserMessage(err), Code: errors.GetCode(err)})
		return
	}
	writeJSON(w, http.StatusOK, toDrawerResponse(d))
}

func (s *Server) listTrees(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if recs == nil {
		recs = []store.Record{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func decodeTree(w http.ResponseWriter, r *http.Request) (*store.Record, error) {
	var req treeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	if _, err := newick.Read(req.Newick); err != nil {
		return nil, err
	}
	return &store.Record{Name: req.Name, Description: req.Description, Newick: req.Newick}, nil
}

func (s *Server) createTree(w http.ResponseWriter, r *http.Request) {
	rec, err := decodeTree(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Create(r.Context(), rec); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("stored tree", "id", rec.ID, "name", rec.Name)
	w.Header().Set("Location", "/trees/"+rec.ID)
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) getTree(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) updateTree(w http.ResponseWriter, r *http.Request) {
	rec, err := decodeTree(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rec.ID = chi.URLParam(r, "id")
	if err := s.store.Update(r.Context(), rec); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.trees.forget(rec.ID)

	// Update keeps CreatedAt; read it back for the response.
	if updated, err := s.store.Get(r.Context(), rec.ID); err == nil {
		rec = updated
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) deleteTree(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.trees.forget(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) treeID(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.GetByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": rec.ID})
}
