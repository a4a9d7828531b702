package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pyrx/pyrx-cli/pkg/composer"
	"github.com/pyrx/pyrx-cli/pkg/export"
	"github.com/pyrx/pyrx-cli/pkg/files"
	"github.com/pyrx/pyrx-cli/pkg/layout"
	"github.com/pyrx/pyrx-cli/pkg/models"
)

const maxBodyBytes = 16 << 20

type nameRequest struct {
	Name string `json:"name"`
}

type createElementRequest struct {
	Type      string              `json:"type"`
	Container models.ContainerRef `json:"container"`
	models.ElementFields
}

// editElementRequest is decoded over the element's current fields, so keys
// missing from the body keep their values
type editElementRequest struct {
	Type    string `json:"type"`
	Confirm bool   `json:"confirm"`
	models.ElementFields
}

type moveRequest struct {
	Container models.ContainerRef `json:"container"`
	Index     *int                `json:"index"`
}

// MutationResponse is returned by every successful change. ID names the
// entity a create call made.
type MutationResponse struct {
	ID string `json:"id,omitempty"`
	Snapshot
}

// PreviewResponse is the body of GET /api/preview
type PreviewResponse struct {
	Tree    string `json:"tree"`
	Folders int    `json:"folders"`
	Files   int    `json:"files"`
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return data, nil
}

// decodeBody decodes a JSON body into v. An empty body leaves v untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	data, err := readBody(w, r)
	if err != nil {
		return err
	}
	return decodeJSON(data, v)
}

func decodeJSON(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

// confirmed reads the confirm query parameter
func confirmed(r *http.Request) bool {
	ok, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	return ok
}

// apply runs fn as one session update and writes the resulting snapshot
func (s *Server) apply(w http.ResponseWriter, r *http.Request, status int, fn func(*layout.Store) (string, error)) {
	var id string
	snap, err := s.session.Update(func(st *layout.Store) error {
		var err error
		id, err = fn(st)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, status, MutationResponse{ID: id, Snapshot: snap})
}

// staged runs a multi-step change on a copy and commits it only when every
// step succeeds
func staged(st *layout.Store, fn func(*layout.Store) (string, error)) (string, error) {
	c := st.Clone()
	id, err := fn(c)
	if err != nil {
		return "", err
	}
	st.ReplaceAll(c)
	return id, nil
}

func (s *Server) getLayout(w http.ResponseWriter, r *http.Request) {
	var data []byte
	err := s.session.View(func(st *layout.Store) error {
		var err error
		data, err = files.EncodeDocument(st.Document())
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) putLayout(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	store, err := files.ParseLayout(data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	for _, repair := range store.Repairs() {
		s.logger.Warn("layout repaired on load", "change", repair)
	}
	name := store.ExtensionName()
	snap := s.session.Replace(store)
	s.logger.Info("layout replaced", "extension", name)
	writeJSON(w, http.StatusOK, MutationResponse{Snapshot: snap})
}

func (s *Server) renameExtension(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ExtensionName string `json:"extensionName"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.apply(w, r, http.StatusOK, func(st *layout.Store) (string, error) {
		return "", st.SetExtensionName(req.ExtensionName)
	})
}

func (s *Server) getPreview(w http.ResponseWriter, r *http.Request) {
	root, err := s.session.Compose()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	folders, fileCount := composer.CountNodes(root)
	writeJSON(w, http.StatusOK, PreviewResponse{
		Tree:    composer.FormatTree(root),
		Folders: folders,
		Files:   fileCount,
	})
}

func (s *Server) getExport(w http.ResponseWriter, r *http.Request) {
	root, err := s.session.Compose()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	summary, err := s.exporter.Export(r.Context(), &buf, root)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("export downloaded", "root", root.Name, "files", summary.Files, "bytes", summary.Bytes)

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.ArchiveName(root)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())
}

func (s *Server) createTab(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.apply(w, r, http.StatusCreated, func(st *layout.Store) (string, error) {
		return staged(st, func(c *layout.Store) (string, error) {
			id := c.CreateTab()
			return id, renameIfSet(c, layout.KindTab, id, req.Name)
		})
	})
}

func (s *Server) renameTab(w http.ResponseWriter, r *http.Request) {
	s.rename(w, r, layout.KindTab)
}

func (s *Server) deleteTab(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.apply(w, r, http.StatusOK, func(st *layout.Store) (string, error) {
		return "", st.DeleteTab(id, confirmed(r))
	})
}

func (s *Server) activateTab(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.apply(w, r, http.StatusOK, func(st *layout.Store) (string, error) {
		return "", st.SetActiveTab(id)
	})
}

func (s *Server) createPanel(w http.ResponseWriter, r *http.Request) {
	tabID := chi.URLParam(r, "id")
	var req nameRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.apply(w, r, http.StatusCreated, func(st *layout.Store) (string, error) {
		return staged(st, func(c *layout.Store) (string, error) {
			id, err := c.CreatePanel(tabID)
			if err != nil {
				return "", err
			}
			return id, renameIfSet(c, layout.KindPanel, id, req.Name)
		})
	})
}

func (s *Server) renamePanel(w http.ResponseWriter, r *http.Request) {
	s.rename(w, r, layout.KindPanel)
}

func (s *Server) deletePanel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.apply(w, r, http.StatusOK, func(st *layout.Store) (string, error) {
		return "", st.DeletePanel(id, confirmed(r))
	})
}

func (s *Server) createStack(w http.ResponseWriter, r *http.Request) {
	panelID := chi.URLParam(r, "id")
	var req nameRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.apply(w, r, http.StatusCreated, func(st *layout.Store) (string, error) {
		return staged(st, func(c *layout.Store) (string, error) {
			id, err := c.CreateStack(panelID)
			if err != nil {
				return "", err
			}
			return id, renameIfSet(c, layout.KindElement, id, req.Name)
		})
	})
}

func (s *Server) createElement(w http.ResponseWriter, r *http.Request) {
	var req createElementRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	t, err := models.ParseElementType(req.Type)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	s.apply(w, r, http.StatusCreated, func(st *layout.Store) (string, error) {
		return st.CreateElement(t, req.Container, req.ElementFields)
	})
}

func (s *Server) editElement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	body, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.apply(w, r, http.StatusOK, func(st *layout.Store) (string, error) {
		current, err := st.Element(id)
		if err != nil {
			return "", err
		}
		req := editElementRequest{ElementFields: current.Fields()}
		if err := decodeJSON(body, &req); err != nil {
			return "", err
		}
		var newType models.ElementType
		if req.Type != "" {
			if newType, err = models.ParseElementType(req.Type); err != nil {
				return "", fmt.Errorf("%w: %v", errBadRequest, err)
			}
		}
		return "", st.EditElement(id, req.ElementFields, newType, req.Confirm || confirmed(r))
	})
}

func (s *Server) deleteElement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.apply(w, r, http.StatusOK, func(st *layout.Store) (string, error) {
		return "", st.DeleteElement(id, confirmed(r))
	})
}

func (s *Server) moveElement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req moveRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	index := -1
	if req.Index != nil {
		index = *req.Index
	}
	s.apply(w, r, http.StatusOK, func(st *layout.Store) (string, error) {
		return "", st.MoveElement(id, req.Container, index)
	})
}

func (s *Server) rename(w http.ResponseWriter, r *http.Request, kind layout.EntityKind) {
	id := chi.URLParam(r, "id")
	var req nameRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.apply(w, r, http.StatusOK, func(st *layout.Store) (string, error) {
		return "", st.Rename(kind, id, req.Name)
	})
}

func renameIfSet(st *layout.Store, kind layout.EntityKind, id, name string) error {
	if name == "" {
		return nil
	}
	return st.Rename(kind, id, name)
}
