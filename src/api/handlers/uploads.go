package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type uploadResponse struct {
	Path string `json:"path"`
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := h.formFile(w, r, "file")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	defer file.Close()

	path, err := h.Uploads.Save(file, header.Filename)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusCreated, "File uploaded", uploadResponse{Path: path})
}

// ServeUpload streams a previously stored file.
func (h *Handler) ServeUpload(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	path, err := h.Uploads.Resolve(name)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	http.ServeFile(w, r, path)
}
