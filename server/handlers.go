package server

import (
	"net/http"
	"strconv"

	"musicapp/core/catalog"

	"github.com/gorilla/mux"
)

// CatalogHandler 处理曲库只读 API
type CatalogHandler struct {
	svc *catalog.Service
}

// NewCatalogHandler 创建曲库处理器
func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// ListArtistsHandler GET /api/artists
func (h *CatalogHandler) ListArtistsHandler(w http.ResponseWriter, r *http.Request) {
	artists, err := h.svc.ListArtists(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, artists)
}

// ForYouPlaylistsHandler GET /api/playlists/for-you
func (h *CatalogHandler) ForYouPlaylistsHandler(w http.ResponseWriter, r *http.Request) {
	playlists, err := h.svc.ForYouPlaylists(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, playlists)
}

// GetTrackHandler GET /api/track/{id}
func (h *CatalogHandler) GetTrackHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, catalog.ValidationError(catalog.MsgInvalidTrackID))
		return
	}

	track, err := h.svc.GetTrack(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, track)
}

// PlaylistTracksHandler GET /api/playlist/{id}/tracks
func (h *CatalogHandler) PlaylistTracksHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, catalog.ValidationError(catalog.MsgInvalidPlaylist))
		return
	}

	ids, err := h.svc.PlaylistTrackIDs(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}

// pathID parses the {id} route variable. Only plain decimal digits are accepted.
func pathID(r *http.Request) (int64, bool) {
	raw := mux.Vars(r)["id"]
	if raw == "" {
		return 0, false
	}
	for _, c := range raw {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
