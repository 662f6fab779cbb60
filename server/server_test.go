package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"musicapp/config"
	"musicapp/core/catalog"
	"musicapp/core/seed"
	"musicapp/internal/testdb"
	"musicapp/model"
	"musicapp/repository"
	"musicapp/storage"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	repo     repository.CatalogRepository
	audioDir string
	handler  http.Handler
}

func newTestServer(t *testing.T, cfg *config.Config) *testServer {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{}
	}

	repo := repository.NewGormCatalogRepository(testdb.New(t))
	audioDir := t.TempDir()
	store, err := storage.NewLocalStore(audioDir)
	require.NoError(t, err)

	svc := catalog.NewService(repo, nil, catalog.DefaultOptions())
	return &testServer{
		repo:     repo,
		audioDir: audioDir,
		handler:  NewRouter(cfg, svc, store),
	}
}

func (s *testServer) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dest), rec.Body.String())
}

func TestGetTrack(t *testing.T) {
	s := newTestServer(t, nil)
	ctx := context.Background()

	artist := &model.Artist{Name: "A"}
	require.NoError(t, s.repo.CreateArtist(ctx, artist))
	album := &model.Album{Title: "B", ArtistID: artist.ID}
	require.NoError(t, s.repo.CreateAlbum(ctx, album))
	duration := int64(3000)
	track := &model.Track{Title: "C", ArtistID: artist.ID, AlbumID: &album.ID, DurationMs: &duration, FilePath: "/static/audio/c.wav"}
	require.NoError(t, s.repo.CreateTrack(ctx, track))
	require.Equal(t, int64(1), track.ID)

	rec := s.get(t, "/api/track/1")
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]interface{}
	decode(t, rec, &got)
	assert.Equal(t, float64(1), got["id"])
	assert.Equal(t, "C", got["title"])
	assert.Equal(t, "A", got["artist_name"])
	assert.Equal(t, "B", got["album_title"])
	assert.Equal(t, float64(3000), got["duration_ms"])
	assert.Equal(t, "/static/audio/c.wav", got["file_path"])
	assert.Equal(t, "https://picsum.photos/seed/track1/56/56", got["album_art_url"])
}

func TestGetTrack_NotFound(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.get(t, "/api/track/9999")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Track not found"}`, rec.Body.String())
}

func TestGetTrack_InvalidID(t *testing.T) {
	s := newTestServer(t, nil)

	for _, path := range []string{"/api/track/abc", "/api/track/-1", "/api/track/0", "/api/track/99999999999999999999"} {
		rec := s.get(t, path)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.JSONEq(t, `{"error":"Invalid track id"}`, rec.Body.String(), path)
	}
}

func TestPlaylistTracks(t *testing.T) {
	s := newTestServer(t, nil)
	ctx := context.Background()

	artist := &model.Artist{Name: "A"}
	require.NoError(t, s.repo.CreateArtist(ctx, artist))
	for i := 0; i < 5; i++ {
		require.NoError(t, s.repo.CreateTrack(ctx, &model.Track{Title: "t", ArtistID: artist.ID, FilePath: "f"}))
	}
	user := &model.User{Username: "u", Email: "u@example.com", PasswordHash: "x"}
	require.NoError(t, s.repo.CreateUser(ctx, user))
	pl := &model.Playlist{Name: "pl", UserID: user.ID}
	require.NoError(t, s.repo.CreatePlaylist(ctx, pl))
	require.Equal(t, int64(1), pl.ID)
	require.NoError(t, s.repo.AddTrackToPlaylist(ctx, pl.ID, 5))
	require.NoError(t, s.repo.AddTrackToPlaylist(ctx, pl.ID, 1))

	empty := &model.Playlist{Name: "empty", UserID: user.ID}
	require.NoError(t, s.repo.CreatePlaylist(ctx, empty))

	rec := s.get(t, "/api/playlist/1/tracks")
	require.Equal(t, http.StatusOK, rec.Code)
	var ids []int64
	decode(t, rec, &ids)
	assert.ElementsMatch(t, []int64{1, 5}, ids)

	rec = s.get(t, "/api/playlist/2/tracks")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = s.get(t, "/api/playlist/9999/tracks")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Playlist not found"}`, rec.Body.String())

	rec = s.get(t, "/api/playlist/x/tracks")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSeededCatalog(t *testing.T) {
	s := newTestServer(t, nil)
	_, err := seed.Run(context.Background(), s.repo)
	require.NoError(t, err)

	rec := s.get(t, "/api/artists")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[
		{"id":2,"name":"DJ CodeFlow","bio":"Spins virtual tracks."},
		{"id":3,"name":"Indie Gem","bio":null},
		{"id":1,"name":"The Sampletones","bio":"A band created for demonstration purposes."}
	]`, rec.Body.String())

	rec = s.get(t, "/api/playlists/for-you")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[
		{"id":1,"name":"Chill Vibes","description":"Relaxing tunes.","image_url":"https://picsum.photos/seed/chillvibes/180/180"},
		{"id":2,"name":"Weekly Mix","description":"Your personalized mix.","image_url":"https://picsum.photos/seed/weeklymix/180/180"},
		{"id":3,"name":"Focus Mode","description":"Concentration music.","image_url":"https://picsum.photos/seed/focusmode/180/180"}
	]`, rec.Body.String())

	rec = s.get(t, "/api/track/6")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"id":6,"title":"Lost & Found","artist_name":"Indie Gem","album_title":"Unknown Album",
		"duration_ms":190000,"file_path":"/static/audio/sample6.wav",
		"album_art_url":"https://picsum.photos/seed/track6/56/56"
	}`, rec.Body.String())

	rec = s.get(t, "/api/playlist/2/tracks")
	require.Equal(t, http.StatusOK, rec.Code)
	var ids []int64
	decode(t, rec, &ids)
	assert.ElementsMatch(t, []int64{3, 6, 2}, ids)
}

func TestEmptyCatalogLists(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.get(t, "/api/artists")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = s.get(t, "/api/playlists/for-you")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

// failingRepo reports a store outage for every read.
type failingRepo struct {
	repository.CatalogRepository
}

var errOutage = errors.New("dial tcp 10.0.0.5:3306: connection refused")

func (failingRepo) ListArtists(context.Context) ([]*model.Artist, error) { return nil, errOutage }
func (failingRepo) ListPlaylists(context.Context, int) ([]*model.Playlist, error) {
	return nil, errOutage
}
func (failingRepo) GetTrackDetail(context.Context, int64) (*model.TrackDetail, error) {
	return nil, errOutage
}
func (failingRepo) ListPlaylistTrackIDs(context.Context, int64) ([]int64, bool, error) {
	return nil, false, errOutage
}

func TestStoreFailureReturns500(t *testing.T) {
	svc := catalog.NewService(failingRepo{}, nil, catalog.DefaultOptions())
	handler := NewRouter(&config.Config{}, svc, nil)

	cases := map[string]string{
		"/api/artists":           "Could not retrieve artists",
		"/api/playlists/for-you": "Could not retrieve For You playlists",
		"/api/track/1":           "Could not retrieve track details",
		"/api/playlist/1/tracks": "Could not retrieve playlist tracks",
	}
	for path, msg := range cases {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code, path)

		var body model.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, msg, body.Error)
		assert.NotContains(t, rec.Body.String(), "connection refused")
	}
}

func TestUnknownAPIRouteIsJSON404(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.get(t, "/api/albums")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, rec.Body.String())
}

func TestIndexPage(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.get(t, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, "Welcome to the Music App!", strings.TrimSpace(doc.Find("h1").First().Text()))
	assert.Equal(t, "Home - Music App", doc.Find("title").Text())
	assert.Equal(t, 1, doc.Find("#artists-list").Length())
	assert.Equal(t, 1, doc.Find("#for-you .grid-items").Length())
	assert.Equal(t, 1, doc.Find("audio#audio-player").Length())
}

func TestStaticAudio(t *testing.T) {
	s := newTestServer(t, nil)
	payload := []byte("RIFF....WAVEfmt ")
	require.NoError(t, os.WriteFile(filepath.Join(s.audioDir, "sample1.wav"), payload, 0644))

	rec := s.get(t, "/static/audio/sample1.wav")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "audio/wav", rec.Header().Get("Content-Type"))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, payload, body)

	req := httptest.NewRequest(http.MethodGet, "/static/audio/sample1.wav", nil)
	req.Header.Set("Range", "bytes=0-3")
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusPartialContent, rec.Code)
	assert.Equal(t, "RIFF", rec.Body.String())

	rec = s.get(t, "/static/audio/missing.wav")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequestIDAndCORSHeaders(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.get(t, "/api/artists")
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	req := httptest.NewRequest(http.MethodGet, "/api/artists", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, &config.Config{RateLimitRPS: 0.001, RateLimitBurst: 2})

	assert.Equal(t, http.StatusOK, s.get(t, "/api/artists").Code)
	assert.Equal(t, http.StatusOK, s.get(t, "/api/artists").Code)

	rec := s.get(t, "/api/artists")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error":"Too many requests"}`, rec.Body.String())
}

func TestPreflightGetsCORSHeaders(t *testing.T) {
	s := newTestServer(t, nil)

	for _, path := range []string{"/api/artists", "/api/playlists/for-you", "/api/track/1", "/api/playlist/1/tracks", "/static/audio/sample1.wav"} {
		req := httptest.NewRequest(http.MethodOptions, path, nil)
		req.Header.Set("Origin", "http://example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"), path)
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodGet, path)
		assert.Empty(t, rec.Body.String(), path)
	}
}

func TestWrongMethodIsJSON405(t *testing.T) {
	s := newTestServer(t, nil)

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, httptest.NewRequest(method, "/api/artists", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, method)
		assert.JSONEq(t, `{"error":"Method not allowed"}`, rec.Body.String(), method)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/track/1", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
