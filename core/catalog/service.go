package catalog

import (
	"context"
	"strconv"
	"strings"
	"time"

	"musicapp/cache"
	"musicapp/logger"
	"musicapp/model"
	"musicapp/repository"
)

// ForYouLimit is the number of playlists surfaced by ForYouPlaylists.
const ForYouLimit = 3

// Messages returned to callers.
const (
	MsgTrackNotFound    = "Track not found"
	MsgPlaylistNotFound = "Playlist not found"
	MsgInvalidTrackID   = "Invalid track id"
	MsgInvalidPlaylist  = "Invalid playlist id"
	msgArtistsFailed    = "Could not retrieve artists"
	msgForYouFailed     = "Could not retrieve For You playlists"
	msgTrackFailed      = "Could not retrieve track details"
	msgPlaylistFailed   = "Could not retrieve playlist tracks"
)

// Options configures derived fields and caching.
type Options struct {
	// PlaylistImageTemplate must contain {seed}; AlbumArtTemplate must contain {id}.
	PlaylistImageTemplate string
	AlbumArtTemplate      string
	CacheTTL              time.Duration
}

// DefaultOptions reproduces the picsum.photos URLs of the original landing page.
func DefaultOptions() Options {
	return Options{
		PlaylistImageTemplate: "https://picsum.photos/seed/{seed}/180/180",
		AlbumArtTemplate:      "https://picsum.photos/seed/track{id}/56/56",
		CacheTTL:              5 * time.Minute,
	}
}

// Service translates the read API onto single store queries. It holds no
// per-request state and is safe for concurrent use.
type Service struct {
	repo  repository.CatalogRepository
	cache cache.Cache
	opts  Options
}

// NewService 创建曲库查询服务. A nil cache disables caching.
func NewService(repo repository.CatalogRepository, c cache.Cache, opts Options) *Service {
	if c == nil {
		c = cache.NopCache{}
	}
	return &Service{repo: repo, cache: c, opts: opts}
}

// ListArtists returns every artist ordered by name.
func (s *Service) ListArtists(ctx context.Context) ([]model.ArtistResponse, error) {
	var out []model.ArtistResponse
	if s.cached(ctx, cache.KeyArtists, &out) {
		return out, nil
	}

	artists, err := s.repo.ListArtists(ctx)
	if err != nil {
		return nil, ServiceError(msgArtistsFailed, err)
	}

	out = make([]model.ArtistResponse, 0, len(artists))
	for _, a := range artists {
		out = append(out, a.ToResponse())
	}
	s.store(ctx, cache.KeyArtists, out)
	return out, nil
}

// ForYouPlaylists returns the oldest ForYouLimit playlists. There is no
// personalisation; every caller sees the same list.
func (s *Service) ForYouPlaylists(ctx context.Context) ([]model.PlaylistResponse, error) {
	var out []model.PlaylistResponse
	if s.cached(ctx, cache.KeyForYou, &out) {
		return out, nil
	}

	playlists, err := s.repo.ListPlaylists(ctx, ForYouLimit)
	if err != nil {
		return nil, ServiceError(msgForYouFailed, err)
	}

	out = make([]model.PlaylistResponse, 0, len(playlists))
	for _, pl := range playlists {
		out = append(out, model.PlaylistResponse{
			ID:          pl.ID,
			Name:        pl.Name,
			Description: pl.Description,
			ImageURL:    s.PlaylistImageURL(pl.Name),
		})
	}
	s.store(ctx, cache.KeyForYou, out)
	return out, nil
}

// GetTrack returns the display view of one track.
func (s *Service) GetTrack(ctx context.Context, id int64) (*model.TrackResponse, error) {
	if id <= 0 {
		return nil, ValidationError(MsgInvalidTrackID)
	}

	key := cache.TrackKey(id)
	var out model.TrackResponse
	if s.cached(ctx, key, &out) {
		return &out, nil
	}

	detail, err := s.repo.GetTrackDetail(ctx, id)
	if err != nil {
		return nil, ServiceError(msgTrackFailed, err)
	}
	if detail == nil {
		return nil, NotFoundError(MsgTrackNotFound)
	}

	out = detail.ToResponse(s.AlbumArtURL(detail.ID))
	s.store(ctx, key, out)
	return &out, nil
}

// PlaylistTrackIDs returns the ids of the tracks in a playlist, in no particular order.
func (s *Service) PlaylistTrackIDs(ctx context.Context, id int64) ([]int64, error) {
	if id <= 0 {
		return nil, ValidationError(MsgInvalidPlaylist)
	}

	key := cache.PlaylistTracksKey(id)
	var ids []int64
	if s.cached(ctx, key, &ids) {
		return ids, nil
	}

	ids, found, err := s.repo.ListPlaylistTrackIDs(ctx, id)
	if err != nil {
		return nil, ServiceError(msgPlaylistFailed, err)
	}
	if !found {
		return nil, NotFoundError(MsgPlaylistNotFound)
	}
	s.store(ctx, key, ids)
	return ids, nil
}

// PlaylistImageURL derives the cover image of a playlist from its name:
// spaces are removed and the result lower-cased.
func (s *Service) PlaylistImageURL(name string) string {
	seed := strings.ToLower(strings.ReplaceAll(name, " ", ""))
	return strings.ReplaceAll(s.opts.PlaylistImageTemplate, "{seed}", seed)
}

// AlbumArtURL derives the album art of a track from its id.
func (s *Service) AlbumArtURL(trackID int64) string {
	return strings.ReplaceAll(s.opts.AlbumArtTemplate, "{id}", strconv.FormatInt(trackID, 10))
}

// cached loads key into dest. Cache failures count as a miss.
func (s *Service) cached(ctx context.Context, key string, dest interface{}) bool {
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		logger.Warn("缓存读取失败", logger.String("key", key), logger.ErrorField(err))
		return false
	}
	return hit
}

func (s *Service) store(ctx context.Context, key string, value interface{}) {
	if s.opts.CacheTTL <= 0 {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.opts.CacheTTL); err != nil {
		logger.Warn("缓存写入失败", logger.String("key", key), logger.ErrorField(err))
	}
}
