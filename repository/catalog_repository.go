package repository

import (
	"context"
	"errors"
	"time"

	"musicapp/model"

	"gorm.io/gorm"
)

// CatalogRepository 定义曲库相关的数据库操作接口.
// Lookups by id return (nil, nil) when the row does not exist.
type CatalogRepository interface {
	GetArtist(ctx context.Context, id int64) (*model.Artist, error)
	GetTrack(ctx context.Context, id int64) (*model.Track, error)
	GetPlaylist(ctx context.Context, id int64) (*model.Playlist, error)

	// GetTrackDetail resolves a track together with its artist name and album title.
	GetTrackDetail(ctx context.Context, id int64) (*model.TrackDetail, error)

	// ListArtists returns every artist ordered by name, then id.
	ListArtists(ctx context.Context) ([]*model.Artist, error)

	// ListPlaylists returns at most limit playlists, oldest first, ties broken by id.
	ListPlaylists(ctx context.Context, limit int) ([]*model.Playlist, error)

	// ListPlaylistTrackIDs returns the ids of the tracks in a playlist. found is
	// false when the playlist itself does not exist.
	ListPlaylistTrackIDs(ctx context.Context, playlistID int64) (ids []int64, found bool, err error)

	CountArtists(ctx context.Context) (int64, error)

	CreateUser(ctx context.Context, user *model.User) error
	CreateArtist(ctx context.Context, artist *model.Artist) error
	CreateAlbum(ctx context.Context, album *model.Album) error
	CreateTrack(ctx context.Context, track *model.Track) error
	CreatePlaylist(ctx context.Context, playlist *model.Playlist) error
	AddTrackToPlaylist(ctx context.Context, playlistID, trackID int64) error

	// WithTx runs fn against a repository bound to a single transaction.
	WithTx(ctx context.Context, fn func(repo CatalogRepository) error) error
}

// gormCatalogRepository GORM 实现
type gormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository 创建 GORM 曲库仓库
func NewGormCatalogRepository(db *gorm.DB) CatalogRepository {
	return &gormCatalogRepository{db: db}
}

// ========== 查询 ==========

func (r *gormCatalogRepository) GetArtist(ctx context.Context, id int64) (*model.Artist, error) {
	var artist model.Artist
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&artist).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &artist, nil
}

func (r *gormCatalogRepository) GetTrack(ctx context.Context, id int64) (*model.Track, error) {
	var track model.Track
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&track).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &track, nil
}

func (r *gormCatalogRepository) GetPlaylist(ctx context.Context, id int64) (*model.Playlist, error) {
	var playlist model.Playlist
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&playlist).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &playlist, nil
}

func (r *gormCatalogRepository) GetTrackDetail(ctx context.Context, id int64) (*model.TrackDetail, error) {
	var rows []model.TrackDetail
	err := r.db.WithContext(ctx).
		Table("tracks AS t").
		Select("t.id, t.title, t.duration_ms, t.file_path, t.artist_id, t.album_id, " +
			"ar.name AS artist_name, al.title AS album_title").
		Joins("LEFT JOIN artists ar ON ar.id = t.artist_id").
		Joins("LEFT JOIN albums al ON al.id = t.album_id").
		Where("t.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *gormCatalogRepository) ListArtists(ctx context.Context) ([]*model.Artist, error) {
	artists := make([]*model.Artist, 0)
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Order("id ASC").
		Find(&artists).Error
	return artists, err
}

func (r *gormCatalogRepository) ListPlaylists(ctx context.Context, limit int) ([]*model.Playlist, error) {
	playlists := make([]*model.Playlist, 0)
	if limit <= 0 {
		return playlists, nil
	}
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Order("id ASC").
		Limit(limit).
		Find(&playlists).Error
	return playlists, err
}

// playlistTrackRow is one row of the playlist LEFT JOIN junction query.
type playlistTrackRow struct {
	PlaylistID int64
	TrackID    *int64
}

func (r *gormCatalogRepository) ListPlaylistTrackIDs(ctx context.Context, playlistID int64) ([]int64, bool, error) {
	var rows []playlistTrackRow
	err := r.db.WithContext(ctx).
		Table("playlists AS p").
		Select("p.id AS playlist_id, pt.track_id AS track_id").
		Joins("LEFT JOIN playlist_tracks pt ON pt.playlist_id = p.id").
		Where("p.id = ?", playlistID).
		Scan(&rows).Error
	if err != nil {
		return nil, false, err
	}
	if len(rows) == 0 {
		return nil, false, nil
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		// a playlist without tracks yields a single row with a NULL track id
		if row.TrackID != nil {
			ids = append(ids, *row.TrackID)
		}
	}
	return ids, true, nil
}

func (r *gormCatalogRepository) CountArtists(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Artist{}).Count(&count).Error
	return count, err
}

// ========== 写入 (仅用于初始化数据) ==========

func (r *gormCatalogRepository) CreateUser(ctx context.Context, user *model.User) error {
	return translateError("user", r.db.WithContext(ctx).Create(user).Error)
}

func (r *gormCatalogRepository) CreateArtist(ctx context.Context, artist *model.Artist) error {
	return translateError("artist", r.db.WithContext(ctx).Create(artist).Error)
}

func (r *gormCatalogRepository) CreateAlbum(ctx context.Context, album *model.Album) error {
	return translateError("album", r.db.WithContext(ctx).Create(album).Error)
}

func (r *gormCatalogRepository) CreateTrack(ctx context.Context, track *model.Track) error {
	if track.DurationMs != nil && *track.DurationMs < 0 {
		return ErrNegativeDuration
	}
	return translateError("track", r.db.WithContext(ctx).Create(track).Error)
}

func (r *gormCatalogRepository) CreatePlaylist(ctx context.Context, playlist *model.Playlist) error {
	if playlist.CreatedAt.IsZero() {
		playlist.CreatedAt = time.Now()
	}
	// SQLite stores times as text with their offset, so ordering needs a single zone.
	playlist.CreatedAt = playlist.CreatedAt.UTC()
	return translateError("playlist", r.db.WithContext(ctx).Create(playlist).Error)
}

func (r *gormCatalogRepository) AddTrackToPlaylist(ctx context.Context, playlistID, trackID int64) error {
	link := &model.PlaylistTrack{PlaylistID: playlistID, TrackID: trackID}
	return translateError("playlist_track", r.db.WithContext(ctx).Create(link).Error)
}

func (r *gormCatalogRepository) WithTx(ctx context.Context, fn func(repo CatalogRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormCatalogRepository{db: tx})
	})
}

func notFoundAsNil(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
