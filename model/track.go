package model

// Track represents an audio track in the catalog.
// A track always has an artist; the album is optional and need not belong to that artist.
type Track struct {
	ID         int64  `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Title      string `json:"title" gorm:"column:title"`
	DurationMs *int64 `json:"durationMs" gorm:"column:duration_ms"`
	FilePath   string `json:"filePath" gorm:"column:file_path"` // path or URL to playable audio
	ArtistID   int64  `json:"artistId" gorm:"column:artist_id"`
	AlbumID    *int64 `json:"albumId" gorm:"column:album_id"`
}

// TableName 指定表名
func (Track) TableName() string {
	return "tracks"
}

// TrackDetail is a track joined with the display names of its artist and album.
// ArtistName and AlbumTitle are nil when the referenced row is missing.
type TrackDetail struct {
	ID         int64
	Title      string
	DurationMs *int64
	FilePath   string
	ArtistID   int64
	AlbumID    *int64
	ArtistName *string
	AlbumTitle *string
}
