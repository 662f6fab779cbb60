package model

import "time"

// Playlist 歌单, owned by a single user.
type Playlist struct {
	ID          int64     `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"column:name"`
	Description *string   `json:"description" gorm:"column:description"`
	CreatedAt   time.Time `json:"createdAt" gorm:"column:created_at"`
	UserID      int64     `json:"userId" gorm:"column:user_id"`
}

// TableName 指定表名
func (Playlist) TableName() string {
	return "playlists"
}

// PlaylistTrack is one row of the playlist/track junction table.
// The pair is the primary key; rows carry no position.
type PlaylistTrack struct {
	PlaylistID int64 `gorm:"column:playlist_id;primaryKey;autoIncrement:false"`
	TrackID    int64 `gorm:"column:track_id;primaryKey;autoIncrement:false"`
}

// TableName 指定表名
func (PlaylistTrack) TableName() string {
	return "playlist_tracks"
}
