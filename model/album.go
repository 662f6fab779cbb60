package model

import "time"

// Album 表示一张专辑, always owned by exactly one artist.
type Album struct {
	ID          int64      `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Title       string     `json:"title" gorm:"column:title"`
	ReleaseDate *time.Time `json:"releaseDate,omitempty" gorm:"column:release_date"`
	CoverArtURL *string    `json:"coverArtUrl,omitempty" gorm:"column:cover_art_url"`
	ArtistID    int64      `json:"artistId" gorm:"column:artist_id"`
}

// TableName 指定表名
func (Album) TableName() string {
	return "albums"
}
