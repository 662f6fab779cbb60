package model

// Fallback display strings used when a track has no resolvable artist or album.
const (
	UnknownArtist = "Unknown Artist"
	UnknownAlbum  = "Unknown Album"
)

// ArtistResponse is the JSON shape of an entry in GET /api/artists.
type ArtistResponse struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	Bio  *string `json:"bio"`
}

// PlaylistResponse is the JSON shape of an entry in GET /api/playlists/for-you.
type PlaylistResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	ImageURL    string  `json:"image_url"`
}

// TrackResponse is the JSON shape of GET /api/track/{id}.
type TrackResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	ArtistName  string `json:"artist_name"`
	AlbumTitle  string `json:"album_title"`
	DurationMs  *int64 `json:"duration_ms"`
	FilePath    string `json:"file_path"`
	AlbumArtURL string `json:"album_art_url"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToResponse 转换为响应格式
func (a *Artist) ToResponse() ArtistResponse {
	return ArtistResponse{ID: a.ID, Name: a.Name, Bio: a.Bio}
}

// ToResponse converts the joined row, applying the artist and album fallbacks.
func (d *TrackDetail) ToResponse(albumArtURL string) TrackResponse {
	artistName := UnknownArtist
	if d.ArtistName != nil {
		artistName = *d.ArtistName
	}
	albumTitle := UnknownAlbum
	if d.AlbumTitle != nil {
		albumTitle = *d.AlbumTitle
	}
	return TrackResponse{
		ID:          d.ID,
		Title:       d.Title,
		ArtistName:  artistName,
		AlbumTitle:  albumTitle,
		DurationMs:  d.DurationMs,
		FilePath:    d.FilePath,
		AlbumArtURL: albumArtURL,
	}
}
