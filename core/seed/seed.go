package seed

import (
	"context"
	"fmt"

	"musicapp/core/auth"
	"musicapp/logger"
	"musicapp/model"
	"musicapp/repository"
)

// SampleUserPassword is hashed into the seeded user's password_hash. Nothing logs in with it.
const SampleUserPassword = "placeholder_password"

// AudioURL is the public path of the n-th generated placeholder tone (1-based).
func AudioURL(n int) string {
	return fmt.Sprintf("/static/audio/sample%d.wav", n)
}

func strPtr(s string) *string { return &s }
func msPtr(ms int64) *int64   { return &ms }

// Run inserts the sample catalog when the store has no artists and reports
// whether it did. Each phase commits before the next one starts because later
// phases reference ids assigned by earlier ones. Run must not be called
// concurrently with request handling.
func Run(ctx context.Context, repo repository.CatalogRepository) (bool, error) {
	count, err := repo.CountArtists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check for existing artists: %w", err)
	}
	if count > 0 {
		logger.Info("Catalog already populated, skipping seed", logger.Int64("artists", count))
		return false, nil
	}

	logger.Info("Adding sample data to the database...")

	// Artists
	artists := []*model.Artist{
		{Name: "The Sampletones", Bio: strPtr("A band created for demonstration purposes.")},
		{Name: "DJ CodeFlow", Bio: strPtr("Spins virtual tracks.")},
		{Name: "Indie Gem"},
	}
	if err := inTx(ctx, repo, "artists", func(tx repository.CatalogRepository) error {
		for _, a := range artists {
			if err := tx.CreateArtist(ctx, a); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return false, err
	}

	// Albums
	albums := []*model.Album{
		{Title: "Greatest Hits", ArtistID: artists[0].ID},
		{Title: "Code Breaker Beats", ArtistID: artists[1].ID},
		{Title: "Acoustic Gems", ArtistID: artists[2].ID},
	}
	if err := inTx(ctx, repo, "albums", func(tx repository.CatalogRepository) error {
		for _, a := range albums {
			if err := tx.CreateAlbum(ctx, a); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return false, err
	}

	// Tracks
	tracks := []*model.Track{
		{Title: "Sample Song A", ArtistID: artists[0].ID, AlbumID: &albums[0].ID, DurationMs: msPtr(180000)},
		{Title: "Sample Song B", ArtistID: artists[0].ID, AlbumID: &albums[0].ID, DurationMs: msPtr(210000)},
		{Title: "Flow State", ArtistID: artists[1].ID, AlbumID: &albums[1].ID, DurationMs: msPtr(300000)},
		{Title: "Synthwave Drive", ArtistID: artists[1].ID, AlbumID: &albums[1].ID, DurationMs: msPtr(240000)},
		{Title: "Quiet Corner", ArtistID: artists[2].ID, AlbumID: &albums[2].ID, DurationMs: msPtr(150000)},
		{Title: "Lost & Found", ArtistID: artists[2].ID, DurationMs: msPtr(190000)}, // no album
	}
	for i, tr := range tracks {
		tr.FilePath = AudioURL(i + 1)
	}
	if err := inTx(ctx, repo, "tracks", func(tx repository.CatalogRepository) error {
		for _, tr := range tracks {
			if err := tx.CreateTrack(ctx, tr); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return false, err
	}

	// Sample user, needed as the owner of the playlists
	hash, err := auth.HashPassword(SampleUserPassword)
	if err != nil {
		return false, err
	}
	user := &model.User{Username: "sampleuser", Email: "sample@example.com", PasswordHash: hash}
	if err := inTx(ctx, repo, "user", func(tx repository.CatalogRepository) error {
		return tx.CreateUser(ctx, user)
	}); err != nil {
		return false, err
	}

	// Playlists and their tracks
	playlists := []struct {
		playlist *model.Playlist
		tracks   []*model.Track
	}{
		{&model.Playlist{Name: "Chill Vibes", Description: strPtr("Relaxing tunes.")}, []*model.Track{tracks[4], tracks[0]}},
		{&model.Playlist{Name: "Weekly Mix", Description: strPtr("Your personalized mix.")}, []*model.Track{tracks[2], tracks[5], tracks[1]}},
		{&model.Playlist{Name: "Focus Mode", Description: strPtr("Concentration music.")}, []*model.Track{tracks[3], tracks[2]}},
	}
	if err := inTx(ctx, repo, "playlists", func(tx repository.CatalogRepository) error {
		for _, p := range playlists {
			p.playlist.UserID = user.ID
			if err := tx.CreatePlaylist(ctx, p.playlist); err != nil {
				return err
			}
			for _, tr := range p.tracks {
				if err := tx.AddTrackToPlaylist(ctx, p.playlist.ID, tr.ID); err != nil {
					return err
				}
			}
		}
		return nil
	}); err != nil {
		return false, err
	}

	logger.Info("Sample data added.",
		logger.Int("artists", len(artists)),
		logger.Int("albums", len(albums)),
		logger.Int("tracks", len(tracks)),
		logger.Int("playlists", len(playlists)))
	return true, nil
}

func inTx(ctx context.Context, repo repository.CatalogRepository, phase string, fn func(tx repository.CatalogRepository) error) error {
	if err := repo.WithTx(ctx, fn); err != nil {
		return fmt.Errorf("failed to seed %s: %w", phase, err)
	}
	return nil
}
