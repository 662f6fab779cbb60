package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"musicapp/config"
)

// ErrObjectNotFound is returned when an audio object does not exist or its name is invalid.
var ErrObjectNotFound = errors.New("audio object not found")

// ObjectInfo describes a stored audio file.
type ObjectInfo struct {
	Name        string
	Size        int64
	ContentType string
}

// AudioStore holds the playable audio files referenced by track file paths.
type AudioStore interface {
	Open(ctx context.Context, name string) (io.ReadCloser, *ObjectInfo, error)
	Put(ctx context.Context, name string, r io.Reader, size int64) error
	List(ctx context.Context) ([]ObjectInfo, error)
}

// NewAudioStore returns a MinIO backed store when an endpoint is configured,
// otherwise a store over cfg.AudioDir.
func NewAudioStore(ctx context.Context, cfg *config.Config) (AudioStore, error) {
	if cfg.MinioEndpoint != "" {
		return NewMinioStore(ctx, cfg)
	}
	return NewLocalStore(cfg.AudioDir)
}

// validName rejects anything that is not a single path element.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && path.Base(name) == name
}

// ContentType 从文件名推断内容类型
func ContentType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".wav":
		return "audio/wav"
	case ".mp3":
		return "audio/mpeg"
	case ".flac":
		return "audio/flac"
	case ".m4a":
		return "audio/mp4"
	case ".ogg":
		return "audio/ogg"
	default:
		return "application/octet-stream"
	}
}

// FormatSize 格式化文件大小
func FormatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
