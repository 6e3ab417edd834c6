package main

import (
	"path/filepath"
	"strings"
)

// MediaKind tells the renderer and the autoplay scheduler how an item plays
type MediaKind int

const (
	MediaImage MediaKind = iota
	MediaVideo
)

func (k MediaKind) String() string {
	switch k {
	case MediaImage:
		return "image"
	case MediaVideo:
		return "video"
	default:
		return "unknown"
	}
}

// parseMediaKind maps the manifest "type" field to a MediaKind
func parseMediaKind(s string) (MediaKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "image", "photo", "":
		return MediaImage, true
	case "video":
		return MediaVideo, true
	default:
		return MediaImage, false
	}
}

// MediaSource locates the bytes of a media item
type MediaSource struct {
	Path        string // Local file path or archive:entry format
	ArchivePath string // Empty for regular files, path to archive for entries
	EntryPath   string // Empty for regular files, path within archive for entries
}

// InArchive reports whether the source is an archive entry
func (s MediaSource) InArchive() bool {
	return s.ArchivePath != ""
}

// MediaItem is one page of the album. Items are immutable once loaded.
type MediaItem struct {
	ID      string
	Kind    MediaKind
	Source  MediaSource
	Caption string
}

// HasCaption reports whether the item carries a caption to display
func (m MediaItem) HasCaption() bool {
	return strings.TrimSpace(m.Caption) != ""
}

// IsVideo reports whether the item is video-typed
func (m MediaItem) IsVideo() bool {
	return m.Kind == MediaVideo
}

func isArchiveExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".zip", ".rar", ".7z":
		return true
	default:
		return false
	}
}

func isImageExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp", ".bmp", ".gif":
		return true
	default:
		return false
	}
}

func isVideoExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".mp4", ".webm", ".mov", ".m4v":
		return true
	default:
		return false
	}
}

// isSupportedExt reports whether a path can become a MediaItem
func isSupportedExt(path string) bool {
	return isImageExt(path) || isVideoExt(path)
}

// mediaKindForPath infers the kind from the file extension
func mediaKindForPath(path string) MediaKind {
	if isVideoExt(path) {
		return MediaVideo
	}
	return MediaImage
}

// newMediaItem builds an item from a source, using the source path as ID
func newMediaItem(source MediaSource) MediaItem {
	return MediaItem{
		ID:     source.Path,
		Kind:   mediaKindForPath(source.Path),
		Source: source,
	}
}
