package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const manifestFileName = "album.json"

// manifestFile is the on-disk album description:
//
//	{"title": "...", "items": [{"id": "1", "src": "a.jpg", "type": "image", "caption": "..."}]}
//
// src is relative to the manifest's directory unless absolute or an
// "archive.zip:entry" reference.
type manifestFile struct {
	Title string          `json:"title"`
	Items []manifestEntry `json:"items"`
}

type manifestEntry struct {
	ID      string `json:"id"`
	Src     string `json:"src"`
	Type    string `json:"type"`
	Caption string `json:"caption"`
}

func isManifestPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// loadManifest reads an album manifest. Items keep manifest order; entries
// without src or with an unknown type are skipped with a warning.
func loadManifest(path string) (Album, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Album{}, fmt.Errorf("read manifest: %w", err)
	}

	var mf manifestFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return Album{}, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	base := filepath.Dir(path)
	album := Album{Title: mf.Title, Items: make([]MediaItem, 0, len(mf.Items))}
	for i, entry := range mf.Items {
		if strings.TrimSpace(entry.Src) == "" {
			logger.Warn().Int("entry", i).Str("manifest", path).Msg("manifest entry without src")
			continue
		}
		kind, ok := parseMediaKind(entry.Type)
		if !ok {
			logger.Warn().Int("entry", i).Str("type", entry.Type).Msg("unknown media type in manifest")
			continue
		}
		if entry.Type == "" {
			kind = mediaKindForPath(entry.Src)
		}

		id := entry.ID
		if id == "" {
			id = strconv.Itoa(i + 1)
		}

		album.Items = append(album.Items, MediaItem{
			ID:      id,
			Kind:    kind,
			Source:  resolveManifestSource(base, entry.Src),
			Caption: entry.Caption,
		})
	}
	return album, nil
}

// resolveManifestSource turns a manifest src into a MediaSource
func resolveManifestSource(base, src string) MediaSource {
	if archive, entry, ok := splitArchiveRef(src); ok {
		if !filepath.IsAbs(archive) {
			archive = filepath.Join(base, archive)
		}
		return archiveSource(archive, entry)
	}

	path := src
	if !filepath.IsAbs(path) {
		path = filepath.Join(base, filepath.FromSlash(src))
	}
	return MediaSource{Path: path}
}

// splitArchiveRef splits "photos.zip:dir/a.jpg" into archive and entry
func splitArchiveRef(src string) (string, string, bool) {
	for _, ext := range []string{".zip:", ".rar:", ".7z:"} {
		if i := strings.Index(strings.ToLower(src), ext); i >= 0 {
			cut := i + len(ext) - 1
			return src[:cut], src[cut+1:], true
		}
	}
	return "", "", false
}
