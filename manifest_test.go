package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trip.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"title": "Road trip",
		"items": [
			{"id": "start", "src": "photos/start.jpg", "caption": "Leaving home"},
			{"src": "drive.mp4"},
			{"id": "clip", "src": "extra.bin", "type": "video"},
			{"id": "nosrc", "src": "  "},
			{"id": "odd", "src": "x.jpg", "type": "hologram"},
			{"id": "zipped", "src": "pack.ZIP:inner/a.png", "type": "photo"}
		]
	}`), 0644))

	album, err := loadManifest(path)
	require.NoError(t, err)

	assert.Equal(t, "Road trip", album.Title)
	require.Len(t, album.Items, 4)

	assert.Equal(t, MediaItem{
		ID:      "start",
		Kind:    MediaImage,
		Source:  MediaSource{Path: filepath.Join(dir, "photos", "start.jpg")},
		Caption: "Leaving home",
	}, album.Items[0])

	assert.Equal(t, "2", album.Items[1].ID, "missing id falls back to position")
	assert.Equal(t, MediaVideo, album.Items[1].Kind, "kind inferred from extension")

	assert.Equal(t, "clip", album.Items[2].ID)
	assert.Equal(t, MediaVideo, album.Items[2].Kind)

	zipped := album.Items[3]
	assert.Equal(t, "zipped", zipped.ID)
	assert.True(t, zipped.Source.InArchive())
	assert.Equal(t, filepath.Join(dir, "pack.ZIP"), zipped.Source.ArchivePath)
	assert.Equal(t, "inner/a.png", zipped.Source.EntryPath)
}

func TestLoadManifestErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := loadManifest(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"items": [`), 0644))
	_, err = loadManifest(bad)
	assert.Error(t, err)
}

func TestResolveManifestSource(t *testing.T) {
	base := filepath.FromSlash("/albums/summer")
	abs := filepath.FromSlash("/elsewhere/pic.jpg")

	tests := []struct {
		name string
		src  string
		want MediaSource
	}{
		{"relative file", "a/b.jpg", MediaSource{Path: filepath.Join(base, "a", "b.jpg")}},
		{"absolute file", abs, MediaSource{Path: abs}},
		{"relative archive", "pics.7z:x.jpg", archiveSource(filepath.Join(base, "pics.7z"), "x.jpg")},
		{"rar archive", "old.rar:dir/y.png", archiveSource(filepath.Join(base, "old.rar"), "dir/y.png")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveManifestSource(base, tt.src))
		})
	}
}

func TestSplitArchiveRef(t *testing.T) {
	archive, entry, ok := splitArchiveRef("a/b.zip:c/d.jpg")
	assert.True(t, ok)
	assert.Equal(t, "a/b.zip", archive)
	assert.Equal(t, "c/d.jpg", entry)

	_, _, ok = splitArchiveRef("plain.jpg")
	assert.False(t, ok)
}

func TestIsManifestPath(t *testing.T) {
	assert.True(t, isManifestPath("album.json"))
	assert.True(t, isManifestPath("TRIP.JSON"))
	assert.False(t, isManifestPath("photo.jpg"))
}
