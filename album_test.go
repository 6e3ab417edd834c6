package main

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

// writeZip creates a zip archive holding the named entries
func writeZip(t *testing.T, path string, entries map[string][]byte) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for name, data := range entries {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
}

func itemIDs(items []MediaItem) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

func TestCollectFromDirectory(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a10.jpg"))
	touch(t, filepath.Join(dir, "a2.png"))
	touch(t, filepath.Join(dir, "clip.mp4"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "sub", "b1.webp"))

	album, err := collectFromDirectory(dir, SortNatural)
	require.NoError(t, err)

	assert.Equal(t, filepath.Base(dir), album.Title)
	require.Len(t, album.Items, 4)
	assert.Equal(t, []string{
		filepath.Join(dir, "a2.png"),
		filepath.Join(dir, "a10.jpg"),
		filepath.Join(dir, "clip.mp4"),
		filepath.Join(dir, "sub", "b1.webp"),
	}, itemIDs(album.Items))
	assert.Equal(t, MediaVideo, album.Items[2].Kind)
	assert.Equal(t, MediaImage, album.Items[0].Kind)
}

func TestCollectFromDirectoryPrefersManifest(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "ignored.jpg"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, manifestFileName), []byte(`{
		"title": "Summer",
		"items": [{"id": "beach", "src": "beach.jpg", "caption": "Day one"}]
	}`), 0644))

	album, err := collectFromDirectory(dir, SortNatural)
	require.NoError(t, err)
	assert.Equal(t, "Summer", album.Title)
	require.Len(t, album.Items, 1)
	assert.Equal(t, "beach", album.Items[0].ID)
	assert.Equal(t, "Day one", album.Items[0].Caption)
}

func TestCollectFromDirectoryWithArchive(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "cover.jpg"))
	writeZip(t, filepath.Join(dir, "trip.zip"), map[string][]byte{
		"p10.jpg":    []byte("x"),
		"p2.jpg":     []byte("x"),
		"readme.txt": []byte("x"),
	})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.zip"), []byte("not a zip"), 0644))

	album, err := collectFromDirectory(dir, SortEntryOrder)
	require.NoError(t, err)

	require.Len(t, album.Items, 3, "broken archive is skipped")
	assert.Equal(t, filepath.Join(dir, "cover.jpg"), album.Items[0].ID)

	var inArchive []MediaItem
	for _, item := range album.Items {
		if item.Source.InArchive() {
			inArchive = append(inArchive, item)
		}
	}
	require.Len(t, inArchive, 2)
	for _, item := range inArchive {
		assert.Equal(t, filepath.Join(dir, "trip.zip"), item.Source.ArchivePath)
		assert.Equal(t, item.Source.ArchivePath+":"+item.Source.EntryPath, item.Source.Path)
	}
}

func TestProcessArchive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pics.zip")
	writeZip(t, path, map[string][]byte{
		"one.png":      []byte("x"),
		"two.mp4":      []byte("x"),
		"nested/3.jpg": []byte("x"),
		"skip.doc":     []byte("x"),
	})

	items, err := processArchive(path)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		path + ":one.png",
		path + ":two.mp4",
		path + ":nested/3.jpg",
	}, itemIDs(items))

	_, err = processArchive(filepath.Join(dir, "pics.tar"))
	assert.Error(t, err)

	_, err = processArchive(filepath.Join(dir, "missing.zip"))
	assert.Error(t, err)
}

func TestCollectAlbum(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "holiday", "1.jpg"))
	touch(t, filepath.Join(dir, "holiday", "2.jpg"))
	touch(t, filepath.Join(dir, "loose.mp4"))
	touch(t, filepath.Join(dir, "notes.txt"))

	album, err := collectAlbum([]string{
		filepath.Join(dir, "holiday"),
		filepath.Join(dir, "notes.txt"),
		filepath.Join(dir, "loose.mp4"),
		filepath.Join(dir, "holiday", "1.jpg"),
	}, SortNatural)
	require.NoError(t, err)

	assert.Equal(t, "holiday", album.Title)
	one := filepath.Join(dir, "holiday", "1.jpg")
	assert.Equal(t, []string{
		one,
		filepath.Join(dir, "holiday", "2.jpg"),
		filepath.Join(dir, "loose.mp4"),
		one + "#1",
	}, itemIDs(album.Items))
	assert.Equal(t, MediaVideo, album.Items[2].Kind)
}

func TestCollectAlbumMissingPath(t *testing.T) {
	_, err := collectAlbum([]string{filepath.Join(t.TempDir(), "nope")}, SortNatural)
	assert.Error(t, err)
}

func TestCollectAlbumEmpty(t *testing.T) {
	album, err := collectAlbum([]string{t.TempDir()}, SortNatural)
	require.NoError(t, err)
	assert.Empty(t, album.Items)
}

func TestDedupeIDs(t *testing.T) {
	items := []MediaItem{{ID: "a"}, {ID: "b"}, {ID: "a"}, {ID: "a"}}
	assert.Equal(t, []string{"a", "b", "a#1", "a#2"}, itemIDs(dedupeIDs(items)))
}
