package main

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode"
)

// Album is the ordered, immutable content the viewer pages through
type Album struct {
	Title string
	Items []MediaItem
}

// Archive listing functions

func listZipEntries(archivePath string) ([]MediaSource, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var sources []MediaSource
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isSupportedExt(f.Name) {
			sources = append(sources, archiveSource(archivePath, f.Name))
		}
	}
	return sources, nil
}

func listRarEntries(archivePath string) ([]MediaSource, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	var sources []MediaSource
	for {
		header, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		if !header.IsDir && isSupportedExt(header.Name) {
			sources = append(sources, archiveSource(archivePath, header.Name))
		}
	}
	return sources, nil
}

func list7zEntries(archivePath string) ([]MediaSource, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var sources []MediaSource
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isSupportedExt(f.Name) {
			sources = append(sources, archiveSource(archivePath, f.Name))
		}
	}
	return sources, nil
}

func archiveSource(archivePath, entry string) MediaSource {
	return MediaSource{
		Path:        archivePath + ":" + entry,
		ArchivePath: archivePath,
		EntryPath:   entry,
	}
}

// processArchive lists the media entries of an archive as items
func processArchive(archivePath string) ([]MediaItem, error) {
	var sources []MediaSource
	var err error

	ext := strings.ToLower(filepath.Ext(archivePath))
	switch ext {
	case ".zip":
		sources, err = listZipEntries(archivePath)
	case ".rar":
		sources, err = listRarEntries(archivePath)
	case ".7z":
		sources, err = list7zEntries(archivePath)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("read archive %s: %w", archivePath, err)
	}

	items := make([]MediaItem, 0, len(sources))
	for _, src := range sources {
		items = append(items, newMediaItem(src))
	}
	return items, nil
}

// collectFromDirectory walks dir for media files and archives. A directory
// holding an album manifest is described by the manifest alone.
func collectFromDirectory(dir string, sortMethod int) (Album, error) {
	manifestPath := filepath.Join(dir, manifestFileName)
	if _, err := os.Stat(manifestPath); err == nil {
		return loadManifest(manifestPath)
	}

	strategy := GetSortStrategy(sortMethod)
	var items []MediaItem
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch {
		case isSupportedExt(path):
			items = append(items, newMediaItem(MediaSource{Path: path}))
		case isArchiveExt(path):
			archiveItems, err := processArchive(path)
			if err != nil {
				logger.Warn().Err(err).Str("archive", path).Msg("skipping problematic archive")
				return nil
			}
			items = append(items, strategy.Sort(archiveItems)...)
		}
		return nil
	})
	if err != nil {
		return Album{}, fmt.Errorf("walk %s: %w", dir, err)
	}

	return Album{Title: filepath.Base(dir), Items: strategy.Sort(items)}, nil
}

// collectAlbum resolves CLI arguments (directories, media files, archives,
// manifests) into one album, in argument order
func collectAlbum(args []string, sortMethod int) (Album, error) {
	var album Album
	strategy := GetSortStrategy(sortMethod)

	for _, p := range args {
		info, err := os.Stat(p)
		if err != nil {
			return Album{}, err
		}

		var part Album
		switch {
		case info.IsDir():
			part, err = collectFromDirectory(p, sortMethod)
			if err != nil {
				return Album{}, err
			}
		case isManifestPath(p):
			part, err = loadManifest(p)
			if err != nil {
				return Album{}, err
			}
		case isSupportedExt(p):
			part.Items = []MediaItem{newMediaItem(MediaSource{Path: p})}
		case isArchiveExt(p):
			archiveItems, err := processArchive(p)
			if err != nil {
				logger.Warn().Err(err).Str("archive", p).Msg("skipping problematic archive")
				continue
			}
			part = Album{Title: strings.TrimSuffix(filepath.Base(p), filepath.Ext(p)), Items: strategy.Sort(archiveItems)}
		default:
			debugLog("ignoring unsupported path %s", p)
			continue
		}

		if album.Title == "" {
			album.Title = part.Title
		}
		album.Items = append(album.Items, part.Items...)
	}

	album.Items = dedupeIDs(album.Items)
	return album, nil
}

// dedupeIDs keeps IDs unique when the same file is named twice
func dedupeIDs(items []MediaItem) []MediaItem {
	seen := make(map[string]int, len(items))
	for i := range items {
		id := items[i].ID
		if n, ok := seen[id]; ok {
			seen[id] = n + 1
			items[i].ID = fmt.Sprintf("%s#%d", id, n+1)
			continue
		}
		seen[id] = 0
	}
	return items
}
