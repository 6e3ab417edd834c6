package main

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/bodgit/sevenzip"
	"github.com/hajimehoshi/ebiten/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/nwaples/rardecode"
	"github.com/rs/zerolog"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// PreloadRequest asks the worker to warm the cache around Index
type PreloadRequest struct {
	Index     int
	Direction Direction
	Jump      bool
}

// PreloadStats provides statistics about preloading
type PreloadStats struct {
	QueueSize     int
	LoadedCount   int
	FailedCount   int
	LastDirection Direction
}

// MediaCache decodes album images on demand and keeps the most recent ones
// in an LRU. A single worker goroutine preloads the neighbours of the page
// the pager settles on.
type MediaCache struct {
	items []MediaItem
	cache *lru.Cache[string, *ebiten.Image]
	load  func(MediaSource) (*ebiten.Image, error)

	requests chan PreloadRequest
	ctx      context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once

	mu         sync.RWMutex
	stats      PreloadStats
	maxPreload int
	enabled    bool

	log zerolog.Logger
}

func newImageLRU(size int) *lru.Cache[string, *ebiten.Image] {
	onEvict := func(_ string, img *ebiten.Image) {
		if img != nil {
			img.Deallocate()
		}
	}
	cache, err := lru.NewWithEvict[string, *ebiten.Image](size, onEvict)
	if err != nil {
		logger.Error().Err(err).Int("size", size).Msg("failed to create LRU cache")
		cache, _ = lru.NewWithEvict[string, *ebiten.Image](16, onEvict)
	}
	return cache
}

// NewMediaCache creates a cache over items and starts its preload worker
func NewMediaCache(items []MediaItem, cacheSize, preloadCount int, preloadEnabled bool) *MediaCache {
	ctx, cancel := context.WithCancel(context.Background())
	mc := &MediaCache{
		items:      items,
		cache:      newImageLRU(cacheSize),
		load:       loadImage,
		requests:   make(chan PreloadRequest, 100),
		ctx:        ctx,
		cancel:     cancel,
		maxPreload: preloadCount,
		enabled:    preloadEnabled,
		log:        componentLogger("cache"),
	}
	go mc.worker()
	return mc
}

// SetEnabled enables or disables preloading
func (mc *MediaCache) SetEnabled(enabled bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.enabled = enabled
}

// IsEnabled returns whether preloading is enabled
func (mc *MediaCache) IsEnabled() bool {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.enabled
}

// Stats returns current preload statistics
func (mc *MediaCache) Stats() PreloadStats {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	stats := mc.stats
	stats.QueueSize = len(mc.requests)
	return stats
}

// Stop ends the preload worker and releases cached images. Safe to call
// more than once.
func (mc *MediaCache) Stop() {
	mc.stopOnce.Do(func() {
		mc.cancel()
		mc.cache.Purge()
	})
}

// OnPageChange is registered as a pager commit observer
func (mc *MediaCache) OnPageChange(change PageChange) {
	jump := change.To-change.From != 1 && change.From-change.To != 1
	mc.StartPreload(change.To, change.Direction, jump)
}

// StartPreload replaces any pending preload work with work around idx
func (mc *MediaCache) StartPreload(idx int, dir Direction, jump bool) {
	if !mc.IsEnabled() || mc.ctx.Err() != nil {
		return
	}

drain:
	for {
		select {
		case <-mc.requests:
		default:
			break drain
		}
	}

	select {
	case mc.requests <- PreloadRequest{Index: idx, Direction: dir, Jump: jump}:
	default:
		debugLog("preload request channel full, skipping preload of %d", idx)
	}
}

func (mc *MediaCache) worker() {
	for {
		select {
		case <-mc.ctx.Done():
			return
		case req := <-mc.requests:
			if mc.IsEnabled() {
				mc.processPreloadRequest(req)
			}
		}
	}
}

func (mc *MediaCache) processPreloadRequest(req PreloadRequest) {
	mc.mu.Lock()
	mc.stats.LastDirection = req.Direction
	mc.mu.Unlock()

	for _, idx := range calculatePreloadIndices(req, mc.maxPreload, len(mc.items)) {
		select {
		case <-mc.ctx.Done():
			return
		default:
			mc.preload(idx)
		}
	}
}

// calculatePreloadIndices lists the pages to warm after landing on
// req.Index: ahead in the travel direction, or both ways after a jump
func calculatePreloadIndices(req PreloadRequest, maxPreload, total int) []int {
	var indices []int
	add := func(idx int) {
		if idx >= 0 && idx < total {
			indices = append(indices, idx)
		}
	}

	switch {
	case req.Jump:
		half := maxPreload / 2
		if half < 1 {
			half = 1
		}
		for i := 1; i <= half; i++ {
			add(req.Index + i)
		}
		for i := 1; i <= half; i++ {
			add(req.Index - i)
		}
	case req.Direction == DirectionPrev:
		for i := 1; i <= maxPreload; i++ {
			add(req.Index - i)
		}
	default:
		for i := 1; i <= maxPreload; i++ {
			add(req.Index + i)
		}
	}
	return indices
}

func (mc *MediaCache) preload(idx int) {
	item := mc.items[idx]
	if item.IsVideo() {
		return
	}
	if _, ok := mc.cache.Get(item.Source.Path); ok {
		return
	}

	img, err := mc.load(item.Source)
	if err != nil {
		mc.mu.Lock()
		mc.stats.FailedCount++
		mc.mu.Unlock()
		debugLog("preload failed for [%d] %s: %v", idx+1, item.Source.Path, err)
		img = NewErrorCard(item.Source, err)
	}
	mc.cache.Add(item.Source.Path, img)

	mc.mu.Lock()
	mc.stats.LoadedCount++
	mc.mu.Unlock()

	debugLog("preloaded [%d] %s (cache: %d items)", idx+1, item.Source.Path, mc.cache.Len())
}

// Image returns the decoded image for the page at idx, or nil for videos
// and out-of-range indices. Decode failures yield an error card.
func (mc *MediaCache) Image(idx int) *ebiten.Image {
	if idx < 0 || idx >= len(mc.items) {
		return nil
	}
	item := mc.items[idx]
	if item.IsVideo() {
		return nil
	}

	key := item.Source.Path
	if img, ok := mc.cache.Get(key); ok {
		return img
	}

	img, err := mc.load(item.Source)
	if err != nil {
		mc.log.Error().Err(err).Int("page", idx+1).Int("total", len(mc.items)).Str("path", key).Msg("failed to load image")
		img = NewErrorCard(item.Source, err)
	}
	mc.cache.Add(key, img)

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	debugLog("cache MISS: %s (cache: %d items, memory: %dMB)", key, mc.cache.Len(), mem.Alloc/1024/1024)
	return img
}

// Image loading functions

func loadImage(src MediaSource) (*ebiten.Image, error) {
	img, err := decodeMedia(src)
	if err != nil {
		return nil, err
	}
	return ebiten.NewImageFromImage(img), nil
}

func decodeMedia(src MediaSource) (image.Image, error) {
	data, err := readMediaBytes(src)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", src.Path, err)
	}
	return img, nil
}

// readMediaBytes reads a plain file or an archive entry
func readMediaBytes(src MediaSource) ([]byte, error) {
	if !src.InArchive() {
		return os.ReadFile(src.Path)
	}

	switch strings.ToLower(filepath.Ext(src.ArchivePath)) {
	case ".zip":
		return readZipEntry(src.ArchivePath, src.EntryPath)
	case ".rar":
		return readRarEntry(src.ArchivePath, src.EntryPath)
	case ".7z":
		return read7zEntry(src.ArchivePath, src.EntryPath)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", src.ArchivePath)
	}
}

func readZipEntry(archivePath, entryPath string) ([]byte, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != entryPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func readRarEntry(archivePath, entryPath string) ([]byte, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	for {
		header, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if header.Name == entryPath {
			return io.ReadAll(r)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func read7zEntry(archivePath, entryPath string) ([]byte, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != entryPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}
