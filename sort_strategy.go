package main

import (
	"sort"

	"github.com/maruel/natural"
)

// SortStrategy defines the interface for different sorting strategies
type SortStrategy interface {
	// Sort returns a new sorted slice without modifying the original
	Sort(items []MediaItem) []MediaItem
	// Name returns the human-readable name of the strategy
	Name() string
	// ID returns the numeric identifier for config storage
	ID() int
}

func copyItems(items []MediaItem) []MediaItem {
	result := make([]MediaItem, len(items))
	copy(result, items)
	return result
}

// NaturalSortStrategy implements natural sorting using maruel/natural
type NaturalSortStrategy struct{}

func (s *NaturalSortStrategy) Sort(items []MediaItem) []MediaItem {
	result := copyItems(items)
	sort.SliceStable(result, func(i, j int) bool {
		return natural.Less(result[i].Source.Path, result[j].Source.Path)
	})
	return result
}

func (s *NaturalSortStrategy) Name() string {
	return "Natural"
}

func (s *NaturalSortStrategy) ID() int {
	return SortNatural
}

// SimpleSortStrategy implements lexicographical sorting
type SimpleSortStrategy struct{}

func (s *SimpleSortStrategy) Sort(items []MediaItem) []MediaItem {
	result := copyItems(items)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Source.Path < result[j].Source.Path
	})
	return result
}

func (s *SimpleSortStrategy) Name() string {
	return "Simple"
}

func (s *SimpleSortStrategy) ID() int {
	return SortSimple
}

// EntryOrderSortStrategy preserves the original order
type EntryOrderSortStrategy struct{}

func (s *EntryOrderSortStrategy) Sort(items []MediaItem) []MediaItem {
	return copyItems(items)
}

func (s *EntryOrderSortStrategy) Name() string {
	return "Entry Order"
}

func (s *EntryOrderSortStrategy) ID() int {
	return SortEntryOrder
}

// GetSortStrategy returns the appropriate strategy based on the sort method ID
func GetSortStrategy(sortMethod int) SortStrategy {
	switch sortMethod {
	case SortNatural:
		return &NaturalSortStrategy{}
	case SortSimple:
		return &SimpleSortStrategy{}
	case SortEntryOrder:
		return &EntryOrderSortStrategy{}
	default:
		return &NaturalSortStrategy{} // Default fallback
	}
}

// GetAllSortStrategies returns all available sort strategies
func GetAllSortStrategies() []SortStrategy {
	return []SortStrategy{
		&NaturalSortStrategy{},
		&SimpleSortStrategy{},
		&EntryOrderSortStrategy{},
	}
}

// parseSortMethod maps a CLI sort name to its ID
func parseSortMethod(name string) (int, bool) {
	switch name {
	case "natural":
		return SortNatural, true
	case "simple":
		return SortSimple, true
	case "entry":
		return SortEntryOrder, true
	default:
		return SortNatural, false
	}
}
