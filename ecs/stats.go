package ecs

import (
	"fmt"
	"slices"
	"strings"
)

// StorageStats is a point-in-time summary of a Storage.
type StorageStats struct {
	ArchetypeCount     int
	TotalEntityCount   int
	SingletonCount     int
	ArchetypeBreakdown []ArchetypeStats
	SingletonTypes     []string
}

// ArchetypeStats describes one archetype.
type ArchetypeStats struct {
	ID             uint32
	ComponentTypes []string
	EntityCount    int
}

// CollectStats gathers archetype and singleton counts. Singleton type names
// are sorted.
func (s *Storage) CollectStats() StorageStats {
	stats := StorageStats{
		ArchetypeCount:     len(s.order),
		SingletonCount:     len(s.singletons),
		ArchetypeBreakdown: make([]ArchetypeStats, 0, len(s.order)),
	}

	for _, a := range s.order {
		names := make([]string, len(a.types))
		for i, t := range a.types {
			names[i] = t.String()
		}
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			ID:             a.id,
			ComponentTypes: names,
			EntityCount:    a.Len(),
		})
		stats.TotalEntityCount += a.Len()
	}

	for t := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	slices.Sort(stats.SingletonTypes)

	return stats
}

// String renders the stats as one line per archetype.
func (st StorageStats) String() string {
	var b strings.Builder
	for _, a := range st.ArchetypeBreakdown {
		fmt.Fprintf(&b, "%s: %d\n", strings.Join(a.ComponentTypes, ","), a.EntityCount)
	}
	return b.String()
}
