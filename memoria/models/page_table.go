package models

import (
	"maps"
	"slices"
)

// PageEntry es una entrada de la tabla de páginas. Present en false significa
// que la página es conocida pero no está en ningún marco.
type PageEntry struct {
	Frame   int  `json:"frame"`
	Present bool `json:"present"`
}

// PageTable mapea páginas virtuales de un proceso a marcos físicos.
// Una página sin entrada y una página con entrada ausente se tratan igual:
// acceder a ellas produce un page fault.
type PageTable struct {
	entries map[int]PageEntry
}

func NewPageTable() *PageTable {
	return &PageTable{entries: make(map[int]PageEntry)}
}

// Map asocia la página con el marco.
func (table *PageTable) Map(pageNumber int, frameNumber int) {
	table.entries[pageNumber] = PageEntry{Frame: frameNumber, Present: true}
}

// Invalidate marca la página como ausente. Solo afecta páginas con entrada.
func (table *PageTable) Invalidate(pageNumber int) {
	if _, ok := table.entries[pageNumber]; ok {
		table.entries[pageNumber] = PageEntry{}
	}
}

// Lookup devuelve el marco de la página si está residente.
func (table *PageTable) Lookup(pageNumber int) (int, bool) {
	entry, ok := table.entries[pageNumber]
	if !ok || !entry.Present {
		return 0, false
	}
	return entry.Frame, true
}

// Mappings devuelve una copia de todas las entradas.
func (table *PageTable) Mappings() map[int]PageEntry {
	return maps.Clone(table.entries)
}

// ResidentPages devuelve las páginas residentes ordenadas.
func (table *PageTable) ResidentPages() []int {
	pages := make([]int, 0, len(table.entries))
	for page, entry := range table.entries {
		if entry.Present {
			pages = append(pages, page)
		}
	}
	slices.Sort(pages)
	return pages
}

// ResidentCount cuenta las páginas mapeadas a un marco.
func (table *PageTable) ResidentCount() int {
	count := 0
	for _, entry := range table.entries {
		if entry.Present {
			count++
		}
	}
	return count
}
