package models

// Config agrupa los parámetros de la memoria física.
type Config struct {
	MemorySizeKB    int    `json:"total_memory_kb"`
	PageSizeKB      int    `json:"page_size_kb"`
	PageReplacement string `json:"page_replacement"`
}

// FrameCount es la cantidad de marcos: floor(MemorySizeKB / PageSizeKB).
func (config Config) FrameCount() int {
	if config.PageSizeKB <= 0 || config.MemorySizeKB <= 0 {
		return 0
	}
	return config.MemorySizeKB / config.PageSizeKB
}

// PageSizeBytes es el tamaño de página en bytes.
func (config Config) PageSizeBytes() uint {
	return uint(config.PageSizeKB) * 1024
}
