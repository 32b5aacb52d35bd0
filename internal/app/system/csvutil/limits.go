// internal/app/system/csvutil/limits.go
package csvutil

// Size and row limits for CSV seed processing.
const (
	MaxUploadSize = 5 << 20 // 5 MB
	MaxRows       = 20000
)
