package classify

import (
	"path/filepath"
	"strings"
)

// Category returns the label mapped to ext, or fallback when the table has
// no entry. Lookup is case-insensitive; an empty fallback selects
// FallbackCategory.
func Category(table Table, ext, fallback string) string {
	if fallback == "" {
		fallback = FallbackCategory
	}
	if category, ok := table[strings.ToLower(ext)]; ok {
		return category
	}
	return fallback
}

// Ext returns the final lowercase suffix of name including the dot. A name
// whose only dot leads it (".bashrc") has no extension, a trailing dot
// yields none, and multi-suffix names keep only the last part
// ("a.tar.gz" gives ".gz").
func Ext(name string) string {
	base := filepath.Base(name)
	i := strings.LastIndexByte(base, '.')
	if i <= 0 || i == len(base)-1 {
		return ""
	}
	return strings.ToLower(base[i:])
}
