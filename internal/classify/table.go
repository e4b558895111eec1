package classify

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FallbackCategory is the label applied when no table entry matches.
const FallbackCategory = "Other"

// Table maps a lowercase dotted extension to a category label.
type Table map[string]string

var defaultGroups = map[string][]string{
	"Images":    {".jpg", ".jpeg", ".png", ".gif", ".webp", ".tif", ".tiff", ".svg"},
	"Documents": {".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx", ".txt", ".md", ".rtf"},
	"Audio":     {".mp3", ".wav", ".flac", ".aac"},
	"Video":     {".mp4", ".mov", ".avi", ".mkv", ".webm"},
	"Archives":  {".zip", ".rar", ".7z", ".tar", ".gz", ".bz2"},
	"Code":      {".py", ".js", ".ts", ".java", ".cpp", ".c", ".cs", ".go", ".rb", ".php", ".sh", ".bat", ".ps1", ".json", ".yaml", ".yml", ".xml", ".html", ".css"},
	"CAD":       {".dwg", ".dxf", ".rvt", ".skp", ".obj", ".fbx", ".dae"},
}

// DefaultTable returns a fresh copy of the built-in extension mapping.
func DefaultTable() Table {
	table := make(Table, 64)
	for category, exts := range defaultGroups {
		for _, ext := range exts {
			table[ext] = category
		}
	}
	return table
}

// Merge returns a copy of base with overrides applied on top. Keys and
// labels pass through NormalizeExt and CanonicalLabel; entries that
// normalize to nothing are ignored.
func Merge(base Table, overrides map[string]string) Table {
	merged := make(Table, len(base)+len(overrides))
	for ext, category := range base {
		merged[ext] = category
	}
	for ext, category := range overrides {
		key := NormalizeExt(ext)
		label := CanonicalLabel(category)
		if key == "" || label == "" {
			continue
		}
		merged[key] = label
	}
	return merged
}

// NormalizeExt lowercases an extension and guarantees the leading dot, so
// "HEIC" and ".heic" address the same table entry. Empty input stays empty.
func NormalizeExt(ext string) string {
	trimmed := strings.ToLower(strings.TrimSpace(ext))
	if trimmed == "" || trimmed == "." {
		return ""
	}
	if !strings.HasPrefix(trimmed, ".") {
		trimmed = "." + trimmed
	}
	return trimmed
}

// CanonicalLabel trims a category label and title-cases it without lowering
// capitals already present, so "images" becomes "Images" while "CAD"
// survives as written.
func CanonicalLabel(label string) string {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return ""
	}
	return cases.Title(language.Und, cases.NoLower).String(trimmed)
}
