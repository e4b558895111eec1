package organize

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"shelve/internal/digest"
	"shelve/internal/logging"
)

// dupeIndex tracks, per destination folder, the content digests of files
// already present there. Folders are indexed lazily on first touch and
// extended as the run commits placements, so dry runs and real runs see
// the same duplicate decisions.
type dupeIndex struct {
	algorithm digest.Algorithm
	logger    *slog.Logger
	folders   map[string]map[string]struct{}
}

func newDupeIndex(algorithm digest.Algorithm, logger *slog.Logger) *dupeIndex {
	return &dupeIndex{
		algorithm: algorithm,
		logger:    logger,
		folders:   make(map[string]map[string]struct{}),
	}
}

// Check reports whether path's content already lives in folder, together
// with the digest so a committed placement can be added afterwards. Files
// that cannot be hashed are treated as unique.
func (d *dupeIndex) Check(folder, path string) (bool, string) {
	sums := d.folder(folder)
	sum, err := digest.File(path, d.algorithm)
	if err != nil {
		d.logger.Warn("digest failed; treating file as unique",
			logging.String(logging.FieldSourcePath, path),
			logging.Error(err),
		)
		return false, ""
	}
	_, duplicate := sums[sum]
	return duplicate, sum
}

// Add records a placed digest so later files in the run compare against it.
func (d *dupeIndex) Add(folder, sum string) {
	d.folder(folder)[sum] = struct{}{}
}

// folder returns the digest set for one destination folder, indexing its
// current occupants on first access. A folder that does not exist yet
// indexes as empty.
func (d *dupeIndex) folder(folder string) map[string]struct{} {
	folder = filepath.Clean(folder)
	if sums, ok := d.folders[folder]; ok {
		return sums
	}

	sums := make(map[string]struct{})
	d.folders[folder] = sums

	entries, err := os.ReadDir(folder)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			d.logger.Warn("cannot index destination folder",
				logging.String(logging.FieldDestPath, folder),
				logging.Error(err),
			)
		}
		return sums
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		occupant := filepath.Join(folder, entry.Name())
		sum, err := digest.File(occupant, d.algorithm)
		if err != nil {
			d.logger.Debug("skipping unhashable occupant",
				logging.String(logging.FieldDestPath, occupant),
				logging.Error(err),
			)
			continue
		}
		sums[sum] = struct{}{}
	}
	return sums
}
