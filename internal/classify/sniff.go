package classify

import (
	"errors"
	"io"
	"os"

	"github.com/h2non/filetype"
)

// sniffLen bounds how much of a file header type matching may read.
const sniffLen = 8192

var mimeClassLabels = map[string]string{
	"image": "Images",
	"video": "Video",
	"audio": "Audio",
}

// Sniff inspects the leading bytes of the file at path and reports the
// category its detected type maps to. The table is consulted first via the
// detected extension so overrides keep their say; otherwise the MIME class
// falls back to the built-in media labels. Returns false when the type is
// unknown, unmapped, or the header cannot be read.
func Sniff(path string, table Table) (string, bool) {
	file, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer file.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", false
	}

	kind, err := filetype.Match(head[:n])
	if err != nil || kind == filetype.Unknown {
		return "", false
	}
	if category, ok := table[NormalizeExt(kind.Extension)]; ok {
		return category, true
	}
	if label, ok := mimeClassLabels[kind.MIME.Type]; ok {
		return label, true
	}
	return "", false
}
