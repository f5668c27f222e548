package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedInput reports that sanitization or parsing produced no usable
// rows. Callers distinguish it from ordinary load errors with errors.Is: a
// KOI export is never legitimately empty, so an empty result means a corrupt
// or truncated file and no dataset is published for that load.
var ErrMalformedInput = errors.New("malformed catalog input")

// Sanitize converts a raw archive export into parseable CSV text: it splits on
// LF or CRLF, drops blank lines and the archive's leading '#' comment block,
// and rejoins with LF. The first surviving line is the header row.
func Sanitize(raw string) (string, error) {
	var kept []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		kept = append(kept, line)
	}

	// A header alone is still an empty dataset
	if len(kept) < 2 {
		return "", fmt.Errorf("%w: no data rows after sanitization", ErrMalformedInput)
	}

	return strings.Join(kept, "\n"), nil
}
