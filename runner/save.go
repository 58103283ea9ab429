package runner

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rom8726/uutreport"
)

// fileTimeLayout formats the timestamp prefix of saved report files. Colons
// are dropped so the name is valid on every filesystem.
const fileTimeLayout = "2006-01-02T150405"

// SaveJSON writes the report as an indented JSON document into dir and
// returns the full path. The file is named
// <timestamp>-<sequence name>-<serial number>_WATS.json.
func SaveJSON(report *uutreport.Report, dir string) (string, error) {
	doc, err := report.Document()
	if err != nil {
		return "", err
	}

	pretty, err := json.MarshalIndent(json.RawMessage(doc), "", "  ")
	if err != nil {
		return "", fmt.Errorf("indent report: %w", err)
	}

	name := fmt.Sprintf("%s-%s-%s_WATS.json",
		time.Now().Format(fileTimeLayout),
		sanitizeFilePart(report.Root.Name),
		sanitizeFilePart(report.SN),
	)
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, pretty, 0o644); err != nil {
		return "", fmt.Errorf("write report file: %w", err)
	}

	return path, nil
}

// sanitizeFilePart replaces characters that are unsafe in file names
func sanitizeFilePart(part string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		default:
			return r
		}
	}, part)
}
