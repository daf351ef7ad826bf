package validation

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/elnormous/contenttype"
)

const bytesPerMegabyte = 1024 * 1024

// File describes a selected upload: base name, MIME type and size in bytes.
type File struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// FileRules configures the synchronous upload checks. AllowedTypes entries may
// use a type/* wildcard; MaxSizeMB is expressed in megabytes and zero disables
// the size check.
type FileRules struct {
	Required     bool
	AllowedTypes []string
	MaxSizeMB    float64
}

// CheckFile runs the upload checks in order (required, type, size) and
// returns the first failure. A nil file only fails when the field is required.
func CheckFile(file *File, rules FileRules) (Issue, bool) {
	if file == nil {
		if rules.Required {
			return Issue{Code: CodeRequired, Message: MessageRequired + "."}, false
		}
		return Issue{}, true
	}

	if len(rules.AllowedTypes) > 0 && !typeAllowed(file.Type, rules.AllowedTypes) {
		return Issue{
			Code:    CodeTypeNotAllowed,
			Message: fmt.Sprintf("Invalid file type. Allowed types: %s", strings.Join(rules.AllowedTypes, ", ")),
		}, false
	}

	if rules.MaxSizeMB > 0 && float64(file.Size) > rules.MaxSizeMB*bytesPerMegabyte {
		return Issue{
			Code:    CodeSizeExceeded,
			Message: fmt.Sprintf("File size exceeds the limit of %gMB.", rules.MaxSizeMB),
		}, false
	}

	return Issue{}, true
}

// FileFromPath stats path and derives the upload descriptor. The MIME type
// comes from the extension, falling back to content sniffing.
func FileFromPath(path string) (*File, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, errors.New("validation: file path is required")
	}

	info, err := os.Stat(trimmed)
	if err != nil {
		return nil, fmt.Errorf("validation: stat %s: %w", trimmed, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("validation: %s is a directory", trimmed)
	}

	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(trimmed)))
	if mimeType == "" {
		mimeType, err = sniffType(trimmed)
		if err != nil {
			return nil, err
		}
	}

	return &File{
		Name: info.Name(),
		Type: normalizeMediaType(mimeType),
		Size: info.Size(),
	}, nil
}

func sniffType(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("validation: open %s: %w", path, err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("validation: read %s: %w", path, err)
	}
	return http.DetectContentType(head[:n]), nil
}

func typeAllowed(fileType string, allowed []string) bool {
	got, ok := parseMediaType(fileType)
	for _, candidate := range allowed {
		want, wantOK := parseMediaType(candidate)
		if !ok || !wantOK {
			if strings.EqualFold(strings.TrimSpace(fileType), strings.TrimSpace(candidate)) {
				return true
			}
			continue
		}
		if want.Type != "*" && want.Type != got.Type {
			continue
		}
		if want.Subtype != "*" && want.Subtype != got.Subtype {
			continue
		}
		return true
	}
	return false
}

func parseMediaType(raw string) (contenttype.MediaType, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return contenttype.MediaType{}, false
	}
	mt, err := contenttype.ParseMediaType(trimmed)
	if err != nil {
		return contenttype.MediaType{}, false
	}
	mt.Type = strings.ToLower(mt.Type)
	mt.Subtype = strings.ToLower(mt.Subtype)
	return mt, true
}

// normalizeMediaType drops parameters such as charset so type comparisons
// work on the bare type/subtype pair.
func normalizeMediaType(raw string) string {
	mt, ok := parseMediaType(raw)
	if !ok {
		return strings.TrimSpace(raw)
	}
	return mt.Type + "/" + mt.Subtype
}
