package source

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zip"
)

var zipMagic = []byte("PK\x03\x04")

// IsZip reports whether data starts with a zip local file header.
func IsZip(data []byte) bool { return bytes.HasPrefix(data, zipMagic) }

// ReadMember extracts the named file from a zip archive held in data. An
// empty name selects the only file of a single-file archive.
func ReadMember(data []byte, name string) ([]byte, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("source: failed to open zip archive: %w", err)
	}
	var files []*zip.File
	for _, file := range archive.File {
		if strings.HasSuffix(file.Name, "/") {
			continue
		}
		files = append(files, file)
	}
	var member *zip.File
	if name == "" {
		if len(files) != 1 {
			return nil, fmt.Errorf("source: zip archive has %d files, member name required", len(files))
		}
		member = files[0]
	}
	for _, file := range files {
		if member == nil && file.Name == name {
			member = file
		}
	}
	if member == nil {
		return nil, &MemberNotFoundError{Name: name}
	}
	reader, err := member.Open()
	if err != nil {
		return nil, fmt.Errorf("source: failed to open %s: %w", member.Name, err)
	}
	defer reader.Close()
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("source: failed to read %s: %w", member.Name, err)
	}
	return content, nil
}
