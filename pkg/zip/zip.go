// Package zip bundles export files into a single downloadable archive.
package zip

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// File is one named entry in an export bundle.
type File struct {
	Name string
	Data []byte
}

// Archive writes the files into a zip and returns the archive bytes.
func Archive(files []File) ([]byte, error) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for _, f := range files {
		w, err := zw.Create(f.Name)
		if err != nil {
			return nil, fmt.Errorf("zip create %s: %w", f.Name, err)
		}
		if _, err := w.Write(f.Data); err != nil {
			return nil, fmt.Errorf("zip write %s: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
