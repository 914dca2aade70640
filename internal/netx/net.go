// Package netx builds HTTP request bodies that the standard library leaves
// to the caller.
package netx

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// FormField is a plain text field sent alongside a file.
type FormField struct {
	Name  string
	Value string
}

// NewFileForm reads the file at path and encodes it as a multipart/form-data
// body under fileField, followed by the extra text fields in the given order.
// It returns the body and the Content-Type header value (with boundary).
func NewFileForm(fileField, path string, fields ...FormField) (*bytes.Buffer, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	part, err := w.CreateFormFile(fileField, filepath.Base(path))
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}

	for _, fld := range fields {
		if err := w.WriteField(fld.Name, fld.Value); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return body, w.FormDataContentType(), nil
}
