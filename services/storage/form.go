package storage

import (
	"errors"
	"io"
	"mime/multipart"
)

const maxLogoSize = 5 * 1024 * 1024 // 5MB

// ErrFileTooLarge is returned for uploads above the logo size limit.
var ErrFileTooLarge = errors.New("file exceeds maximum allowed size")

// ReadFormFile reads an uploaded file into memory and returns its bytes and
// content type. Files over the logo size limit are rejected.
func ReadFormFile(fh *multipart.FileHeader) ([]byte, string, error) {
	if fh.Size > maxLogoSize {
		return nil, "", ErrFileTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxLogoSize+1))
	if err != nil {
		return nil, "", err
	}
	if int64(len(data)) > maxLogoSize {
		return nil, "", ErrFileTooLarge
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return data, contentType, nil
}
