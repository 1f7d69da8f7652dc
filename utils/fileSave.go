package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// SaveImageWithThumb stores an uploaded image under folder and writes a
// 300px-wide thumbnail next to it under folder/thumb. Returns the stored
// filename (without path).
func SaveImageWithThumb(file multipart.File, header *multipart.FileHeader, folder string) (string, error) {
	img, err := imaging.Decode(file)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	if err := os.MkdirAll(filepath.Join(folder, "thumb"), os.ModePerm); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%s%s", GetUUID(), filepath.Ext(header.Filename))
	if err := imaging.Save(img, filepath.Join(folder, filename)); err != nil {
		return "", err
	}

	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(folder, "thumb", filename)); err != nil {
		return "", err
	}

	return filename, nil
}
