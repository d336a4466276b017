package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// AllowedImageTypes defines the allowed image file extensions
var AllowedImageTypes = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// AllowedMaterialTypes covers marketing material uploads
var AllowedMaterialTypes = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".mp4": true, ".webm": true, ".pdf": true, ".zip": true,
}

// FileTypeForExt maps a file extension to the coarse material file type
func FileTypeForExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg", ".png", ".gif":
		return "image"
	case ".mp4", ".webm":
		return "video"
	case ".pdf", ".zip":
		return "application"
	default:
		return "other"
	}
}

// ValidateImageFile checks if the uploaded file is a valid image
func ValidateImageFile(file *multipart.FileHeader) error {
	if file.Size > 5*1024*1024 {
		return fmt.Errorf("file size exceeds 5MB limit")
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !AllowedImageTypes[ext] {
		return fmt.Errorf("invalid file type. Allowed types: jpg, jpeg, png, gif")
	}
	return nil
}

// ValidateMaterialFile checks if the uploaded file is acceptable marketing material
func ValidateMaterialFile(file *multipart.FileHeader) error {
	if file.Size > 50*1024*1024 {
		return fmt.Errorf("file size exceeds 50MB limit")
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !AllowedMaterialTypes[ext] {
		return fmt.Errorf("invalid file type for marketing material")
	}
	return nil
}

// SaveUploadedFile saves an uploaded file to the uploads directory and
// returns its public relative path
func SaveUploadedFile(file *multipart.FileHeader, uploadDir string) (string, error) {
	ext := filepath.Ext(file.Filename)
	filename := uuid.New().String() + ext
	dest := filepath.Join(uploadDir, filename)

	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create uploads directory: %v", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %v", err)
	}
	defer src.Close()

	dst, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %v", err)
	}
	defer dst.Close()

	if _, err := dst.ReadFrom(src); err != nil {
		return "", fmt.Errorf("failed to save file: %v", err)
	}

	return dest, nil
}
