package utils

import (
	"errors"
	"mime/multipart"
	"medportal-service/internal/pkg/constvars"
	"path/filepath"
	"regexp"
	"strings"
)

var resourceIDRegex = regexp.MustCompile(constvars.RegexResourceID)

var allowedImageExtensions = []string{".jpg", ".jpeg", ".png"}

func ValidateImage(fileHeader *multipart.FileHeader, maxSizeInMegabytes int64) error {
	if fileHeader == nil {
		return errors.New("file is missing")
	}

	if fileHeader.Size > maxSizeInMegabytes*1024*1024 {
		return errors.New("file size exceeds the maximum limit")
	}

	fileExtension := strings.ToLower(filepath.Ext(fileHeader.Filename))
	for _, ext := range allowedImageExtensions {
		if fileExtension == ext {
			return nil
		}
	}
	return errors.New("invalid file format")
}

// ValidateUrlParamID accepts the opaque ids the backend hands out (uuids, object ids, slugs).
func ValidateUrlParamID(param string) error {
	if param == "" {
		return errors.New("parameter is missing from url path")
	}
	if !resourceIDRegex.MatchString(param) {
		return errors.New("parameter is not a valid id")
	}
	return nil
}
