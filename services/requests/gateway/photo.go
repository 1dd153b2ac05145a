package gateway

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Uploader is the part of the Cloudinary upload API the photo store needs
type Uploader interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
}

// PhotoGW stores problem photos on Cloudinary
type PhotoGW struct {
	uploader Uploader
	folder   string
}

// NewPhotoGW creates a photo store uploading under folder
func NewPhotoGW(up Uploader, folder string) *PhotoGW {
	return &PhotoGW{uploader: up, folder: folder}
}

// NewCloudinary connects to Cloudinary from a cloudinary:// URL
func NewCloudinary(url string) (*cloudinary.Cloudinary, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return cld, nil
}

// Upload stores r as path and returns its HTTPS URL
func (g *PhotoGW) Upload(ctx context.Context, r io.Reader, path string) (string, error) {
	result, err := g.uploader.Upload(ctx, r, uploader.UploadParams{
		PublicID:     path,
		Folder:       g.folder,
		ResourceType: "image",
		Overwrite:    api.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("failed to upload photo: %s", result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("failed to upload photo: no url returned")
	}
	return result.SecureURL, nil
}
