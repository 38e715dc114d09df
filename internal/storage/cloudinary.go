package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// thumbnail transformation applied to every delivery URL
const deliveryTransformation = "c_fill,h_250,w_250"

type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryUploader(cloudName, apiKey, apiSecret string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryUploader{cld: cld}, nil
}

// Upload pushes the file to cloudinary under publicID and returns the
// transformed delivery URL that gets persisted on the photo record.
func (u *CloudinaryUploader) Upload(ctx context.Context, file io.Reader, publicID string) (string, error) {
	_, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:  publicID,
		Overwrite: api.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}

	img, err := u.cld.Image(publicID)
	if err != nil {
		return "", fmt.Errorf("cloudinary image: %w", err)
	}
	img.Transformation = deliveryTransformation

	url, err := img.String()
	if err != nil {
		return "", fmt.Errorf("cloudinary url: %w", err)
	}
	return url, nil
}
