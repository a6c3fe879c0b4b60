package catalog

import (
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"

	"github.com/AnshRaj112/feedbackhub-backend/internal/logging"
)

const DefaultPlaceholderImage = "/placeholder.svg?height=300&width=300"

// ImageResolver turns an optional image id into a URL the UI can render.
type ImageResolver interface {
	URL(publicID string) string
}

// Placeholder always answers with the same image.
type Placeholder string

func (p Placeholder) URL(string) string {
	if p == "" {
		return DefaultPlaceholderImage
	}
	return string(p)
}

// CloudinaryImages builds delivery URLs for product photos stored in Cloudinary.
type CloudinaryImages struct {
	cld      *cloudinary.Cloudinary
	folder   string
	fallback Placeholder
}

func NewCloudinaryImages(cloudName, apiKey, apiSecret, folder string, fallback string) (*CloudinaryImages, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryImages{cld: cld, folder: folder, fallback: Placeholder(fallback)}, nil
}

// URL returns a 300x300 padded rendition of publicID, or the placeholder when
// publicID is empty or the URL cannot be built.
func (c *CloudinaryImages) URL(publicID string) string {
	if publicID == "" {
		return c.fallback.URL("")
	}
	if c.folder != "" {
		publicID = c.folder + "/" + publicID
	}
	img, err := c.cld.Image(publicID)
	if err != nil {
		logging.Warn().Err(err).Str("public_id", publicID).Msg("cloudinary image asset")
		return c.fallback.URL("")
	}
	img.Transformation = "c_pad,b_white,h_300,w_300"
	u, err := img.String()
	if err != nil {
		logging.Warn().Err(err).Str("public_id", publicID).Msg("cloudinary image url")
		return c.fallback.URL("")
	}
	return u
}
