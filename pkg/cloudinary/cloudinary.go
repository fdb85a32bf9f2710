package cloudinary

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/config"
)

// Client is the document store used for avatars, company logos and resumes.
type Client interface {
	UploadImage(ctx context.Context, file io.Reader, folder, publicID string) (url, thumbnailURL string, err error)
	UploadDocument(ctx context.Context, file io.Reader, folder, publicID string) (url string, err error)
	DeleteByURL(ctx context.Context, url string) error
}

// Optimized image params for fast frontend loading
const (
	ImageWidth = 800
	ThumbWidth = 200
)

// BuildOptimizedImageURL returns a Cloudinary URL with transformations for optimized delivery.
func BuildOptimizedImageURL(cloudName, publicID string, width int) string {
	if width <= 0 {
		width = ImageWidth
	}
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/q_auto,f_auto,w_%d,c_fill/%s",
		cloudName, width, publicID)
}

const imageEager = "q_auto,f_auto,w_400,h_400,c_fill"

var eagerAsyncFalse = false

type clientImpl struct {
	cloudName string
	uploader  *uploader.API
}

// UploadImage uploads an image with an eager square thumbnail.
func (c *clientImpl) UploadImage(ctx context.Context, file io.Reader, folder, publicID string) (url, thumbnailURL string, err error) {
	result, err := c.uploader.Upload(ctx, file, uploader.UploadParams{
		Folder:     folder,
		PublicID:   publicID,
		Eager:      imageEager,
		EagerAsync: &eagerAsyncFalse,
	})
	if err != nil {
		return "", "", err
	}
	if result.Error.Message != "" {
		return "", "", fmt.Errorf("cloudinary: %s", result.Error.Message)
	}
	url = result.SecureURL
	if len(result.Eager) > 0 {
		thumbnailURL = result.Eager[0].SecureURL
	}
	if thumbnailURL == "" {
		thumbnailURL = BuildOptimizedImageURL(c.cloudName, result.PublicID, ThumbWidth)
	}
	return url, thumbnailURL, nil
}

// UploadDocument stores a file (PDF, DOCX) as a raw asset and returns its URL.
func (c *clientImpl) UploadDocument(ctx context.Context, file io.Reader, folder, publicID string) (string, error) {
	result, err := c.uploader.Upload(ctx, file, uploader.UploadParams{
		Folder:       folder,
		PublicID:     publicID,
		ResourceType: "raw",
	})
	if err != nil {
		return "", err
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary: %s", result.Error.Message)
	}
	return result.SecureURL, nil
}

// DeleteByURL destroys the asset behind a secure URL produced by this client.
func (c *clientImpl) DeleteByURL(ctx context.Context, url string) error {
	resourceType, publicID, ok := PublicIDFromURL(url)
	if !ok {
		return fmt.Errorf("not a cloudinary url: %s", url)
	}
	_, err := c.uploader.Destroy(ctx, uploader.DestroyParams{PublicID: publicID, ResourceType: resourceType})
	return err
}

// PublicIDFromURL extracts the resource type and public id from
// https://res.cloudinary.com/<cloud>/<type>/upload/[v123/]<folder>/<id>.<ext>.
// Image ids lose their extension, raw ids keep it.
func PublicIDFromURL(url string) (resourceType, publicID string, ok bool) {
	i := strings.Index(url, "/upload/")
	if i < 0 || !strings.Contains(url, "res.cloudinary.com/") {
		return "", "", false
	}
	head := strings.TrimSuffix(url[:i], "/")
	resourceType = head[strings.LastIndex(head, "/")+1:]
	rest := url[i+len("/upload/"):]
	if parts := strings.SplitN(rest, "/", 2); len(parts) == 2 && len(parts[0]) > 1 && parts[0][0] == 'v' &&
		strings.Trim(parts[0][1:], "0123456789") == "" {
		rest = parts[1]
	}
	if resourceType != "raw" {
		rest = strings.TrimSuffix(rest, path.Ext(rest))
	}
	return resourceType, rest, rest != ""
}

// NewClientFromParams builds a Client from Cloudinary cloud name, API key, and secret.
func NewClientFromParams(cloudName, apiKey, apiSecret string) (Client, error) {
	cfg, err := config.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	up, err := uploader.NewWithConfiguration(cfg)
	if err != nil {
		return nil, err
	}
	return &clientImpl{
		cloudName: cloudName,
		uploader:  up,
	}, nil
}
