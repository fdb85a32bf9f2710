package service

import (
	"context"
	"fmt"
	"io"
)

type fakeStore struct {
	uploads []string
	deleted []string
}

func (f *fakeStore) UploadImage(_ context.Context, file io.Reader, folder, publicID string) (string, string, error) {
	if _, err := io.ReadAll(file); err != nil {
		return "", "", err
	}
	f.uploads = append(f.uploads, folder+"/"+publicID)
	url := fmt.Sprintf("https://res.cloudinary.com/test/image/upload/%s/%s.png", folder, publicID)
	return url, url, nil
}

func (f *fakeStore) UploadDocument(_ context.Context, file io.Reader, folder, publicID string) (string, error) {
	if _, err := io.ReadAll(file); err != nil {
		return "", err
	}
	f.uploads = append(f.uploads, folder+"/"+publicID)
	return fmt.Sprintf("https://res.cloudinary.com/test/raw/upload/%s/%s", folder, publicID), nil
}

func (f *fakeStore) DeleteByURL(_ context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	return nil
}

type countingInvalidator struct {
	ids []uint
}

func (c *countingInvalidator) Invalidate(id uint) { c.ids = append(c.ids, id) }
