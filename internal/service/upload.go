package service

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"travelbook/internal/apperror"
	"travelbook/internal/storage"
)

// Upload is one file taken from a multipart request.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

func validateUploads(files []Upload, max int) error {
	if max > 0 && len(files) > max {
		return apperror.Validation(fmt.Sprintf("At most %d images can be uploaded", max))
	}

	for _, f := range files {
		if _, ok := allowedImageTypes[f.ContentType]; !ok {
			return apperror.Validation("Only JPEG, PNG, GIF and WebP images are allowed").
				WithDetails(map[string]any{"file": f.FileName, "contentType": f.ContentType})
		}
	}

	return nil
}

type uploader struct {
	storage storage.Storage
	log     *logrus.Entry
}

// uploadAll stores every file under folder. On failure the files already stored are removed.
func (u *uploader) uploadAll(ctx context.Context, folder string, files []Upload) (urls, objects []string, err error) {
	for _, f := range files {
		objectName, url, err := u.storage.UploadImage(ctx, folder, f.FileName, f.ContentType, f.Reader, f.Size)
		if err != nil {
			u.discard(ctx, objects)
			return nil, nil, fmt.Errorf("failed to upload image: %w", err)
		}
		urls = append(urls, url)
		objects = append(objects, objectName)
	}

	return urls, objects, nil
}

// discard removes uploaded objects whose store write did not happen.
func (u *uploader) discard(ctx context.Context, objects []string) {
	for _, objectName := range objects {
		if err := u.storage.DeleteImage(ctx, objectName); err != nil {
			u.log.WithError(err).WithField("object", objectName).Warn("failed to remove orphaned image")
		}
	}
}
