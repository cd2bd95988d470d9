package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"google.golang.org/api/option"
	storagev1 "google.golang.org/api/storage/v1"
)

// ObjectStorage stores uploaded files and hands back a publicly readable URL.
type ObjectStorage interface {
	Upload(ctx context.Context, path, contentType string, r io.Reader) (string, error)
}

type gcsStorage struct {
	srv    *storagev1.Service
	bucket string
}

func NewGCS(ctx context.Context, bucket, credentialsFile string) (ObjectStorage, error) {
	opts := []option.ClientOption{option.WithScopes(storagev1.DevstorageReadWriteScope)}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	srv, err := storagev1.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create storage service")
	}

	return &gcsStorage{srv: srv, bucket: bucket}, nil
}

func (g *gcsStorage) Upload(ctx context.Context, path, contentType string, r io.Reader) (string, error) {
	obj := &storagev1.Object{
		Name:        path,
		ContentType: contentType,
	}

	stored, err := g.srv.Objects.Insert(g.bucket, obj).
		Media(r).
		PredefinedAcl("publicRead").
		Context(ctx).
		Do()
	if err != nil {
		return "", errors.Wrapf(err, "upload %s", path)
	}

	return PublicURL(g.bucket, stored.Name), nil
}

// PublicURL builds the public address of an object, escaping each path segment.
func PublicURL(bucket, name string) string {
	segments := strings.Split(name, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, strings.Join(segments, "/"))
}
