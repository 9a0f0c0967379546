package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/kurin/blazer/b2"
)

type B2Store struct {
	client *b2.Client
	bucket *b2.Bucket
}

func NewB2Store(ctx context.Context, keyID, applicationKey, bucketName string) (*B2Store, error) {
	client, err := b2.NewClient(ctx, keyID, applicationKey)
	if err != nil {
		return nil, fmt.Errorf("create B2 client: %w", err)
	}

	bucket, err := client.Bucket(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("get bucket %s: %w", bucketName, err)
	}

	return &B2Store{client: client, bucket: bucket}, nil
}

func (s *B2Store) Put(ctx context.Context, key string, contentType string, r io.Reader) error {
	obj := s.bucket.Object(key)

	// Overwrite disabled: a key that already resolves is refused.
	if _, err := obj.Attrs(ctx); err == nil {
		return ErrKeyExists
	} else if !b2.IsNotExist(err) {
		return fmt.Errorf("check key %s: %w", key, err)
	}

	w := obj.NewWriter(ctx, b2.WithAttrsOption(&b2.Attrs{ContentType: contentType}))
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return fmt.Errorf("write object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finish object %s: %w", key, err)
	}
	return nil
}

func (s *B2Store) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	obj := s.bucket.Object(key)
	u, err := obj.AuthURL(ctx, ttl, "GET")
	if err != nil {
		return "", fmt.Errorf("sign url for %s: %w", key, err)
	}
	return u.String(), nil
}

func (s *B2Store) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Object(key).Delete(ctx); err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}
