// Package profile stores the display profile snapshot of each client.
package profile

import (
	"context"
	"encoding/json"

	"scooter/internal/domain/constants"
	"scooter/internal/domain/entity"
	"scooter/internal/domain/service"

	"github.com/pkg/errors"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/memblob"  // mem:// buckets
	"gocloud.dev/gcerrors"
)

// BlobStore keeps snapshots as JSON objects in a Go CDK bucket.
type BlobStore struct {
	bucket *blob.Bucket
}

var _ service.ProfileStore = (*BlobStore)(nil)

// OpenBlobStore opens the bucket behind bucketURL, e.g. "file:///var/lib/scooter" or "mem://".
func OpenBlobStore(ctx context.Context, bucketURL string) (*BlobStore, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "open profile bucket %q", bucketURL)
	}

	return &BlobStore{bucket: bucket}, nil
}

func (s *BlobStore) Save(ctx context.Context, clientID string, snapshot entity.ProfileSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return errors.Wrap(err, "encode profile snapshot")
	}

	err = s.bucket.WriteAll(ctx, snapshotKey(clientID), data, &blob.WriterOptions{ContentType: "application/json"})

	return errors.Wrap(err, "write profile snapshot")
}

func (s *BlobStore) Load(ctx context.Context, clientID string) (*entity.ProfileSnapshot, error) {
	data, err := s.bucket.ReadAll(ctx, snapshotKey(clientID))
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, errors.WithStack(service.ErrProfileNotFound)
		}

		return nil, errors.Wrap(err, "read profile snapshot")
	}

	var snapshot entity.ProfileSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, errors.Wrap(err, "decode profile snapshot")
	}

	return &snapshot, nil
}

func (s *BlobStore) Delete(ctx context.Context, clientID string) error {
	err := s.bucket.Delete(ctx, snapshotKey(clientID))
	if err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return errors.Wrap(err, "delete profile snapshot")
	}

	return nil
}

func (s *BlobStore) Close() error {
	return errors.Wrap(s.bucket.Close(), "close profile bucket")
}

func snapshotKey(clientID string) string {
	return constants.ProfileKeyPrefix + clientID
}
