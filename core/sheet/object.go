package sheet

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sync/atomic"

	"keys-monitor/core/reconcile"
	"keys-monitor/core/storage"

	"github.com/minio/minio-go/v7"
)

// ObjectStore keeps the sheet as one headerless CSV object, six columns per row.
// A write uploads the whole range as a new object version, so readers see
// either the previous range or the new one.
type ObjectStore struct {
	client storage.Client
	bucket string
	object string

	bucketReady atomic.Bool
}

// NewObjectStore creates a store for bucket/object.
func NewObjectStore(client storage.Client, bucket, object string) *ObjectStore {
	return &ObjectStore{client: client, bucket: bucket, object: object}
}

// LoadAll reads the sheet. A missing bucket or object is an empty sheet.
func (s *ObjectStore) LoadAll(ctx context.Context) (*reconcile.Snapshot, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
	if err != nil {
		if storage.IsNotFound(err) {
			return reconcile.NewSnapshot(nil), nil
		}
		return nil, fmt.Errorf("failed to get sheet object: %w", err)
	}
	defer obj.Close()

	reader := csv.NewReader(obj)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		if storage.IsNotFound(err) {
			return reconcile.NewSnapshot(nil), nil
		}
		return nil, fmt.Errorf("failed to read sheet object: %w", err)
	}

	rows := make([]reconcile.Row, 0, len(records))
	for _, values := range records {
		rows = append(rows, reconcile.RowFromValues(values))
	}
	return reconcile.NewSnapshot(rows), nil
}

// ReplaceAll uploads rows as the new sheet, creating the bucket on first use.
func (s *ObjectStore) ReplaceAll(ctx context.Context, rows []reconcile.Row) error {
	if err := s.ensureBucket(ctx); err != nil {
		return err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, r := range rows {
		if err := w.Write(r.Values()); err != nil {
			return fmt.Errorf("failed to encode row %q: %w", r.Unit, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to encode sheet: %w", err)
	}

	_, err := s.client.PutObject(ctx, s.bucket, s.object, &buf, int64(buf.Len()), minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return fmt.Errorf("failed to put sheet object: %w", err)
	}
	return nil
}

func (s *ObjectStore) ensureBucket(ctx context.Context) error {
	if s.bucketReady.Load() {
		return nil
	}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
		}
	}

	s.bucketReady.Store(true)
	return nil
}
