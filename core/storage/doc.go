// Package storage wraps the MinIO Go client for the object-backed sheet store.
//
// The Client interface covers the four calls the sheet needs (bucket
// check/create, object get/put) so tests can swap in mocks.Client. Works
// against AWS S3 and self-hosted MinIO.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	rc, err := client.GetObject(ctx, cfg.Storage.Bucket, cfg.Storage.Object, minio.GetObjectOptions{})
package storage
