// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for the
// operations the application actually performs: bucket checks, uploads, and
// deletes. This abstraction supports both AWS S3 and self-hosted MinIO.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Images
//
// Images is the part-image store built on top of Client. It uploads a photo
// and returns the public URL string that gets persisted on the Part record.
// The rest of the application treats that URL as opaque.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	images := storage.NewImages(client, cfg.Storage)
//	url, err := images.Upload(ctx, "A-100", "photo.jpg", r, size, "image/jpeg")
package storage
