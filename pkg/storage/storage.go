// Package storage provides blob storage operations with an Azure Blob Storage implementation.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"golang.org/x/sync/errgroup"

	"github.com/societyfixer/hustings/pkg/lifecycle"
)

// System manages blob storage operations and lifecycle coordination.
type System interface {
	// Start registers a startup hook that initializes the storage containers.
	Start(lc *lifecycle.Coordinator) error
	// Upload streams data to a blob at the given key with the specified content type.
	Upload(ctx context.Context, bucket, key string, reader io.Reader, contentType string) error
	// Download returns a stream for the blob at the given key along with its content type.
	// The caller must close the reader. Returns ErrNotFound if the blob does not exist.
	Download(ctx context.Context, bucket, key string) (io.ReadCloser, string, error)
	// Delete removes the blob at the given key. Returns ErrNotFound if the blob does not exist.
	Delete(ctx context.Context, bucket, key string) error
	// Remove deletes a set of blobs concurrently, continuing past individual
	// failures. Each failure is logged; Remove never returns an error because
	// orphaned blobs are tolerated in favor of completing the caller's operation.
	Remove(ctx context.Context, refs []Ref)
	// Exists reports whether a blob exists at the given key.
	Exists(ctx context.Context, bucket, key string) (bool, error)
	// Buckets returns the configured bucket names.
	Buckets() []string
}

// Ref identifies a blob by bucket and key.
type Ref struct {
	Bucket string
	Key    string
}

type azure struct {
	client  *azblob.Client
	buckets []string
	logger  *slog.Logger
}

// New creates a storage system from the given configuration.
// It validates the connection string and creates the Azure client
// but does not establish a connection until Start is called.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	client, err := azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &azure{
		client:  client,
		buckets: cfg.Buckets,
		logger:  logger.With("system", "storage"),
	}, nil
}

func (a *azure) Start(lc *lifecycle.Coordinator) error {
	a.logger.Info("starting storage system")

	lc.OnStartup(func() {
		for _, bucket := range a.buckets {
			_, err := a.client.CreateContainer(lc.Context(), bucket, nil)
			if err != nil {
				if !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
					a.logger.Error("storage container initialization failed", "container", bucket, "error", err)
					return
				}
			}
		}

		a.logger.Info("storage containers ready", "containers", a.buckets)
	})

	return nil
}

func (a *azure) Upload(ctx context.Context, bucket, key string, reader io.Reader, contentType string) error {
	if err := a.validateRef(bucket, key); err != nil {
		return err
	}

	opts := &azblob.UploadStreamOptions{
		HTTPHeaders: &blob.HTTPHeaders{
			BlobContentType: &contentType,
		},
	}

	_, err := a.client.UploadStream(ctx, bucket, key, reader, opts)
	if err != nil {
		return fmt.Errorf("upload blob %s/%s: %w", bucket, key, err)
	}

	return nil
}

func (a *azure) Download(ctx context.Context, bucket, key string) (io.ReadCloser, string, error) {
	if err := a.validateRef(bucket, key); err != nil {
		return nil, "", err
	}

	resp, err := a.client.DownloadStream(ctx, bucket, key, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("download blob %s/%s: %w", bucket, key, err)
	}

	contentType := ""
	if resp.ContentType != nil {
		contentType = *resp.ContentType
	}

	return resp.Body, contentType, nil
}

func (a *azure) Delete(ctx context.Context, bucket, key string) error {
	if err := a.validateRef(bucket, key); err != nil {
		return err
	}

	_, err := a.client.DeleteBlob(ctx, bucket, key, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete blob %s/%s: %w", bucket, key, err)
	}

	return nil
}

func (a *azure) Remove(ctx context.Context, refs []Ref) {
	var g errgroup.Group

	for _, ref := range refs {
		g.Go(func() error {
			if err := a.Delete(ctx, ref.Bucket, ref.Key); err != nil {
				a.logger.Warn("blob removal failed",
					"container", ref.Bucket,
					"key", ref.Key,
					"error", err,
				)
			}
			return nil
		})
	}

	g.Wait()
}

func (a *azure) Exists(ctx context.Context, bucket, key string) (bool, error) {
	if err := a.validateRef(bucket, key); err != nil {
		return false, err
	}

	blobClient := a.client.
		ServiceClient().
		NewContainerClient(bucket).
		NewBlobClient(key)

	_, err := blobClient.GetProperties(ctx, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("check blob existence %s/%s: %w", bucket, key, err)
	}

	return true, nil
}

func (a *azure) Buckets() []string {
	return a.buckets
}

func (a *azure) validateRef(bucket, key string) error {
	if !a.knownBucket(bucket) {
		return ErrUnknownBucket
	}
	if key == "" {
		return ErrEmptyKey
	}
	if strings.Contains(key, "..") {
		return ErrInvalidKey
	}
	return nil
}

func (a *azure) knownBucket(bucket string) bool {
	for _, b := range a.buckets {
		if b == bucket {
			return true
		}
	}
	return false
}
