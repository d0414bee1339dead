package file

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"skillsync-backend/internal/database"
	"skillsync-backend/internal/model"
)

// StorageClient uploads objects to an external store.
type StorageClient interface {
	UploadFile(objectName string, fileData io.Reader) error
	PublicURL(objectName string) string
}

// CloudStorageClient stores uploads in a Google Cloud Storage bucket.
type CloudStorageClient struct {
	BucketName string
	Ctx        context.Context
	Client     *storage.Client
}

// NewCloudStorageClient connects to GCS using ambient credentials.
func NewCloudStorageClient(bucketName string) (*CloudStorageClient, error) {
	ctx := context.Background()
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud storage client: %v", err)
	}
	return &CloudStorageClient{
		BucketName: bucketName,
		Ctx:        ctx,
		Client:     client,
	}, nil
}

// UploadFile writes the object into the bucket.
func (c *CloudStorageClient) UploadFile(objectName string, fileData io.Reader) error {
	bucket := c.Client.Bucket(c.BucketName)
	obj := bucket.Object(objectName)
	wc := obj.NewWriter(c.Ctx)
	if _, err := io.Copy(wc, fileData); err != nil {
		return fmt.Errorf("failed to write data to object: %v", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close object writer: %v", err)
	}
	return nil
}

// PublicURL returns the canonical object URL.
func (c *CloudStorageClient) PublicURL(objectName string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.BucketName, objectName)
}

// Store persists uploads either to an external object store (remote refs) or
// as File rows in the database (local refs). Storage being nil selects the
// local backend.
type Store struct {
	DB      *database.DBinstanceStruct
	Storage StorageClient
}

// NewStore creates a Store over the given database and optional object store.
func NewStore(db *database.DBinstanceStruct, storageClient StorageClient) *Store {
	return &Store{
		DB:      db,
		Storage: storageClient,
	}
}

// Persist stores the uploaded bytes and returns a tagged reference to them.
func (s *Store) Persist(content []byte, extension, prefix string) (model.FileRef, error) {
	if s.Storage != nil {
		objectName := fmt.Sprintf("%s/%s%s", prefix, uuid.NewString(), extension)
		if err := s.Storage.UploadFile(objectName, bytes.NewReader(content)); err != nil {
			return model.FileRef{}, err
		}
		return model.RemoteFileRef(s.Storage.PublicURL(objectName)), nil
	}

	record := model.File{
		Content:   content,
		Extension: extension,
	}
	if err := s.DB.Create(&record).Error; err != nil {
		return model.FileRef{}, err
	}
	return model.LocalFileRef(fmt.Sprintf("/api/v1/files/%d", record.ID)), nil
}

// DeleteLocal removes the File row behind a local reference. Remote objects
// are left in place; the bucket owns their lifecycle.
func (s *Store) DeleteLocal(ref model.FileRef) error {
	if ref.Kind != model.FileKindLocal {
		return nil
	}
	var id int
	if _, err := fmt.Sscanf(ref.Raw, "/api/v1/files/%d", &id); err != nil {
		return nil
	}
	return s.DB.Delete(&model.File{}, id).Error
}
