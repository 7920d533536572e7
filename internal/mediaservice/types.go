package mediaservice

import (
	"cloud.google.com/go/storage"
)

// MediaStore writes article media to a configured GCS bucket.
type MediaStore struct {
	client *storage.Client
	bucket string
}
