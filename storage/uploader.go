package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

type UploadResult struct {
	Key      string `json:"key"`
	Location string `json:"location"`
	ETag     string `json:"etag"`
}

type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	GetPublicURL(key string) string
}

// SnapshotKey builds a unique object key for a standings snapshot taken at t,
// grouped by UTC day.
func SnapshotKey(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("standings/%s/%s-%s.json", t.Format("2006-01-02"), t.Format("150405"), uuid.NewString())
}
