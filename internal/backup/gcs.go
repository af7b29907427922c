package backup

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"

	"github.com/turtlefin/turtle-finance/internal/domain"
)

// UploadSnapshot writes a CSV snapshot of both collections to the given GCS
// bucket and returns the object name. Application Default Credentials are
// assumed.
func UploadSnapshot(ctx context.Context, bucket string, expenses, incomes []domain.Record) (string, error) {
	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, expenses, incomes); err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("snapshots/%s/records.csv", time.Now().UTC().Format("2006/01/02/150405"))
	if err := upload(ctx, bucket, objectName, &buf); err != nil {
		return "", err
	}
	return objectName, nil
}

func upload(ctx context.Context, bucket, objectName string, body io.Reader) error {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("backup: create storage client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := client.Bucket(bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = "text/csv"
	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()
		return fmt.Errorf("backup: copy snapshot to GCS writer: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("backup: finalize upload: %w", err)
	}
	return nil
}
