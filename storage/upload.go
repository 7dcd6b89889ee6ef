package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/toqaosama/portfolio-backend/errs"
	"github.com/toqaosama/portfolio-backend/metrics"
)

// NotAnImageMessage is reported for every file whose declared type is not an
// image.
const NotAnImageMessage = "Please upload only image files"

// File is one upload candidate as received from the client.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Failure describes one file that was not uploaded.
type Failure struct {
	Name    string `json:"name"`
	Skipped bool   `json:"skipped"` // rejected before upload
	Message string `json:"message"`
}

// UploadReport lists the public URLs of stored files in upload order, and the
// files that were skipped or failed.
type UploadReport struct {
	URLs     []string  `json:"urls"`
	Failures []Failure `json:"failures"`
}

type Uploader struct {
	bucket Bucket
	now    func() time.Time
}

func NewUploader(bucket Bucket) *Uploader {
	return &Uploader{bucket: bucket, now: time.Now}
}

// IsImage reports whether contentType declares an image media type.
func IsImage(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}

// Key returns the object key for a file uploaded by owner at t.
func Key(ownerID, name string, t time.Time) string {
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))
	if base == "." || base == "/" || base == "" {
		base = "image"
	}
	return fmt.Sprintf("%s/%d-%s", ownerID, t.UnixMilli(), base)
}

// UploadImages uploads files one at a time. A file that is not an image or
// fails to upload is recorded in the report and the remaining files are
// still attempted.
func (u *Uploader) UploadImages(ctx context.Context, ownerID string, files []File) UploadReport {
	logger := log.With().Str("component", "uploader").Str("owner", ownerID).Logger()
	report := UploadReport{URLs: []string{}, Failures: []Failure{}}

	for _, f := range files {
		if !IsImage(f.ContentType) {
			logger.Info().Str("file", f.Name).Str("contentType", f.ContentType).Msg("skipping non-image upload")
			metrics.Uploads.WithLabelValues("skipped").Inc()
			report.Failures = append(report.Failures, Failure{Name: f.Name, Skipped: true, Message: NotAnImageMessage})
			continue
		}

		key := Key(ownerID, f.Name, u.now())
		if err := u.bucket.Upload(ctx, key, f.Body, f.Size, f.ContentType); err != nil {
			apiErr := errs.NewUploadError(f.Name, err)
			logger.Error().Err(err).Str("key", key).Msg("image upload failed")
			metrics.Uploads.WithLabelValues("failed").Inc()
			report.Failures = append(report.Failures, Failure{Name: f.Name, Message: apiErr.GetFullError()})
			continue
		}

		metrics.Uploads.WithLabelValues("ok").Inc()
		report.URLs = append(report.URLs, u.bucket.PublicURL(key))
	}
	return report
}
