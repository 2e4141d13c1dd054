package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ObjectPutter is the part of the S3 client the archive needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ReportArchive keeps a copy of every generated report file in an S3 bucket
type ReportArchive struct {
	client ObjectPutter
	bucket string
	prefix string
}

func NewReportArchive(client ObjectPutter, bucket, prefix string) *ReportArchive {
	return &ReportArchive{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

// Key returns the object key for a report file, grouped by year and month.
func (a *ReportArchive) Key(fileName string, now time.Time) string {
	return path.Join(a.prefix, now.Format("2006"), now.Format("01"), fileName)
}

// Upload stores the file and returns its object key
func (a *ReportArchive) Upload(ctx context.Context, fileName, contentType string, data []byte, now time.Time) (string, error) {
	key := a.Key(fileName, now)

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(a.bucket),
		Key:                  aws.String(key),
		Body:                 bytes.NewReader(data),
		ContentLength:        aws.Int64(int64(len(data))),
		ContentType:          aws.String(contentType),
		ContentDisposition:   aws.String(fmt.Sprintf("attachment; filename=%q", fileName)),
		ServerSideEncryption: types.ServerSideEncryptionAes256,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to s3://%s: %w", key, a.bucket, err)
	}

	return key, nil
}

// ObjectURL returns the s3:// location of a key
func (a *ReportArchive) ObjectURL(key string) string {
	return fmt.Sprintf("s3://%s/%s", a.bucket, key)
}
