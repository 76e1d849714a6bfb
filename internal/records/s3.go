package records

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the subset of the S3 client used by S3Archive.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Archive keeps one JSON object per submission, keyed by the preferred
// date so staff can list a day's requests.
type S3Archive struct {
	client S3API
	bucket string
	prefix string
}

func NewS3Archive(client S3API, bucket, prefix string) (*S3Archive, error) {
	if client == nil {
		return nil, errors.New("records: s3 client required")
	}
	if strings.TrimSpace(bucket) == "" {
		return nil, errors.New("records: archive bucket required")
	}
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &S3Archive{client: client, bucket: bucket, prefix: prefix}, nil
}

func (a *S3Archive) Name() string { return "s3" }

// Key returns the object key for a submission.
func (a *S3Archive) Key(submissionID string, rec Record) string {
	day := rec.Date
	if day == "" {
		day = "undated"
	}
	return fmt.Sprintf("%s%s/%s.json", a.prefix, day, submissionID)
}

func (a *S3Archive) Write(ctx context.Context, submissionID string, rec Record) error {
	if submissionID == "" {
		return errors.New("records: submission id required")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("records: marshal archive object: %w", err)
	}
	key := a.Key(submissionID, rec)
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("records: s3 put %s: %w", key, err)
	}
	return nil
}
