// Package archive exports change records to object storage as NDJSON.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/salon-admin/internal/audit"
	"github.com/BruksfildServices01/salon-admin/internal/metrics"
)

const DefaultBatchSize = 1000

var ErrNothingToExport = errors.New("no change records to export")

// Uploader is the subset of the S3 client the exporter needs.
type Uploader interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Source lists change records with log_id > afterID, oldest first.
type Source interface {
	ListChangeRecordsAfter(ctx context.Context, afterID uint, limit int) ([]audit.ChangeRecord, error)
}

type S3Options struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// NewS3Uploader builds an S3 client. A custom endpoint switches to
// path-style addressing for S3-compatible stores.
func NewS3Uploader(opts S3Options) *s3.Client {
	o := s3.Options{Region: opts.Region}
	if opts.AccessKey != "" {
		o.Credentials = credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")
	}
	if opts.Endpoint != "" {
		o.BaseEndpoint = aws.String(opts.Endpoint)
		o.UsePathStyle = true
	}
	return s3.New(o)
}

// Result describes one uploaded archive object.
type Result struct {
	Key    string `json:"key"`
	FromID uint   `json:"from_id"`
	ToID   uint   `json:"to_id"`
	Count  int    `json:"count"`
}

type Exporter struct {
	source    Source
	uploader  Uploader
	bucket    string
	prefix    string
	batchSize int
	log       *logrus.Logger

	mu     sync.Mutex
	cursor uint
}

func NewExporter(source Source, uploader Uploader, bucket, prefix string, log *logrus.Logger) *Exporter {
	return &Exporter{
		source:    source,
		uploader:  uploader,
		bucket:    bucket,
		prefix:    prefix,
		batchSize: DefaultBatchSize,
		log:       log,
	}
}

// Export uploads the next batch of records with log_id > afterID.
// Returns ErrNothingToExport when there is none.
func (e *Exporter) Export(ctx context.Context, afterID uint) (Result, error) {
	records, err := e.source.ListChangeRecordsAfter(ctx, afterID, e.batchSize)
	if err != nil {
		return Result{}, fmt.Errorf("load change records: %w", err)
	}
	if len(records) == 0 {
		return Result{}, ErrNothingToExport
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return Result{}, fmt.Errorf("encode change record %d: %w", rec.ID, err)
		}
	}

	res := Result{
		FromID: records[0].ID,
		ToID:   records[len(records)-1].ID,
		Count:  len(records),
	}
	res.Key = e.objectKey(res.FromID, res.ToID)

	_, err = e.uploader.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(res.Key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("application/x-ndjson"),
	})
	if err != nil {
		metrics.ArchiveUploads.WithLabelValues("error").Inc()
		return Result{}, fmt.Errorf("upload %s: %w", res.Key, err)
	}
	metrics.ArchiveUploads.WithLabelValues("ok").Inc()

	e.log.WithFields(logrus.Fields{
		"key":     res.Key,
		"from_id": res.FromID,
		"to_id":   res.ToID,
		"count":   res.Count,
	}).Info("change records archived")

	return res, nil
}

// ExportPending exports every batch past the exporter's cursor and
// advances it.
func (e *Exporter) ExportPending(ctx context.Context) ([]Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []Result
	for {
		res, err := e.Export(ctx, e.cursor)
		if errors.Is(err, ErrNothingToExport) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		e.cursor = res.ToID
		out = append(out, res)
	}
}

// Cursor is the highest log id exported so far.
func (e *Exporter) Cursor() uint {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursor
}

// Run exports pending records every interval until ctx is cancelled.
func (e *Exporter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := e.ExportPending(ctx); err != nil && ctx.Err() == nil {
				e.log.WithError(err).Error("change log archive failed")
			}
		}
	}
}

func (e *Exporter) objectKey(from, to uint) string {
	key := fmt.Sprintf("changelogs/%d-%d-%s.ndjson", from, to, uuid.NewString())
	if e.prefix == "" {
		return key
	}
	return e.prefix + "/" + key
}
