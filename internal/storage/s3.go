// Package storage holds the S3 backed archive for downloaded paper PDFs.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/yppgo/patentgraph/internal/util"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const pdfPrefix = "pdfs"

func NewS3Client(ctx context.Context) *s3.Client {
	region := util.GetEnv("AWS_REGION")
	endpoint := util.GetEnv("AWS_ENDPOINT")
	accessKey := util.GetEnv("AWS_ACCESS_KEY")
	secretKey := util.GetEnv("AWS_SECRET_KEY")
	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion(region),
		config.WithBaseEndpoint(endpoint),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKey,
			secretKey,
			"",
		)),
	)
	if err != nil {
		return nil
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})
	return client
}

// PDFKey returns the archive key for a DOI. Slashes in the DOI are flattened
// so the key stays a single object under the pdf prefix.
func PDFKey(doi string) string {
	return fmt.Sprintf("%s/%s.pdf", pdfPrefix, strings.ReplaceAll(doi, "/", "_"))
}

// ArchivePDF stores a downloaded paper PDF and returns its key.
func ArchivePDF(ctx context.Context, client *s3.Client, doi string, pdf io.ReadSeeker) (string, error) {
	bucket := util.GetEnv("AWS_BUCKET")
	key := PDFKey(doi)
	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        pdf,
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive pdf for doi %s: %w", doi, err)
	}

	return key, nil
}

// GetPDF retrieves an archived PDF by its key.
func GetPDF(ctx context.Context, client *s3.Client, key string) ([]byte, error) {
	bucket := util.GetEnv("AWS_BUCKET")
	result, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get pdf from S3: %w", err)
	}
	defer result.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, result.Body); err != nil {
		return nil, fmt.Errorf("failed to read pdf contents: %w", err)
	}

	return buf.Bytes(), nil
}

// GenerateDownloadLink presigns a time limited link for an archived PDF.
func GenerateDownloadLink(ctx context.Context, client *s3.Client, key string) (string, error) {
	bucket := util.GetEnv("AWS_BUCKET")

	presigner := s3.NewPresignClient(client)

	out, err := presigner.PresignGetObject(
		ctx,
		&s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		},
		s3.WithPresignExpires(15*time.Minute),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate download link: %w", err)
	}

	return out.URL, nil
}

// ListArchivedPDFs lists the keys of all archived PDFs.
func ListArchivedPDFs(ctx context.Context, client *s3.Client) ([]string, error) {
	bucket := util.GetEnv("AWS_BUCKET")

	var keys []string
	listInput := &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(pdfPrefix + "/"),
	}

	for {
		listOutput, err := client.ListObjectsV2(ctx, listInput)
		if err != nil {
			return nil, fmt.Errorf("failed to list archived pdfs: %w", err)
		}

		for _, obj := range listOutput.Contents {
			if obj.Key != nil {
				keys = append(keys, *obj.Key)
			}
		}

		if listOutput.IsTruncated != nil && *listOutput.IsTruncated {
			listInput.ContinuationToken = listOutput.NextContinuationToken
		} else {
			break
		}
	}

	return keys, nil
}
