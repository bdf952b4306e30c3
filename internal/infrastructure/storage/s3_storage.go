// Package storage guarda en S3 los documentos subidos para firma electrónica.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gabriel-vasile/mimetype"

	"github.com/jhoicas/Obrix-api/internal/application/ports"
	"github.com/jhoicas/Obrix-api/internal/domain"
)

// API subconjunto del cliente S3 usado por el adaptador.
type API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Storage implementa ports.ObjectStorage sobre un bucket.
type S3Storage struct {
	client API
	bucket string
}

var _ ports.ObjectStorage = (*S3Storage)(nil)

// NewClient crea el cliente S3. Con endpoint propio (LocalStack/MinIO) fuerza path-style.
func NewClient(cfg aws.Config, endpoint *string) *s3.Client {
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != nil {
			o.BaseEndpoint = endpoint
			o.UsePathStyle = true
		}
	})
}

// NewS3Storage crea el adaptador.
func NewS3Storage(client API, bucket string) *S3Storage {
	return &S3Storage{client: client, bucket: bucket}
}

// DetectContentType tipo MIME a partir del contenido (no de la extensión).
func DetectContentType(data []byte) string {
	return mimetype.Detect(data).String()
}

// Put sube el objeto con el content type detectado.
func (s *S3Storage) Put(ctx context.Context, key string, data []byte) (string, error) {
	contentType := DetectContentType(data)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3: subir %s: %w", key, err)
	}
	return contentType, nil
}

// Get devuelve el cuerpo del objeto; domain.ErrNotFound si la clave no existe.
func (s *S3Storage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("s3: descargar %s: %w", key, err)
	}
	return out.Body, nil
}

// Delete elimina el objeto (S3 no falla si no existe).
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("s3: borrar %s: %w", key, err)
	}
	return nil
}
