package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/ahmadqo/certitrust/internal/config"
)

type StorageService struct {
	client   *minio.Client
	bucket   string
	endpoint string
	useSSL   bool
}

type UploadResult struct {
	FileURL  string
	FileName string
	FileSize int64
}

// Allowed content types untuk background template
var AllowedBackgroundTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

const MaxBackgroundSize = 10 * 1024 * 1024 // 10 MB

func NewStorageService(cfg *config.MinIOConfig) (*StorageService, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.User, cfg.Password, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	// Pastikan bucket ada
	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}

	return &StorageService{
		client:   client,
		bucket:   cfg.Bucket,
		endpoint: fmt.Sprintf("%s://%s", scheme, cfg.Endpoint),
		useSSL:   cfg.UseSSL,
	}, nil
}

// UploadBackground upload gambar background template dan kembalikan URL-nya.
func (s *StorageService) UploadBackground(ctx context.Context, data []byte, contentType string) (*UploadResult, error) {
	ext, ok := AllowedBackgroundTypes[contentType]
	if !ok {
		return nil, fmt.Errorf("tipe file tidak diizinkan: %s", contentType)
	}

	if len(data) > MaxBackgroundSize {
		return nil, fmt.Errorf("ukuran file melebihi batas maksimal 10MB")
	}

	fileName := fmt.Sprintf("backgrounds/%s-%s%s",
		time.Now().Format("20060102"),
		uuid.New().String()[:8],
		ext,
	)

	return s.put(ctx, fileName, data, contentType)
}

// UploadThumbnail upload thumbnail hasil resize, selalu JPEG.
func (s *StorageService) UploadThumbnail(ctx context.Context, data []byte) (*UploadResult, error) {
	fileName := fmt.Sprintf("thumbnails/%s-%s.jpg",
		time.Now().Format("20060102"),
		uuid.New().String()[:8],
	)
	return s.put(ctx, fileName, data, "image/jpeg")
}

// UploadPDF upload PDF sertifikat ke MinIO.
func (s *StorageService) UploadPDF(ctx context.Context, data []byte, name string) (string, error) {
	// Sanitasi nama file
	name = strings.ReplaceAll(name, " ", "-")
	name = strings.ReplaceAll(name, "/", "-")
	fileName := fmt.Sprintf("certificates/%s-%s.pdf", name, uuid.New().String()[:8])

	res, err := s.put(ctx, fileName, data, "application/pdf")
	if err != nil {
		return "", err
	}
	return res.FileURL, nil
}

// Download tarik isi objek berdasarkan URL publiknya. Dipakai renderer
// untuk mengambil background template saat komposisi.
func (s *StorageService) Download(ctx context.Context, fileURL string) ([]byte, error) {
	objectName := s.objectName(fileURL)

	obj, err := s.client.GetObject(ctx, s.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("gagal mengambil file: %w", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("gagal membaca file: %w", err)
	}
	return data, nil
}

// DeleteFile hapus file dari MinIO
func (s *StorageService) DeleteFile(ctx context.Context, fileURL string) error {
	return s.client.RemoveObject(ctx, s.bucket, s.objectName(fileURL), minio.RemoveObjectOptions{})
}

func (s *StorageService) put(ctx context.Context, fileName string, data []byte, contentType string) (*UploadResult, error) {
	reader := bytes.NewReader(data)
	_, err := s.client.PutObject(ctx, s.bucket, fileName, reader, int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("gagal upload file: %w", err)
	}

	return &UploadResult{
		FileURL:  fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, fileName),
		FileName: fileName,
		FileSize: int64(len(data)),
	}, nil
}

func (s *StorageService) objectName(fileURL string) string {
	prefix := fmt.Sprintf("%s/%s/", s.endpoint, s.bucket)
	return strings.TrimPrefix(fileURL, prefix)
}
