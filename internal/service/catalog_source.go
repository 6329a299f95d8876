package service

import (
	"career_coach_backend/internal/config"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// CatalogSource 岗位目录的读取来源
type CatalogSource interface {
	// Name 用于按扩展名选择解码器
	Name() string
	Read(ctx context.Context) ([]byte, error)
}

// NewCatalogSource 根据配置创建目录来源
func NewCatalogSource(cfg *config.CatalogConfig) (CatalogSource, error) {
	switch cfg.Source {
	case "", config.CatalogSourceLocal:
		return &LocalCatalogSource{Path: cfg.Path}, nil
	case config.CatalogSourceMinio:
		return NewMinioCatalogSource(cfg)
	case config.CatalogSourceOSS:
		return NewOSSCatalogSource(cfg)
	default:
		return nil, fmt.Errorf("unsupported catalog source %q", cfg.Source)
	}
}

// LocalCatalogSource 本地文件
type LocalCatalogSource struct {
	Path string
}

func (s *LocalCatalogSource) Name() string { return s.Path }

func (s *LocalCatalogSource) Read(ctx context.Context) ([]byte, error) {
	return os.ReadFile(s.Path)
}

// MinioCatalogSource MinIO 对象
type MinioCatalogSource struct {
	Bucket string
	Key    string
	Client *minio.Client
}

func NewMinioCatalogSource(cfg *config.CatalogConfig) (*MinioCatalogSource, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioSecure,
	})
	if err != nil {
		return nil, err
	}
	return &MinioCatalogSource{Bucket: cfg.MinioBucket, Key: cfg.Path, Client: client}, nil
}

func (s *MinioCatalogSource) Name() string { return s.Key }

func (s *MinioCatalogSource) Read(ctx context.Context) ([]byte, error) {
	obj, err := s.Client.GetObject(ctx, s.Bucket, s.Key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	return io.ReadAll(obj)
}

// OSSCatalogSource 阿里云 OSS 对象
type OSSCatalogSource struct {
	Key    string
	Bucket *oss.Bucket
}

func NewOSSCatalogSource(cfg *config.CatalogConfig) (*OSSCatalogSource, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	bucket, err := client.Bucket(cfg.OSSBucket)
	if err != nil {
		return nil, err
	}
	return &OSSCatalogSource{Key: cfg.Path, Bucket: bucket}, nil
}

func (s *OSSCatalogSource) Name() string { return s.Key }

func (s *OSSCatalogSource) Read(ctx context.Context) ([]byte, error) {
	body, err := s.Bucket.GetObject(s.Key, oss.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return io.ReadAll(body)
}
