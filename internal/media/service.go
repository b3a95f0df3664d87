package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quickcourt/quickcourt-backend/internal/authz"
	"github.com/quickcourt/quickcourt-backend/internal/pkg/storage"
)

const (
	thumbnailMaxWidth  = 200
	thumbnailMaxHeight = 200
)

type Service interface {
	Upload(ctx context.Context, header *multipart.FileHeader, userID string) (*Media, error)
	Get(ctx context.Context, id string) (*Media, error)
	Delete(ctx context.Context, p authz.Principal, id string) error
	Download(ctx context.Context, id string) (io.ReadCloser, *Media, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Media, error)
}

type service struct {
	repo           Repository
	storage        storage.Storage
	imgProc        *storage.ImageProcessor
	maxUploadBytes int64
}

func NewService(repo Repository, store storage.Storage, maxUploadBytes int64) Service {
	return &service{
		repo:           repo,
		storage:        store,
		imgProc:        storage.NewImageProcessor(),
		maxUploadBytes: maxUploadBytes,
	}
}

func (s *service) Upload(ctx context.Context, header *multipart.FileHeader, userID string) (*Media, error) {
	if s.maxUploadBytes > 0 && header.Size > s.maxUploadBytes {
		return nil, ErrTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotImage
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file failed: %w", err)
	}
	defer src.Close()

	// Buffer the content so it can be read twice: once for the original,
	// once for the thumbnail. Uploads are capped, so this stays small.
	fileBytes, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read uploaded file failed: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	fileID := uuid.New().String()

	// Shard by ID prefix: upload/ab/<uuid>.<ext>
	shard := fileID[:2]
	storagePath := fmt.Sprintf("upload/%s/%s%s", shard, fileID, ext)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(fileBytes)); err != nil {
		return nil, fmt.Errorf("save file to storage failed: %w", err)
	}

	var thumbnailPath *string
	thumbReader, err := s.imgProc.GenerateThumbnail(bytes.NewReader(fileBytes), thumbnailMaxWidth, thumbnailMaxHeight)
	if err == nil {
		tPath := fmt.Sprintf("upload/%s/%s_thumb.jpg", shard, fileID)
		if err := s.storage.Save(ctx, tPath, thumbReader); err == nil {
			thumbnailPath = &tPath
		}
	}

	m := &Media{
		ID:            fileID,
		UserID:        userID,
		Filename:      header.Filename,
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          header.Size,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, m); err != nil {
		// Roll back storage when the record cannot be written.
		_ = s.storage.Delete(ctx, storagePath)
		if thumbnailPath != nil {
			_ = s.storage.Delete(ctx, *thumbnailPath)
		}
		return nil, err
	}

	return m, nil
}

func (s *service) Get(ctx context.Context, id string) (*Media, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, p authz.Principal, id string) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !p.IsAdmin && p.UserID != m.UserID {
		return ErrPermissionDenied
	}

	// Best-effort storage cleanup; the record removal decides the outcome.
	_ = s.storage.Delete(ctx, m.StoragePath)
	if m.ThumbnailPath != nil {
		_ = s.storage.Delete(ctx, *m.ThumbnailPath)
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *Media, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.storage.Get(ctx, m.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("retrieve file from storage failed: %w", err)
	}
	return stream, m, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Media, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if m.ThumbnailPath == nil {
		return nil, nil, ErrNoThumbnail
	}

	stream, err := s.storage.Get(ctx, *m.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("retrieve thumbnail from storage failed: %w", err)
	}
	return stream, m, nil
}
