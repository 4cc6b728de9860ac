package assets

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/devfolio/devfolio/backend/pkg/logger"
)

// Size caps per upload kind.
const (
	MaxAvatarSize = 1 << 20 // 1MB
	MaxResumeSize = 5 << 20 // 5MB
	MaxImageSize  = 5 << 20 // 5MB
)

var imageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// FileTooLargeError reports an upload exceeding the per-kind cap.
type FileTooLargeError struct {
	Limit int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file exceeds the %dMB limit", e.Limit/(1<<20))
}

// UnsupportedTypeError reports an upload with a content type outside the
// allowlist for its kind.
type UnsupportedTypeError struct {
	ContentType string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported content type %q", e.ContentType)
}

// Archiver receives a best-effort copy of every uploaded blob. A nil Archiver
// disables archiving. *storage.MinIOStorage satisfies it.
type Archiver interface {
	UploadFile(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
}

// ResumeStatus reports both places a resume may live. Upload writes the
// document store while check, download and delete use the filesystem path, so
// the two flags can legitimately disagree.
type ResumeStatus struct {
	Exists     bool      `json:"exists"`
	Stored     bool      `json:"stored"`
	Filename   string    `json:"filename,omitempty"`
	Size       int64     `json:"size,omitempty"`
	UploadedAt time.Time `json:"uploadedAt,omitempty"`
}

// Service validates and stores uploaded blobs.
type Service struct {
	repo       Repository
	archive    Archiver
	resumePath string
}

func NewService(repo Repository, archive Archiver, resumePath string) *Service {
	return &Service{repo: repo, archive: archive, resumePath: resumePath}
}

// SaveAvatar overwrites the avatar singleton.
func (s *Service) SaveAvatar(ctx context.Context, filename, contentType string, data []byte) error {
	if int64(len(data)) > MaxAvatarSize {
		return &FileTooLargeError{Limit: MaxAvatarSize}
	}
	if !imageContentTypes[contentType] {
		return &UnsupportedTypeError{ContentType: contentType}
	}
	return s.saveSingleton(ctx, KindAvatar, filename, contentType, data)
}

// Avatar returns the stored avatar with its decoded payload.
func (s *Service) Avatar(ctx context.Context) (*StoredFile, []byte, error) {
	return s.fetch(ctx, func() (*StoredFile, error) { return s.repo.GetByKind(ctx, KindAvatar) })
}

// SaveProjectImage stores a project image under a fresh id and returns it.
func (s *Service) SaveProjectImage(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if int64(len(data)) > MaxImageSize {
		return "", &FileTooLargeError{Limit: MaxImageSize}
	}
	if !imageContentTypes[contentType] {
		return "", &UnsupportedTypeError{ContentType: contentType}
	}
	f := &StoredFile{
		ID:          uuid.NewString(),
		Kind:        KindProjectImage,
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		Data:        base64.StdEncoding.EncodeToString(data),
		UploadedAt:  time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, f); err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	s.archiveBlob(ctx, KindProjectImage+"/"+f.ID, contentType, data)
	return f.ID, nil
}

// ProjectImage returns a stored project image with its decoded payload.
func (s *Service) ProjectImage(ctx context.Context, id string) (*StoredFile, []byte, error) {
	return s.fetch(ctx, func() (*StoredFile, error) { return s.repo.GetByID(ctx, id) })
}

// SaveResume overwrites the resume singleton in the document store. Note that
// ResumeStatus, ResumePath and DeleteResume operate on the filesystem copy
// instead, so an upload is not visible through those until the file on disk is
// refreshed out of band.
func (s *Service) SaveResume(ctx context.Context, filename, contentType string, data []byte) error {
	if int64(len(data)) > MaxResumeSize {
		return &FileTooLargeError{Limit: MaxResumeSize}
	}
	if contentType != "application/pdf" {
		return &UnsupportedTypeError{ContentType: contentType}
	}
	return s.saveSingleton(ctx, KindResume, filename, contentType, data)
}

// ResumeStatus reports the filesystem copy and the document-store copy.
func (s *Service) ResumeStatus(ctx context.Context) ResumeStatus {
	var st ResumeStatus
	if info, err := os.Stat(s.resumePath); err == nil && !info.IsDir() {
		st.Exists = true
		st.Size = info.Size()
	}
	if f, err := s.repo.GetByKind(ctx, KindResume); err == nil {
		st.Stored = true
		st.Filename = f.Filename
		st.UploadedAt = f.UploadedAt
		if !st.Exists {
			st.Size = f.Size
		}
	}
	return st
}

// ResumePath is the filesystem location served by the download endpoint.
func (s *Service) ResumePath() string {
	return s.resumePath
}

// DeleteResume removes the filesystem copy.
func (s *Service) DeleteResume(ctx context.Context) error {
	if err := os.Remove(s.resumePath); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete resume: %w", err)
	}
	return nil
}

func (s *Service) saveSingleton(ctx context.Context, kind, filename, contentType string, data []byte) error {
	f := &StoredFile{
		ID:          kind,
		Kind:        kind,
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		Data:        base64.StdEncoding.EncodeToString(data),
		UploadedAt:  time.Now().UTC(),
	}
	if err := s.repo.UpsertByKind(ctx, f); err != nil {
		return fmt.Errorf("store %s: %w", kind, err)
	}
	s.archiveBlob(ctx, kind+"/"+filename, contentType, data)
	return nil
}

func (s *Service) fetch(ctx context.Context, get func() (*StoredFile, error)) (*StoredFile, []byte, error) {
	f, err := get()
	if err != nil {
		return nil, nil, err
	}
	raw, err := base64.StdEncoding.DecodeString(f.Data)
	if err != nil {
		return nil, nil, fmt.Errorf("decode %s blob: %w", f.Kind, err)
	}
	return f, raw, nil
}

// archiveBlob copies the upload to object storage. Failures are logged and
// never surfaced.
func (s *Service) archiveBlob(ctx context.Context, key, contentType string, data []byte) {
	if s.archive == nil {
		return
	}
	if err := s.archive.UploadFile(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		logger.Warnf("archive of %s failed: %v", key, err)
	}
}
