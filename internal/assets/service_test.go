package assets

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeArchiver struct {
	err  error
	keys []string
}

func (f *fakeArchiver) UploadFile(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	f.keys = append(f.keys, key)
	return f.err
}

func newTestService(t *testing.T) (*Service, *MemoryRepository, string) {
	t.Helper()
	repo := NewMemoryRepository()
	path := filepath.Join(t.TempDir(), "resume.pdf")
	return NewService(repo, nil, path), repo, path
}

func TestSaveAvatar_RejectsOversized(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.SaveAvatar(context.Background(), "a.png", "image/png", make([]byte, MaxAvatarSize+1))
	var tooLarge *FileTooLargeError
	require.ErrorAs(t, err, &tooLarge)
	require.Contains(t, err.Error(), "1MB")
}

func TestSaveAvatar_RejectsNonImage(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.SaveAvatar(context.Background(), "a.txt", "text/plain", []byte("hi"))
	var badType *UnsupportedTypeError
	require.ErrorAs(t, err, &badType)
}

func TestAvatarRoundTrip(t *testing.T) {
	svc, _, _ := newTestService(t)
	payload := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}

	require.NoError(t, svc.SaveAvatar(context.Background(), "me.png", "image/png", payload))

	f, raw, err := svc.Avatar(context.Background())
	require.NoError(t, err)
	require.Equal(t, "image/png", f.ContentType)
	require.Equal(t, "me.png", f.Filename)
	require.True(t, bytes.Equal(payload, raw))

	// a second upload overwrites the singleton
	require.NoError(t, svc.SaveAvatar(context.Background(), "new.png", "image/png", []byte("x")))
	f, _, err = svc.Avatar(context.Background())
	require.NoError(t, err)
	require.Equal(t, "new.png", f.Filename)
}

func TestProjectImageRoundTrip(t *testing.T) {
	svc, _, _ := newTestService(t)

	id, err := svc.SaveProjectImage(context.Background(), "shot.jpg", "image/jpeg", []byte("jpegdata"))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	f, raw, err := svc.ProjectImage(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", f.ContentType)
	require.Equal(t, []byte("jpegdata"), raw)

	_, _, err = svc.ProjectImage(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSaveResume_PDFOnly(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.SaveResume(context.Background(), "cv.docx", "application/msword", []byte("doc"))
	var badType *UnsupportedTypeError
	require.ErrorAs(t, err, &badType)
}

func TestResumeStorageSplit(t *testing.T) {
	svc, repo, path := newTestService(t)

	// upload lands in the document store only
	require.NoError(t, svc.SaveResume(context.Background(), "cv.pdf", "application/pdf", []byte("%PDF-1.4")))
	_, err := repo.GetByKind(context.Background(), KindResume)
	require.NoError(t, err)

	st := svc.ResumeStatus(context.Background())
	require.True(t, st.Stored)
	require.False(t, st.Exists)
	require.Equal(t, "cv.pdf", st.Filename)

	// the filesystem copy is a separate location
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 on disk"), 0o644))
	st = svc.ResumeStatus(context.Background())
	require.True(t, st.Exists)
	require.True(t, st.Stored)

	// delete only touches the filesystem copy
	require.NoError(t, svc.DeleteResume(context.Background()))
	st = svc.ResumeStatus(context.Background())
	require.False(t, st.Exists)
	require.True(t, st.Stored)

	require.ErrorIs(t, svc.DeleteResume(context.Background()), ErrNotFound)
}

func TestArchiveFailureDoesNotFailUpload(t *testing.T) {
	repo := NewMemoryRepository()
	arch := &fakeArchiver{err: errors.New("bucket offline")}
	svc := NewService(repo, arch, filepath.Join(t.TempDir(), "resume.pdf"))

	require.NoError(t, svc.SaveAvatar(context.Background(), "a.png", "image/png", []byte("x")))
	require.Len(t, arch.keys, 1)
	require.Equal(t, "avatar/a.png", arch.keys[0])
}
