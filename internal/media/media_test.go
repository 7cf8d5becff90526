package media

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService() *Service {
	return &Service{bucket: "test-bucket", maxSize: 1 << 20}
}

func TestCreateUploadRejectsUnknownKind(t *testing.T) {
	s := testService()

	_, err := s.CreateUpload(context.Background(), "u1", "video", "video/mp4", 100)
	require.ErrorIs(t, err, ErrUnsupportedKind)
}

func TestCreateUploadRejectsContentType(t *testing.T) {
	s := testService()

	_, err := s.CreateUpload(context.Background(), "u1", KindAvatar, "audio/mpeg", 100)
	require.ErrorIs(t, err, ErrUnsupportedContentType)

	_, err = s.CreateUpload(context.Background(), "u1", KindDemo, "image/png", 100)
	require.ErrorIs(t, err, ErrUnsupportedContentType)
}

func TestCreateUploadRejectsBadSize(t *testing.T) {
	s := testService()

	_, err := s.CreateUpload(context.Background(), "u1", KindAvatar, "image/png", 0)
	require.ErrorIs(t, err, ErrTooLarge)

	_, err = s.CreateUpload(context.Background(), "u1", KindAvatar, "image/png", s.maxSize+1)
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestObjectKeyLayout(t *testing.T) {
	s := testService()

	assert.Equal(t, "users/u1/avatar", s.objectKey("u1", KindAvatar))

	demo := s.objectKey("u1", KindDemo)
	assert.True(t, strings.HasPrefix(demo, "users/u1/demos/"))
	// demo keys must not collide across uploads
	assert.NotEqual(t, demo, s.objectKey("u1", KindDemo))
}

func TestDownloadURLRejectsForeignKeys(t *testing.T) {
	s := testService()

	for _, key := range []string{
		"",
		"secrets/credentials.json",
		"users/u1/avatar", // not a uuid owner segment
		"users/2f0c8a4e-9d13-47c2-b7aa-0c5e1d9f6a21/demos/not-a-uuid",
		"users/2f0c8a4e-9d13-47c2-b7aa-0c5e1d9f6a21/avatar/../other",
	} {
		_, err := s.DownloadURL(context.Background(), key)
		require.ErrorIs(t, err, ErrInvalidKey, "key %q", key)
	}
}

func TestObjectKeysPassDownloadShape(t *testing.T) {
	s := testService()
	userID := "2f0c8a4e-9d13-47c2-b7aa-0c5e1d9f6a21"

	assert.Regexp(t, keyShape, s.objectKey(userID, KindAvatar))
	assert.Regexp(t, keyShape, s.objectKey(userID, KindDemo))
}
