package storage

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"docvault/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentKey(t *testing.T) {
	assert.Equal(t, "vaults/v1/d1/scan.pdf", DocumentKey("v1", "d1", "scan.pdf"))
	assert.Equal(t, "vaults/v1/d1/evil.pdf", DocumentKey("v1", "d1", "../../evil.pdf"))
	assert.Equal(t, "vaults/v1/d1/w2.pdf", DocumentKey("v1", "d1", `C:\tmp\w2.pdf`))
	assert.Equal(t, "vaults/v1/d1/file", DocumentKey("v1", "d1", ""))
}

func TestMemory_RoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	info, err := m.Put(ctx, "k", strings.NewReader("hello"), PutObjectOptions{Size: 5, ContentType: "text/plain"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size)
	assert.NotEmpty(t, info.ETag)

	rc, got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	assert.Equal(t, "hello", string(body))
	assert.Equal(t, "text/plain", got.ContentType)

	u, err := m.PresignGet(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "memory://k"))

	require.NoError(t, m.Delete(ctx, "k"))
	require.NoError(t, m.Delete(ctx, "k"))
	_, _, err = m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrObjectNotFound)
	assert.Equal(t, 0, m.Len())
}

func TestValidateMinIO(t *testing.T) {
	ok := config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "s", Bucket: "documents"}
	assert.NoError(t, validateMinIO(ok))

	noBucket := ok
	noBucket.Bucket = ""
	assert.ErrorContains(t, validateMinIO(noBucket), "Bucket")

	noCreds := ok
	noCreds.SecretKey = ""
	assert.ErrorContains(t, validateMinIO(noCreds), "invalid minio config")
}

func TestDownloadParams(t *testing.T) {
	v := downloadParams("vaults/v1/d1/tax return.pdf")
	assert.Equal(t, `attachment; filename="tax return.pdf"`, v.Get("response-content-disposition"))
}
