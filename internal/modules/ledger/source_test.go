package ledger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/taxboard/internal/domain"
)

func TestDecode_Fixture(t *testing.T) {
	l := loadFixture(t)

	assert.Equal(t, []string{"2023", "2024"}, l.YearLabels())
	y, ok := l.Year("2023")
	require.True(t, ok)
	require.Len(t, y.Sales, 2)

	blocked := y.Sales[0]
	assert.True(t, blocked.Blocked)
	assert.Equal(t, domain.BlockReleased, blocked.BlockedStatus)
	assert.False(t, blocked.BlockedStatus.IsActive())
	assert.Equal(t, domain.NoteBlocked, blocked.Note.Code)
	assert.Equal(t, "Wed, 15 Mar 2023 00:00:00 GMT", blocked.Date)

	noAcq := y.Sales[1]
	assert.Equal(t, domain.NoteNoAcquisition, noAcq.Note.Code)
	assert.Empty(t, noAcq.BlockedStatus)
	assert.Empty(t, noAcq.UnlockDate)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode(strings.NewReader("{not json"))
	assert.Error(t, err)
}

func TestDecode_EmptyDocument(t *testing.T) {
	l, err := Decode(strings.NewReader("{}"))
	require.NoError(t, err)
	assert.NotNil(t, l.Years)
	assert.Empty(t, l.YearLabels())
}

func TestFileSource(t *testing.T) {
	s := NewFileSource(fixturePath())

	l, err := s.Fetch(context.Background())
	require.NoError(t, err)
	assert.True(t, l.HasYear("2024"))
	assert.Equal(t, "file:"+fixturePath(), s.Name())

	_, err = NewFileSource("testdata/missing.json").Fetch(context.Background())
	assert.Error(t, err)
}

func TestHTTPSource(t *testing.T) {
	body, err := os.ReadFile(fixturePath())
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/data":
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(body)
		default:
			http.Error(w, "no such thing", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	l, err := NewHTTPSource(srv.URL+"/api/data", srv.Client()).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1234.5, l.Global.TotalPnL)

	_, err = NewHTTPSource(srv.URL+"/nope", srv.Client()).Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "no such thing")
}

type fakeS3 struct {
	body   []byte
	err    error
	bucket string
	key    string
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.bucket = aws.ToString(in.Bucket)
	f.key = aws.ToString(in.Key)
	n := len(f.body)
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(f.body)),
		ContentLength: aws.Int64(int64(n)),
		ContentRange:  aws.String(fmt.Sprintf("bytes 0-%d/%d", n-1, n)),
	}, nil
}

func TestS3Source(t *testing.T) {
	body, err := os.ReadFile(fixturePath())
	require.NoError(t, err)
	client := &fakeS3{body: body}

	s := NewS3SourceWithClient("reports", "degiro/ledger.json", client)
	l, err := s.Fetch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "reports", client.bucket)
	assert.Equal(t, "degiro/ledger.json", client.key)
	assert.Equal(t, "s3://reports/degiro/ledger.json", s.Name())
	assert.True(t, l.HasYear("2023"))
}

func TestS3Source_Error(t *testing.T) {
	s := NewS3SourceWithClient("reports", "k", &fakeS3{err: errors.New("access denied")})

	_, err := s.Fetch(context.Background())

	assert.ErrorContains(t, err, "access denied")
}

func TestNewSource(t *testing.T) {
	ctx := context.Background()

	s, err := NewSource(ctx, "/tmp/ledger.json", Options{})
	require.NoError(t, err)
	assert.IsType(t, &FileSource{}, s)

	s, err = NewSource(ctx, "https://example.com/api/data", Options{})
	require.NoError(t, err)
	assert.IsType(t, &HTTPSource{}, s)

	s, err = NewSource(ctx, "s3://bucket/path/ledger.json", Options{S3: S3Options{
		Region:          "eu-west-1",
		Endpoint:        "http://localhost:9000",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
	}})
	require.NoError(t, err)
	assert.Equal(t, "s3://bucket/path/ledger.json", s.Name())

	_, err = NewSource(ctx, "s3://bucket-only", Options{})
	assert.Error(t, err)
}
