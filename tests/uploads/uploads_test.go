package uploads_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/societyfixer/hustings/internal/auth"
	"github.com/societyfixer/hustings/internal/uploads"
	"github.com/societyfixer/hustings/pkg/lifecycle"
	"github.com/societyfixer/hustings/pkg/routes"
	"github.com/societyfixer/hustings/pkg/storage"
)

const testSecret = "test-jwt-secret"

// pngHeader is enough for content sniffing to classify the data as image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n0000000000")

type storedBlob struct {
	bucket      string
	key         string
	contentType string
	data        []byte
}

type fakeStore struct {
	uploads []storedBlob
}

func (f *fakeStore) Start(lc *lifecycle.Coordinator) error { return nil }

func (f *fakeStore) Upload(ctx context.Context, bucket, key string, reader io.Reader, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.uploads = append(f.uploads, storedBlob{bucket: bucket, key: key, contentType: contentType, data: data})
	return nil
}

func (f *fakeStore) Download(ctx context.Context, bucket, key string) (io.ReadCloser, string, error) {
	return nil, "", storage.ErrNotFound
}

func (f *fakeStore) Delete(ctx context.Context, bucket, key string) error { return nil }
func (f *fakeStore) Remove(ctx context.Context, refs []storage.Ref)       {}
func (f *fakeStore) Exists(ctx context.Context, bucket, key string) (bool, error) {
	return false, nil
}
func (f *fakeStore) Buckets() []string {
	return []string{"candidate-portraits", "candidate-resumes"}
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func bearerFor(t *testing.T, userID uuid.UUID) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID.String(),
		"email": "ada@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + signed
}

func newUploadMux(store *fakeStore, maxSize int64) *http.ServeMux {
	sessions := auth.NewMiddleware(auth.NewVerifier(testSecret), discard())
	handler := uploads.NewHandler(store, sessions, discard(), "http://localhost:8080", maxSize)

	mux := http.NewServeMux()
	routes.Register(mux, handler.Routes())
	return mux
}

func multipartBody(t *testing.T, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	w.Close()
	return &buf, w.FormDataContentType()
}

func uploadRequest(t *testing.T, mux *http.ServeMux, bucket, filename string, data []byte, authHeader string) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := multipartBody(t, filename, data)
	req := httptest.NewRequest("POST", "/uploads/"+bucket, body)
	req.Header.Set("Content-Type", contentType)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestUploadRequiresAuth(t *testing.T) {
	mux := newUploadMux(&fakeStore{}, 1<<20)

	rec := uploadRequest(t, mux, "candidate-portraits", "photo.png", pngHeader, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestUploadUnknownBucket(t *testing.T) {
	mux := newUploadMux(&fakeStore{}, 1<<20)
	token := bearerFor(t, uuid.New())

	rec := uploadRequest(t, mux, "secret-bucket", "photo.png", pngHeader, token)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestUploadImage(t *testing.T) {
	store := &fakeStore{}
	mux := newUploadMux(store, 1<<20)
	userID := uuid.New()

	rec := uploadRequest(t, mux, "candidate-portraits", "photo.PNG", pngHeader, bearerFor(t, userID))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}

	var result uploads.UploadResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if result.Bucket != "candidate-portraits" {
		t.Errorf("Bucket = %q", result.Bucket)
	}
	if !strings.HasPrefix(result.Key, userID.String()+"/") {
		t.Errorf("Key = %q, want user-scoped prefix", result.Key)
	}
	if !strings.HasSuffix(result.Key, ".png") {
		t.Errorf("Key = %q, want lowercased extension", result.Key)
	}
	wantURL := "http://localhost:8080/storage/v1/object/public/candidate-portraits/" + result.Key
	if result.URL != wantURL {
		t.Errorf("URL = %q, want %q", result.URL, wantURL)
	}

	if len(store.uploads) != 1 {
		t.Fatalf("stored uploads = %d, want 1", len(store.uploads))
	}
	if store.uploads[0].contentType != "image/png" {
		t.Errorf("stored content type = %q, want image/png", store.uploads[0].contentType)
	}
	if !bytes.Equal(store.uploads[0].data, pngHeader) {
		t.Error("stored bytes differ from the uploaded file")
	}
}

func TestUploadRejectsUnsupportedContent(t *testing.T) {
	store := &fakeStore{}
	mux := newUploadMux(store, 1<<20)

	rec := uploadRequest(t, mux, "candidate-resumes", "notes.txt", []byte("plain text resume"), bearerFor(t, uuid.New()))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if len(store.uploads) != 0 {
		t.Error("rejected file should not be stored")
	}
}

func TestUploadRejectsMalformedPDF(t *testing.T) {
	store := &fakeStore{}
	mux := newUploadMux(store, 1<<20)

	// carries a PDF signature but no structure behind it
	rec := uploadRequest(t, mux, "candidate-resumes", "cv.pdf", []byte("%PDF-1.7 broken"), bearerFor(t, uuid.New()))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if len(store.uploads) != 0 {
		t.Error("malformed PDF should not be stored")
	}
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	store := &fakeStore{}
	mux := newUploadMux(store, 64)

	big := append([]byte{}, pngHeader...)
	big = append(big, bytes.Repeat([]byte{0}, 1024)...)

	rec := uploadRequest(t, mux, "candidate-portraits", "photo.png", big, bearerFor(t, uuid.New()))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
	if len(store.uploads) != 0 {
		t.Error("oversized file should not be stored")
	}
}

func TestUploadMissingFileField(t *testing.T) {
	mux := newUploadMux(&fakeStore{}, 1<<20)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("other", "value")
	w.Close()

	req := httptest.NewRequest("POST", "/uploads/candidate-portraits", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", bearerFor(t, uuid.New()))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
