// Package uploads accepts campaign media files and stores them as blobs,
// returning the public URL to reference from a campaign record.
package uploads

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/societyfixer/hustings/internal/auth"
	"github.com/societyfixer/hustings/pkg/handlers"
	"github.com/societyfixer/hustings/pkg/media"
	"github.com/societyfixer/hustings/pkg/routes"
	"github.com/societyfixer/hustings/pkg/storage"
)

// Handler provides the HTTP endpoint for media uploads.
type Handler struct {
	store         storage.System
	sessions      *auth.Middleware
	logger        *slog.Logger
	publicBaseURL string
	maxUploadSize int64
}

// UploadResult describes a stored blob and its public URL.
type UploadResult struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
	URL    string `json:"url"`
}

// NewHandler creates a Handler over the given storage system.
func NewHandler(
	store storage.System,
	sessions *auth.Middleware,
	logger *slog.Logger,
	publicBaseURL string,
	maxUploadSize int64,
) *Handler {
	return &Handler{
		store:         store,
		sessions:      sessions,
		logger:        logger.With("handler", "uploads"),
		publicBaseURL: publicBaseURL,
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for upload endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/uploads",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/{bucket}", Handler: h.sessions.Require(h.Upload)},
		},
	}
}

// Upload stores a multipart file in the named bucket under a key scoped to
// the authenticated user. PDFs are probed for structural validity before
// acceptance; any other content must be an image.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.SessionFrom(r.Context())

	bucket := r.PathValue("bucket")
	if !slices.Contains(h.store.Buckets(), bucket) {
		handlers.RespondError(w, h.logger, MapHTTPStatus(ErrUnknownBucket), ErrUnknownBucket)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(ErrFileTooLarge), ErrFileTooLarge)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(ErrInvalidFile), ErrInvalidFile)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(ErrInvalidFile), ErrInvalidFile)
		return
	}

	contentType := detectContentType(header.Header.Get("Content-Type"), data)
	if err := validateContent(data, contentType); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	key := buildKey(session.UserID, header.Filename)
	if err := h.store.Upload(r.Context(), bucket, key, bytes.NewReader(data), contentType); err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	h.logger.Info("media uploaded", "bucket", bucket, "key", key, "size", len(data))

	handlers.RespondJSON(w, http.StatusCreated, UploadResult{
		Bucket: bucket,
		Key:    key,
		URL:    media.PublicURL(h.publicBaseURL, bucket, key),
	})
}

// validateContent accepts images as-is and probes PDFs with a structural
// page count read. Everything else is rejected.
func validateContent(data []byte, contentType string) error {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return nil
	case contentType == "application/pdf":
		if _, err := api.PageCount(bytes.NewReader(data), nil); err != nil {
			return fmt.Errorf("%w: malformed PDF", ErrInvalidFile)
		}
		return nil
	default:
		return fmt.Errorf("%w: unsupported content type %s", ErrInvalidFile, contentType)
	}
}

func buildKey(userID uuid.UUID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%s%s", userID, uuid.New(), ext)
}

func detectContentType(header string, data []byte) string {
	header = strings.TrimSpace(header)
	if header != "" && header != "application/octet-stream" {
		return header
	}
	return http.DetectContentType(data)
}
