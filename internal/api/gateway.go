package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"

	"github.com/societyfixer/hustings/internal/infrastructure"
	"github.com/societyfixer/hustings/pkg/handlers"
	"github.com/societyfixer/hustings/pkg/middleware"
	"github.com/societyfixer/hustings/pkg/module"
	"github.com/societyfixer/hustings/pkg/storage"
)

// NewStorageModule creates the public storage gateway. It serves stored
// media at the direct object path and at the render path that the image
// transform rewrites to. Render parameters (width, height, resize) are
// accepted and passed through; the gateway serves the stored bytes and
// leaves scaling to the client.
func NewStorageModule(infra *infrastructure.Infrastructure) *module.Module {
	gw := &gateway{
		store:  infra.Storage,
		logger: infra.Logger.With("handler", "storage-gateway"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/object/public/{bucket}/{key...}", gw.serve)
	mux.HandleFunc("GET /v1/render/image/public/{bucket}/{key...}", gw.serve)

	m := module.New("/storage", mux)
	m.Use(middleware.Logger(infra.Logger))

	return m
}

type gateway struct {
	store  storage.System
	logger *slog.Logger
}

func (g *gateway) serve(w http.ResponseWriter, r *http.Request) {
	bucket := r.PathValue("bucket")
	key := r.PathValue("key")

	body, contentType, err := g.store.Download(r.Context(), bucket, key)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrUnknownBucket) {
			status = http.StatusNotFound
		}
		handlers.RespondError(w, g.logger, status, err)
		return
	}
	defer body.Close()

	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.Header().Set(
		"Content-Disposition",
		fmt.Sprintf("inline; filename=%q", path.Base(key)),
	)
	w.WriteHeader(http.StatusOK)
	io.Copy(w, body)
}
