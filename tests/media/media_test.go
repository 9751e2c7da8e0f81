package media_test

import (
	"net/url"
	"testing"

	"github.com/societyfixer/hustings/pkg/media"
)

func TestTransformImageRewritesObjectURL(t *testing.T) {
	raw := "https://cdn.example.com/storage/v1/object/public/candidate-portraits/user-1/photo.jpg"

	got := media.TransformImage(raw, media.TransformOptions{
		Width:  400,
		Height: 400,
		Resize: media.ResizeContain,
	})

	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("transformed URL does not parse: %v", err)
	}

	wantPath := "/storage/v1/render/image/public/candidate-portraits/user-1/photo.jpg"
	if u.Path != wantPath {
		t.Errorf("path = %q, want %q", u.Path, wantPath)
	}

	q := u.Query()
	if q.Get("width") != "400" {
		t.Errorf("width = %q, want 400", q.Get("width"))
	}
	if q.Get("height") != "400" {
		t.Errorf("height = %q, want 400", q.Get("height"))
	}
	if q.Get("resize") != "contain" {
		t.Errorf("resize = %q, want contain", q.Get("resize"))
	}
}

func TestTransformImagePassthrough(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"external URL", "https://images.example.com/photo.jpg"},
		{"already a render URL", "https://cdn.example.com/storage/v1/render/image/public/candidate-portraits/k.jpg"},
		{"signed object URL", "https://cdn.example.com/storage/v1/object/sign/candidate-portraits/k.jpg?token=abc"},
		{"empty string", ""},
		{"relative path", "/assets/placeholder.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := media.TransformImage(tt.raw, media.TransformOptions{Width: 400, Height: 400, Resize: media.ResizeCover})
			if got != tt.raw {
				t.Errorf("TransformImage(%q) = %q, want byte-identical passthrough", tt.raw, got)
			}
		})
	}
}

func TestTransformImageOmitsUnsetParams(t *testing.T) {
	raw := "https://cdn.example.com/storage/v1/object/public/candidate-portraits/p.jpg"

	got := media.TransformImage(raw, media.TransformOptions{Width: 200})

	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	q := u.Query()
	if q.Get("width") != "200" {
		t.Errorf("width = %q, want 200", q.Get("width"))
	}
	if q.Has("height") {
		t.Error("height should be omitted when unset")
	}
	if q.Has("resize") {
		t.Error("resize should be omitted when unset")
	}
}

func TestTransformImagePreservesExistingQuery(t *testing.T) {
	raw := "https://cdn.example.com/storage/v1/object/public/candidate-portraits/p.jpg?token=abc"

	got := media.TransformImage(raw, media.TransformOptions{Width: 100})

	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if u.Query().Get("token") != "abc" {
		t.Error("existing query parameters should be preserved")
	}
}

func TestParseStorageURL(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantBucket string
		wantKey    string
		wantOK     bool
	}{
		{
			name:       "object URL",
			raw:        "https://cdn.example.com/storage/v1/object/public/candidate-portraits/user-1/photo.jpg",
			wantBucket: "candidate-portraits",
			wantKey:    "user-1/photo.jpg",
			wantOK:     true,
		},
		{
			name:       "render URL",
			raw:        "https://cdn.example.com/storage/v1/render/image/public/candidate-resumes/user-2/cv.pdf",
			wantBucket: "candidate-resumes",
			wantKey:    "user-2/cv.pdf",
			wantOK:     true,
		},
		{
			name:   "external URL",
			raw:    "https://images.example.com/photo.jpg",
			wantOK: false,
		},
		{
			name:   "missing key",
			raw:    "https://cdn.example.com/storage/v1/object/public/candidate-portraits",
			wantOK: false,
		},
		{
			name:   "empty string",
			raw:    "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, key, ok := media.ParseStorageURL(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if bucket != tt.wantBucket {
				t.Errorf("bucket = %q, want %q", bucket, tt.wantBucket)
			}
			if key != tt.wantKey {
				t.Errorf("key = %q, want %q", key, tt.wantKey)
			}
		})
	}
}

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name   string
		base   string
		bucket string
		key    string
		want   string
	}{
		{
			name:   "plain base",
			base:   "http://localhost:8080",
			bucket: "candidate-portraits",
			key:    "user-1/photo.jpg",
			want:   "http://localhost:8080/storage/v1/object/public/candidate-portraits/user-1/photo.jpg",
		},
		{
			name:   "trailing slash trimmed",
			base:   "http://localhost:8080/",
			bucket: "candidate-resumes",
			key:    "cv.pdf",
			want:   "http://localhost:8080/storage/v1/object/public/candidate-resumes/cv.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := media.PublicURL(tt.base, tt.bucket, tt.key); got != tt.want {
				t.Errorf("PublicURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPublicURLRoundTripsThroughParse(t *testing.T) {
	raw := media.PublicURL("http://localhost:8080", "candidate-portraits", "user-1/photo.jpg")

	bucket, key, ok := media.ParseStorageURL(raw)
	if !ok {
		t.Fatal("ParseStorageURL should recognize PublicURL output")
	}
	if bucket != "candidate-portraits" || key != "user-1/photo.jpg" {
		t.Errorf("got %s/%s, want candidate-portraits/user-1/photo.jpg", bucket, key)
	}
}
