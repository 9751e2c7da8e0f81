// Package media provides URL helpers for blob-backed media: rewriting direct
// object URLs into on-the-fly image render URLs, and parsing storage URLs back
// into bucket and key references.
package media

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	objectSegment = "/storage/v1/object/public/"
	renderSegment = "/storage/v1/render/image/public/"
)

// ResizeMode controls how a rendered image fits the requested dimensions.
type ResizeMode string

const (
	ResizeCover   ResizeMode = "cover"
	ResizeContain ResizeMode = "contain"
	ResizeFill    ResizeMode = "fill"
)

// TransformOptions holds image render parameters.
type TransformOptions struct {
	Width  int
	Height int
	Resize ResizeMode
}

// TransformImage rewrites a direct object URL into its on-the-fly render
// equivalent, appending width, height, and resize query parameters. Only
// public object URLs are rewritten: the path must contain the full
// /storage/v1/object/public/ segment, so signed or otherwise non-public
// object URLs pass through untouched. A URL that does not match, or that
// fails to parse, is returned unchanged. TransformImage never fails.
func TransformImage(rawURL string, opts TransformOptions) string {
	if !strings.Contains(rawURL, objectSegment) {
		return rawURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	u.Path = strings.Replace(u.Path, objectSegment, renderSegment, 1)

	q := u.Query()
	if opts.Width > 0 {
		q.Set("width", strconv.Itoa(opts.Width))
	}
	if opts.Height > 0 {
		q.Set("height", strconv.Itoa(opts.Height))
	}
	if opts.Resize != "" {
		q.Set("resize", string(opts.Resize))
	}
	u.RawQuery = q.Encode()

	return u.String()
}

// ParseStorageURL extracts the bucket and object key from a public storage
// URL. Both direct object and render URLs are recognized. Returns false when
// the URL does not reference a stored object.
func ParseStorageURL(rawURL string) (bucket, key string, ok bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", false
	}

	path := u.Path
	var rest string
	switch {
	case strings.Contains(path, objectSegment):
		rest = path[strings.Index(path, objectSegment)+len(objectSegment):]
	case strings.Contains(path, renderSegment):
		rest = path[strings.Index(path, renderSegment)+len(renderSegment):]
	default:
		return "", "", false
	}

	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}

	return bucket, key, true
}

// PublicURL builds the direct object URL for a bucket and key under the given
// base URL (scheme and host, no trailing slash).
func PublicURL(base, bucket, key string) string {
	return strings.TrimSuffix(base, "/") + objectSegment + bucket + "/" + key
}
