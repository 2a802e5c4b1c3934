// Package asset inspects the images that items are textured with.
// Only the header is decoded; pixel data is never loaded.
package asset

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "golang.org/x/image/webp"
)

// ErrUnsupportedSource is returned for locators that are neither files nor http(s) URLs.
var ErrUnsupportedSource = errors.New("asset: unsupported source")

// DefaultTimeout bounds remote probes when the context carries no deadline.
const DefaultTimeout = 10 * time.Second

// ImageInfo describes a probed image.
type ImageInfo struct {
	Source string
	Format string // "png", "jpeg", "gif" or "webp"
	Width  int
	Height int
}

// Aspect returns width/height, or 1 when the image has no height.
func (i ImageInfo) Aspect() float64 {
	if i.Height <= 0 || i.Width <= 0 {
		return 1
	}
	return float64(i.Width) / float64(i.Height)
}

// Prober reads image headers from files or over HTTP.
type Prober struct {
	Client *http.Client
	Root   string // Base directory for root-relative paths like "/image.png"
}

// NewProber creates a prober resolving absolute-looking paths against root.
func NewProber(root string) *Prober {
	return &Prober{Client: http.DefaultClient, Root: root}
}

// Probe decodes the image header at src.
func (p *Prober) Probe(ctx context.Context, src string) (ImageInfo, error) {
	switch {
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return p.probeURL(ctx, src)
	case strings.Contains(src, "://"):
		return ImageInfo{}, fmt.Errorf("%w: %q", ErrUnsupportedSource, src)
	default:
		return p.probeFile(src)
	}
}

func (p *Prober) probeFile(src string) (ImageInfo, error) {
	path := p.resolve(src)
	f, err := os.Open(path)
	if err != nil {
		return ImageInfo{}, fmt.Errorf("asset: failed to open %s: %w", path, err)
	}
	defer f.Close()

	return decode(src, f)
}

func (p *Prober) probeURL(ctx context.Context, src string) (ImageInfo, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return ImageInfo{}, fmt.Errorf("asset: failed to build request: %w", err)
	}
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return ImageInfo{}, fmt.Errorf("asset: failed to fetch %s: %w", src, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ImageInfo{}, fmt.Errorf("asset: fetch %s: status %s", src, resp.Status)
	}
	return decode(src, resp.Body)
}

// resolve maps root-relative locators into the prober's root directory.
func (p *Prober) resolve(src string) string {
	if p.Root == "" {
		return src
	}
	if strings.HasPrefix(src, "/") {
		if _, err := os.Stat(src); err == nil {
			return src
		}
		return filepath.Join(p.Root, strings.TrimPrefix(src, "/"))
	}
	return filepath.Join(p.Root, src)
}

func decode(src string, r io.Reader) (ImageInfo, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return ImageInfo{}, fmt.Errorf("asset: failed to decode %s: %w", src, err)
	}
	return ImageInfo{
		Source: src,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}
