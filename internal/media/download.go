package media

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Placeholder describes one batch of images fetched into an empty sample pool
type Placeholder struct {
	Dir        string
	Prefix     string
	Count      int
	Width      int
	Height     int
	VariationW int
	VariationH int
	// Hint is appended to the query string, e.g. "gravity=face"
	Hint string
}

// minDimension is the smallest width or height requested
const minDimension = 100

// Downloader fetches placeholder images. Requests are sequential with a
// per-request timeout and no retries.
type Downloader struct {
	baseURL string
	client  *http.Client
	rng     Picker
}

// NewDownloader creates a downloader against baseURL (e.g. https://unsplash.it)
func NewDownloader(baseURL string, timeout time.Duration, rng Picker) *Downloader {
	return &Downloader{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		rng:     rng,
	}
}

// EnsureImages downloads the batch when the target directory has no files and
// returns how many images were written. Network failures are logged only.
func (d *Downloader) EnsureImages(ctx context.Context, batch Placeholder) int {
	files, err := listFiles(batch.Dir)
	if err == nil && len(files) > 0 {
		log.Printf("Sample directory %s is not empty, skipping placeholder download", batch.Dir)
		return 0
	}

	log.Printf("Sample directory %s is empty, downloading %d placeholder images", batch.Dir, batch.Count)
	downloaded := 0
	for i := 0; i < batch.Count; i++ {
		width := max(minDimension, batch.Width+d.jitter(batch.VariationW))
		height := max(minDimension, batch.Height+d.jitter(batch.VariationH))

		url := fmt.Sprintf("%s/%d/%d?random", d.baseURL, width, height)
		if batch.Hint != "" {
			url += "&" + batch.Hint
		}
		filename := filepath.Join(batch.Dir, fmt.Sprintf("%s_placeholder_%d.jpg", batch.Prefix, i+1))

		if err := d.fetch(ctx, url, filename); err != nil {
			log.Printf("Warning: failed to download %s: %v", url, err)
			continue
		}
		log.Printf("Downloaded %s", filename)
		downloaded++
	}

	if downloaded == 0 {
		log.Printf("Warning: still no images in %s after download attempt", batch.Dir)
	}
	return downloaded
}

// jitter returns a value in [-v, v]
func (d *Downloader) jitter(v int) int {
	if v <= 0 {
		return 0
	}
	return d.rng.IntN(2*v+1) - v
}

func (d *Downloader) fetch(ctx context.Context, url, filename string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	out, err := os.Create(filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(filename)
		return err
	}
	return out.Close()
}
