package downloader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/cavaliergopher/grab/v3"
	"github.com/vfaronov/httpheader"
)

const (
	ProgressReporting = 250 * time.Millisecond
	Megabyte          = 1024 * 1024
	// MaxScriptSize bounds remote scripts; anything larger is not a script.
	MaxScriptSize = 4 * Megabyte
	// speedWindow is the number of samples averaged for the reported speed.
	speedWindow = 30
	UserAgent   = "termreel"
)

var (
	ErrContentType = errors.New("unexpected content type")
	ErrTooLarge    = errors.New("remote script too large")
)

// Downloader fetches remote scripts into a local directory.
type Downloader struct {
	Client *grab.Client
	log    *slog.Logger

	mu      sync.Mutex
	samples []float64
}

func NewDownloader(log *slog.Logger) *Downloader {
	c := grab.NewClient()
	c.UserAgent = UserAgent
	if log == nil {
		log = slog.Default()
	}
	return &Downloader{Client: c, log: log}
}

// IsURL reports whether source should be downloaded rather than opened.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Download saves rawurl into dir and returns the local path. Responses that
// are not text, YAML or JSON are rejected before the body is copied.
func (d *Downloader) Download(ctx context.Context, rawurl, dir string) (string, error) {
	req, err := grab.NewRequest(dir, rawurl)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", rawurl, err)
	}
	req = req.WithContext(ctx)
	req.BeforeCopy = checkResponse

	start := time.Now()
	resp := d.Client.Do(req)

	ticker := time.NewTicker(ProgressReporting)
	defer ticker.Stop()
Loop:
	for {
		select {
		case <-ticker.C:
			d.printProgress(resp)
		case <-resp.Done:
			break Loop
		}
	}

	if err := resp.Err(); err != nil {
		return "", fmt.Errorf("download %s: %w", rawurl, err)
	}
	d.log.Info("script downloaded",
		slog.String("url", rawurl),
		slog.String("path", resp.Filename),
		slog.Int64("bytes", resp.BytesComplete()),
		slog.Duration("elapsed", time.Since(start).Round(time.Millisecond)))
	return resp.Filename, nil
}

func checkResponse(resp *grab.Response) error {
	if resp.HTTPResponse == nil {
		return nil
	}
	if size := resp.Size(); size > MaxScriptSize {
		return fmt.Errorf("%w: %d bytes", ErrTooLarge, size)
	}
	mtype, _ := httpheader.ContentType(resp.HTTPResponse.Header)
	if !acceptedType(mtype) {
		return fmt.Errorf("%w: %s", ErrContentType, mtype)
	}
	return nil
}

func acceptedType(mtype string) bool {
	switch {
	case mtype == "":
		return true
	case mtype == "text/html":
		return false
	case strings.HasPrefix(mtype, "text/"):
		return true
	}
	switch mtype {
	case "application/json", "application/yaml", "application/x-yaml", "application/octet-stream":
		return true
	}
	return false
}

func (d *Downloader) printProgress(resp *grab.Response) {
	d.mu.Lock()
	d.samples = append(d.samples, resp.BytesPerSecond())
	if len(d.samples) > speedWindow {
		d.samples = d.samples[1:]
	}
	var total float64
	for _, s := range d.samples {
		total += s
	}
	avg := total / float64(len(d.samples))
	d.mu.Unlock()

	d.log.Debug("downloading script",
		slog.Int64("bytes", resp.BytesComplete()),
		slog.Int64("size", resp.Size()),
		slog.Float64("progress", resp.Progress()*100),
		slog.Float64("kib_per_sec", avg/1024))
}
