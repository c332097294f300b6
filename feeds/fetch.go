// Package feeds scrapes song collections from web sites. Requests are
// sequential, with a fixed delay between them; index pages are cached.
package feeds

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	log "github.com/sirupsen/logrus"
	"github.com/zionsongs/songkit"
	"github.com/zionsongs/songkit/dateutil"
)

const (
	DefaultCacheTTL = 24 * time.Hour
	DefaultDelay    = 500 * time.Millisecond
)

// Doer abstracts https://pkg.go.dev/net/http#Client.Do, satisfied by
// pester.Client.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Fetcher retrieves pages one at a time.
type Fetcher struct {
	Client    Doer
	UserAgent string
	// Delay is the pause before every request but the first.
	Delay    time.Duration
	CacheDir string
	CacheTTL time.Duration
	// CacheWindow, if set, keeps a cached page while it was fetched within
	// the current window, e.g. the same day; CacheTTL is ignored then.
	CacheWindow dateutil.WindowFunc
	Logger      log.FieldLogger

	last time.Time
}

// NewFetcher creates a fetcher caching under the XDG cache directory.
func NewFetcher(client Doer, name string) (*Fetcher, error) {
	cacheDir, err := xdg.CacheFile(filepath.Join(songkit.AppName, name))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, err
	}
	return &Fetcher{
		Client:    client,
		UserAgent: songkit.AppName + "/" + songkit.Version,
		Delay:     DefaultDelay,
		CacheDir:  cacheDir,
		CacheTTL:  DefaultCacheTTL,
		Logger:    log.StandardLogger(),
	}, nil
}

func (f *Fetcher) logger() log.FieldLogger {
	if f.Logger == nil {
		return log.StandardLogger()
	}
	return f.Logger
}

func (f *Fetcher) wait() {
	if f.last.IsZero() {
		return
	}
	if d := f.Delay - time.Since(f.last); d > 0 {
		time.Sleep(d)
	}
}

// Get fetches a page without caching.
func (f *Fetcher) Get(link string) ([]byte, error) {
	f.wait()
	defer func() { f.last = time.Now() }()
	req, err := http.NewRequest("GET", link, nil)
	if err != nil {
		return nil, err
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}
	f.logger().WithField("url", link).Debug("fetching")
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status code %d", link, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (f *Fetcher) cacheFile(link string) string {
	h := sha1.Sum([]byte(link))
	return filepath.Join(f.CacheDir, hex.EncodeToString(h[:])+".html")
}

// cached returns the cached content if it exists and is not expired.
func (f *Fetcher) cached(link string) ([]byte, error) {
	filename := f.cacheFile(link)
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	switch {
	case f.CacheWindow != nil:
		if !f.CacheWindow(time.Now()).Contains(info.ModTime()) {
			return nil, nil
		}
	case time.Since(info.ModTime()) > f.CacheTTL:
		return nil, nil
	}
	return os.ReadFile(filename)
}

// GetCached fetches a page or uses a cached copy, if fresh.
func (f *Fetcher) GetCached(link string) ([]byte, error) {
	if f.CacheDir == "" {
		return f.Get(link)
	}
	b, err := f.cached(link)
	if err != nil {
		return nil, err
	}
	if b != nil {
		f.logger().WithField("url", link).Debug("using cached page")
		return b, nil
	}
	if b, err = f.Get(link); err != nil {
		return nil, err
	}
	if err := os.WriteFile(f.cacheFile(link), b, 0644); err != nil {
		return nil, err
	}
	return b, nil
}
