package dataset

import (
	"context"
	"crypto/md5"
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	appLog "chinacal/internal/log"
)

// Fetcher downloads the chinese-days dataset and maintains a local copy
// used as fallback when the network is unavailable.
type Fetcher struct {
	client    *http.Client
	url       string
	cacheFile string
}

// NewFetcher creates a dataset Fetcher with the given request timeout.
func NewFetcher(url, cacheFile string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		url:       url,
		cacheFile: cacheFile,
	}
}

// Fetch returns the dataset body, preferring a fresh download. On any
// network or HTTP error it falls back to the local copy; when neither is
// available the returned error is fatal for the run.
func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	appLog.Info("checking dataset for updates", "url", f.url)

	body, err := f.download(ctx)
	if err != nil {
		appLog.Error("dataset fetch failed, trying local copy", err, "url", f.url, "file", f.cacheFile)
		cached, readErr := os.ReadFile(f.cacheFile)
		if readErr != nil {
			return nil, errors.Join(err, readErr)
		}
		appLog.Info("using local dataset copy", "file", f.cacheFile, "bytes", len(cached))
		return cached, nil
	}

	if err := f.updateLocalCopy(body); err != nil {
		// The fresh body is still usable; only the fallback copy is stale.
		appLog.Error("dataset local copy write failed", err, "file", f.cacheFile)
	}

	return body, nil
}

func (f *Fetcher) download(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// updateLocalCopy rewrites the local dataset file only when the content
// hash changed, avoiding needless mtime churn on the scheduled job host.
func (f *Fetcher) updateLocalCopy(body []byte) error {
	remote := md5.Sum(body)
	if local, err := os.ReadFile(f.cacheFile); err == nil {
		if md5.Sum(local) == remote {
			appLog.Info("local dataset copy is up to date", "file", f.cacheFile)
			return nil
		}
	}
	appLog.Info("dataset changed, updating local copy", "file", f.cacheFile, "bytes", len(body))
	return os.WriteFile(f.cacheFile, body, 0o644)
}
