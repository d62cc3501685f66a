package provision

import (
	"fmt"
	"io"
	"net/http"
	"os"
)

// HTTPDownloader fetches archives over HTTP, streaming to a temp file and
// reporting progress as bytes arrive.
type HTTPDownloader struct {
	// Client overrides the HTTP client, mainly for tests.
	Client *http.Client
}

func (d *HTTPDownloader) httpClient() *http.Client {
	if d.Client != nil {
		return d.Client
	}
	return http.DefaultClient
}

func (d *HTTPDownloader) Fetch(url string, progress Progress) (string, error) {
	resp, err := d.httpClient().Get(url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s fetching %s", resp.Status, url)
	}

	tmp, err := os.CreateTemp("", "codecutter-download-*.zip")
	if err != nil {
		return "", fmt.Errorf("failed to create download temp file: %w", err)
	}

	total := resp.ContentLength
	var received int64
	buf := make([]byte, 32*1024)

	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := tmp.Write(buf[:n]); writeErr != nil {
				_ = tmp.Close()
				_ = os.Remove(tmp.Name())
				return "", fmt.Errorf("failed to write download: %w", writeErr)
			}
			received += int64(n)
			if progress != nil {
				progress(received, total)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
			return "", fmt.Errorf("download interrupted: %w", readErr)
		}
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to finalize download: %w", err)
	}

	return tmp.Name(), nil
}
