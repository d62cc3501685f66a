package provision

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const (
	toolDirName = "codecutter-inspectcode"
	toolVersion = "2021.3.3"
	archiveURL  = "https://download.jetbrains.com/resharper/dotUltimate." + toolVersion +
		"/JetBrains.ReSharper.CommandLineTools." + toolVersion + ".zip"
)

// Progress is invoked synchronously as download bytes arrive. Total is -1
// when the server does not announce a content length. Observational only.
type Progress func(received, total int64)

// Downloader transfers a remote archive to a local temp file.
type Downloader interface {
	Fetch(url string, progress Progress) (string, error)
}

// Provisioner guarantees the analysis engine binary exists in the local
// cache before a run, downloading and extracting it on first use.
type Provisioner struct {
	downloader Downloader
	cacheDir   string
}

func New(downloader Downloader) *Provisioner {
	return &Provisioner{
		downloader: downloader,
		cacheDir:   filepath.Join(os.TempDir(), toolDirName),
	}
}

// BinaryPath is where the engine executable lives once provisioned. The
// binary name depends on host bitness.
func (p *Provisioner) BinaryPath() string {
	return filepath.Join(p.cacheDir, binaryName())
}

func binaryName() string {
	if strconv.IntSize == 32 {
		return "inspectcode.x86.exe"
	}
	return "inspectcode.exe"
}

// Ensure returns the path to a usable engine binary. A cached binary is
// used as-is; otherwise the versioned archive is downloaded and extracted.
// The cache directory is wiped before population, never after, so an
// earlier failed attempt cannot masquerade as a populated cache.
func (p *Provisioner) Ensure(progress Progress) (string, error) {
	binary := p.BinaryPath()
	if _, err := os.Stat(binary); err == nil {
		return binary, nil
	}

	archive, err := p.downloader.Fetch(archiveURL, progress)
	if err != nil {
		return "", fmt.Errorf("failed to download analysis engine: %w", err)
	}
	defer os.Remove(archive)

	if err := os.RemoveAll(p.cacheDir); err != nil {
		return "", fmt.Errorf("failed to clear engine cache: %w", err)
	}
	if err := os.MkdirAll(p.cacheDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create engine cache: %w", err)
	}

	if err := extractZip(archive, p.cacheDir); err != nil {
		return "", fmt.Errorf("failed to extract analysis engine: %w", err)
	}

	if _, err := os.Stat(binary); err != nil {
		return "", fmt.Errorf("engine binary %s missing after extraction", binaryName())
	}

	return binary, nil
}
