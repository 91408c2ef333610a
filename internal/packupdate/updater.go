// Package packupdate fetches newer content packs from a static host. The
// host serves manifest.json next to the pack files:
//
//	{"version": "1.2.0", "url": "bank-1.2.0.yaml", "sha256": "..."}
package packupdate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/semver"

	"github.com/abhisek/lexplanet/internal/content"
)

var (
	ErrAlreadyLatest  = errors.New("content pack is already the latest version")
	ErrChecksum       = errors.New("checksum verification failed")
	ErrInvalidVersion = errors.New("invalid pack version")
)

// maxPackSize bounds downloads.
const maxPackSize = 16 << 20

// Manifest describes the newest pack on the host.
type Manifest struct {
	Version string `json:"version"`
	URL     string `json:"url"`
	SHA256  string `json:"sha256"`
}

// CheckResult compares the installed pack with the host.
type CheckResult struct {
	CurrentVersion  string
	LatestVersion   string
	UpdateAvailable bool
	Manifest        Manifest
}

// Checker talks to a pack host.
type Checker struct {
	baseURL string
	client  *http.Client
}

// Option customises a Checker.
type Option func(*Checker)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) Option {
	return func(ch *Checker) { ch.client = c }
}

// NewChecker returns a checker for the host at baseURL.
func NewChecker(baseURL string, opts ...Option) *Checker {
	c := &Checker{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check fetches the manifest and compares it with current.
func (c *Checker) Check(ctx context.Context, current string) (*CheckResult, error) {
	cur := content.CanonicalVersion(current)
	if !semver.IsValid(cur) {
		return nil, fmt.Errorf("%w: current %q", ErrInvalidVersion, current)
	}

	data, err := c.get(ctx, c.baseURL+"/manifest.json")
	if err != nil {
		return nil, fmt.Errorf("fetch manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	latest := content.CanonicalVersion(m.Version)
	if !semver.IsValid(latest) {
		return nil, fmt.Errorf("%w: manifest %q", ErrInvalidVersion, m.Version)
	}
	if m.URL == "" || m.SHA256 == "" {
		return nil, errors.New("manifest is missing url or sha256")
	}

	return &CheckResult{
		CurrentVersion:  cur,
		LatestVersion:   latest,
		UpdateAvailable: semver.Compare(latest, cur) > 0,
		Manifest:        m,
	}, nil
}

// Download fetches the pack named by m, verifies its checksum and parses
// it. The returned bytes are what Install writes.
func (c *Checker) Download(ctx context.Context, m Manifest) (*content.Bank, []byte, error) {
	packURL, err := c.resolve(m.URL)
	if err != nil {
		return nil, nil, err
	}

	data, err := c.get(ctx, packURL)
	if err != nil {
		return nil, nil, fmt.Errorf("download pack: %w", err)
	}
	if err := verifyChecksum(data, m.SHA256); err != nil {
		return nil, nil, err
	}

	bank, err := content.ParseBank(data)
	if err != nil {
		return nil, nil, fmt.Errorf("validate pack: %w", err)
	}
	if semver.Compare(content.CanonicalVersion(bank.Version), content.CanonicalVersion(m.Version)) != 0 {
		return nil, nil, fmt.Errorf("%w: pack is %s, manifest says %s", ErrInvalidVersion, bank.Version, m.Version)
	}
	return bank, data, nil
}

// UpdateProgress reports a stage of Update.
type UpdateProgress struct {
	Stage   string
	Message string
}

// Update checks, downloads and installs a newer pack to path.
func (c *Checker) Update(ctx context.Context, current, path string, progress func(UpdateProgress)) (*CheckResult, error) {
	progress(UpdateProgress{Stage: "check", Message: "Checking for a newer content pack..."})
	result, err := c.Check(ctx, current)
	if err != nil {
		return nil, err
	}
	if !result.UpdateAvailable {
		return result, ErrAlreadyLatest
	}

	progress(UpdateProgress{Stage: "download", Message: fmt.Sprintf("Downloading %s...", result.LatestVersion)})
	_, data, err := c.Download(ctx, result.Manifest)
	if err != nil {
		return result, err
	}

	progress(UpdateProgress{Stage: "install", Message: "Installing pack..."})
	if err := Install(path, data); err != nil {
		return result, fmt.Errorf("install pack: %w", err)
	}

	progress(UpdateProgress{Stage: "done", Message: fmt.Sprintf("Installed content pack %s", result.LatestVersion)})
	return result, nil
}

// Install writes data to path through a temp file and rename so a crash
// never leaves a partial pack behind.
func Install(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create pack dir: %w", err)
	}

	f, err := os.CreateTemp(dir, ".lexplanet-pack-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// resolve makes a manifest URL absolute against the base URL.
func (c *Checker) resolve(ref string) (string, error) {
	base, err := url.Parse(c.baseURL + "/")
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	u, err := base.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parse pack url %q: %w", ref, err)
	}
	return u.String(), nil
}

func (c *Checker) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPackSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxPackSize {
		return nil, fmt.Errorf("%s exceeds %d bytes", url, maxPackSize)
	}
	return data, nil
}

func verifyChecksum(data []byte, expectedHex string) error {
	h := sha256.Sum256(data)
	actual := hex.EncodeToString(h[:])
	if !strings.EqualFold(actual, strings.TrimSpace(expectedHex)) {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksum, expectedHex, actual)
	}
	return nil
}
