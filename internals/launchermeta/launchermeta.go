// Package launchermeta talks to the mojang launcher meta api, which lists all
// minecraft releases and links to their version manifests
package launchermeta

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/minepkg/mcfetch/internals/minecraft"
)

// DefaultURL is the url of the version list
const DefaultURL = "https://launchermeta.mojang.com/mc/game/version_manifest.json"

// maxInheritanceDepth limits how many parents a manifest may have
const maxInheritanceDepth = 8

var (
	// ErrInvalidVersion is returned if a version is not part of the version list
	ErrInvalidVersion = errors.New("minecraft version does not exist")
	// ErrInheritanceLoop is returned if manifests inherit from each other in a loop
	ErrInheritanceLoop = errors.New("version manifests inherit from each other in a loop")
)

// ErrUnexpectedStatus is returned for non 2xx responses of the meta api
type ErrUnexpectedStatus struct {
	URL        string
	StatusCode int
}

func (e *ErrUnexpectedStatus) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.StatusCode, e.URL)
}

// Client fetches the version list and version manifests
type Client struct {
	HTTP *http.Client
	// URL of the version list
	URL string
	// VersionsDir is where fetched manifests are cached as <id>/<id>.json. Nothing is cached if empty
	VersionsDir string
	Logger      *slog.Logger

	list *VersionList
}

// New returns a new launcher meta client
func New(client *http.Client, url string) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		HTTP:   client,
		URL:    url,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Versions returns the version list. It is only fetched once per client
func (c *Client) Versions(ctx context.Context) (*VersionList, error) {
	if c.list != nil {
		return c.list, nil
	}

	list := &VersionList{}
	if err := c.getJSON(ctx, c.URL, list); err != nil {
		return nil, err
	}
	c.Logger.Debug("fetched version list", slog.Int("versions", len(list.Versions)), slog.String("latest", list.Latest.Release))
	c.list = list
	return list, nil
}

// Manifest returns the fully resolved manifest of a release. Parents
// referenced with inheritsFrom are merged into it
func (c *Client) Manifest(ctx context.Context, release *Release) (*minecraft.VersionManifest, error) {
	manifest, err := c.rawManifest(ctx, release.ID, release.URL)
	if err != nil {
		return nil, err
	}
	return manifest, c.ResolveInheritance(ctx, manifest)
}

// ResolveInheritance merges all parents of the manifest into it
func (c *Client) ResolveInheritance(ctx context.Context, manifest *minecraft.VersionManifest) error {
	seen := map[string]bool{manifest.ID: true}

	for depth := 0; manifest.InheritsFrom != ""; depth++ {
		parentID := manifest.InheritsFrom
		if seen[parentID] || depth >= maxInheritanceDepth {
			return fmt.Errorf("%s: %w", manifest.ID, ErrInheritanceLoop)
		}
		seen[parentID] = true

		parent, err := c.manifestByID(ctx, parentID)
		if err != nil {
			return fmt.Errorf("could not resolve parent %s of %s: %w", parentID, manifest.ID, err)
		}
		c.Logger.Debug("merging parent manifest", slog.String("version", manifest.ID), slog.String("parent", parentID))
		manifest.MergeWith(parent)
	}
	return nil
}

// manifestByID prefers a cached manifest and falls back to the version list
func (c *Client) manifestByID(ctx context.Context, id string) (*minecraft.VersionManifest, error) {
	if cached, err := c.cached(id); err == nil {
		return cached, nil
	}

	list, err := c.Versions(ctx)
	if err != nil {
		return nil, err
	}
	release := list.Find(id)
	if release == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrInvalidVersion)
	}
	return c.rawManifest(ctx, release.ID, release.URL)
}

func (c *Client) cached(id string) (*minecraft.VersionManifest, error) {
	if c.VersionsDir == "" {
		return nil, os.ErrNotExist
	}
	raw, err := os.ReadFile(filepath.Join(c.VersionsDir, id, id+".json"))
	if err != nil {
		return nil, err
	}
	return minecraft.ParseVersionManifest(raw)
}

// rawManifest fetches a manifest without resolving its parents and caches it
func (c *Client) rawManifest(ctx context.Context, id string, url string) (*minecraft.VersionManifest, error) {
	raw, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	manifest, err := minecraft.ParseVersionManifest(raw)
	if err != nil {
		return nil, err
	}

	if c.VersionsDir != "" {
		dir := filepath.Join(c.VersionsDir, id)
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, err
		}
		if err := os.WriteFile(filepath.Join(dir, id+".json"), raw, 0644); err != nil {
			return nil, err
		}
	}
	return manifest, nil
}

func (c *Client) getJSON(ctx context.Context, url string, v interface{}) error {
	raw, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	return decodeJSON(raw, v)
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &ErrUnexpectedStatus{URL: url, StatusCode: res.StatusCode}
	}
	return io.ReadAll(res.Body)
}

// LoadManifestFile reads a local version manifest
func LoadManifestFile(path string) (*minecraft.VersionManifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return minecraft.ParseVersionManifest(raw)
}
