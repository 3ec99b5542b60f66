package minecraft

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoClientDownload is returned when a manifest has no client download
var ErrNoClientDownload = errors.New("manifest has no client download")

// VersionManifest is a version.json manifest that describes all files required
// to run a minecraft version
type VersionManifest struct {
	ID string `json:"id"`
	// Type is "release", "snapshot", "old_beta" or "old_alpha"
	Type      string `json:"type,omitempty"`
	MainClass string `json:"mainClass,omitempty"`
	// Downloads contains at least the "client" entry
	Downloads  map[string]Artifact `json:"downloads,omitempty"`
	Libraries  Libraries           `json:"libraries"`
	Assets     string              `json:"assets,omitempty"`
	AssetIndex AssetIndexRef       `json:"assetIndex"`
	Logging    *Logging            `json:"logging,omitempty"`
	// InheritsFrom is set by mod loader manifests (fabric, forge) that only
	// describe their own additions to a vanilla version
	InheritsFrom string `json:"inheritsFrom,omitempty"`
}

// Logging describes the logging config of a version
type Logging struct {
	Client *LoggingClient `json:"client,omitempty"`
}

// LoggingClient is the client logging config
type LoggingClient struct {
	Argument string    `json:"argument,omitempty"`
	File     *Artifact `json:"file,omitempty"`
	Type     string    `json:"type,omitempty"`
}

// ParseVersionManifest parses a version.json
func ParseVersionManifest(data []byte) (*VersionManifest, error) {
	manifest := &VersionManifest{}
	if err := json.Unmarshal(data, manifest); err != nil {
		return nil, fmt.Errorf("invalid version manifest: %w", err)
	}
	return manifest, nil
}

// Client returns the client jar download
func (m *VersionManifest) Client() (Artifact, bool) {
	client, ok := m.Downloads["client"]
	return client, ok && client.URL != ""
}

// LoggingFile returns the client logging config file or nil if there is none
func (m *VersionManifest) LoggingFile() *Artifact {
	if m.Logging == nil || m.Logging.Client == nil || m.Logging.Client.File == nil {
		return nil
	}
	if m.Logging.Client.File.URL == "" {
		return nil
	}
	return m.Logging.Client.File
}

// Validate checks that the manifest describes something that can be downloaded
func (m *VersionManifest) Validate() error {
	if m.ID == "" {
		return errors.New("manifest has no id")
	}
	if _, ok := m.Client(); !ok {
		return fmt.Errorf("%s: %w", m.ID, ErrNoClientDownload)
	}
	if m.AssetIndex.URL == "" || m.AssetIndex.ID == "" {
		return fmt.Errorf("%s: manifest has no asset index", m.ID)
	}
	return nil
}

// MergeWith merges the parent manifest into this one. Properties that are
// not set in this manifest are taken from the parent and libraries are appended.
// This is a simple implementation. it does not care for duplicates in `Libraries`
func (m *VersionManifest) MergeWith(parent *VersionManifest) {
	m.Libraries = append(m.Libraries, parent.Libraries...)

	if m.MainClass == "" {
		m.MainClass = parent.MainClass
	}
	if m.Type == "" {
		m.Type = parent.Type
	}
	if m.Assets == "" {
		m.Assets = parent.Assets
	}
	if m.AssetIndex.ID == "" {
		m.AssetIndex = parent.AssetIndex
	}
	if m.Logging == nil {
		m.Logging = parent.Logging
	}
	if len(m.Downloads) == 0 {
		m.Downloads = parent.Downloads
	}
	m.InheritsFrom = parent.InheritsFrom
}

// DeclaredSize sums up the sizes the manifest declares for the files required on the platform.
// Assets are only included through the asset index's total size, which is 0 for most
// mod loader manifests. Files without a declared size count as 0
func (m *VersionManifest) DeclaredSize(p Platform) int64 {
	var size int64
	if client, ok := m.Client(); ok {
		size += client.Size
	}
	for _, lib := range m.Libraries.Required(p) {
		if !lib.HasDownloads() {
			continue
		}
		if lib.Downloads.Artifact != nil {
			size += lib.Downloads.Artifact.Size
		}
		if native, ok := lib.NativeArtifact(p); ok {
			size += native.Size
		}
	}
	if logging := m.LoggingFile(); logging != nil {
		size += logging.Size
	}
	return size + m.AssetIndex.Size + m.AssetIndex.TotalSize
}
