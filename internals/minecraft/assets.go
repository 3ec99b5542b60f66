package minecraft

import (
	"sort"
	"strings"
)

// DefaultAssetCDN is the root url all asset objects are downloaded from
const DefaultAssetCDN = "https://resources.download.minecraft.net"

// AssetIndexRef points to the asset index of a version
type AssetIndexRef struct {
	ID        string `json:"id"`
	Sha1      string `json:"sha1"`
	Size      int64  `json:"size"`
	TotalSize int64  `json:"totalSize"`
	URL       string `json:"url"`
}

// AssetIndex is just a map containing AssetObjects
type AssetIndex struct {
	Objects map[string]AssetObject `json:"objects"`
}

// AssetObject is one minecraft asset
type AssetObject struct {
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}

// UnixPath returns the path including the folder
// example: fe/fe32f3b8…
func (a *AssetObject) UnixPath() string {
	return a.Hash[:2] + "/" + a.Hash
}

// DownloadURL returns the download url for this asset below the given cdn root.
// An empty root falls back to DefaultAssetCDN
func (a *AssetObject) DownloadURL(cdnRoot string) string {
	if cdnRoot == "" {
		cdnRoot = DefaultAssetCDN
	}
	return strings.TrimSuffix(cdnRoot, "/") + "/" + a.UnixPath()
}

// TotalSize sums up the declared size of all objects
func (i *AssetIndex) TotalSize() int64 {
	var total int64
	for _, obj := range i.Objects {
		total += obj.Size
	}
	return total
}

// Paths returns all logical asset paths in sorted order
func (i *AssetIndex) Paths() []string {
	paths := make([]string, 0, len(i.Objects))
	for path := range i.Objects {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
