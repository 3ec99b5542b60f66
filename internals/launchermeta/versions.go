package launchermeta

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

const (
	// TypeSnapshot is a snapshot release
	TypeSnapshot = "snapshot"
	// TypeRelease is a full "normal" release
	TypeRelease = "release"
	// TypeOldBeta is a "old_beta" release
	TypeOldBeta = "old_beta"
	// TypeOldAlpha is a "old_alpha" release
	TypeOldAlpha = "old_alpha"
)

// ErrNoMatchingVersion is returned if no release satisfies a version constraint
var ErrNoMatchingVersion = errors.New("no minecraft version matches the requirement")

// Release is a released minecraft version
type Release struct {
	ID          string `json:"id" yaml:"id"`
	Type        string `json:"type" yaml:"type"`
	URL         string `json:"url" yaml:"url"`
	Time        string `json:"time" yaml:"-"`
	ReleaseTime string `json:"releaseTime" yaml:"releaseTime"`
}

// Stable reports whether this is a full release
func (r *Release) Stable() bool {
	return r.Type == TypeRelease
}

// VersionList is the response from the "launchermeta" mojang api.
// Versions are ordered newest first
type VersionList struct {
	Latest struct {
		Release  string `json:"release"`
		Snapshot string `json:"snapshot"`
	} `json:"latest"`
	Versions []Release `json:"versions"`
}

// Find returns the release with the exact id or nil
func (l *VersionList) Find(id string) *Release {
	for i := range l.Versions {
		if l.Versions[i].ID == id {
			return &l.Versions[i]
		}
	}
	return nil
}

// Filter returns all releases, including snapshots and old betas/alphas only if snapshots is true
func (l *VersionList) Filter(snapshots bool) []Release {
	filtered := make([]Release, 0, len(l.Versions))
	for _, release := range l.Versions {
		if snapshots || release.Stable() {
			filtered = append(filtered, release)
		}
	}
	return filtered
}

// Resolve finds the release for a user supplied query. The query can be
// "latest", "latest-snapshot", an exact version id or a semver constraint like "~1.19".
// Constraints resolve to the newest matching release, snapshots only match if snapshots is true
func (l *VersionList) Resolve(query string, snapshots bool) (*Release, error) {
	query = strings.TrimSpace(query)
	switch query {
	case "", "latest":
		if snapshots {
			return l.findOrFail(l.Latest.Snapshot)
		}
		return l.findOrFail(l.Latest.Release)
	case "latest-snapshot":
		return l.findOrFail(l.Latest.Snapshot)
	}

	if release := l.Find(query); release != nil {
		return release, nil
	}

	constraint, err := semver.NewConstraint(query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", query, ErrInvalidVersion)
	}
	return l.Newest(constraint, snapshots)
}

// Newest returns the newest release matching the constraint
func (l *VersionList) Newest(constraint *semver.Constraints, snapshots bool) (*Release, error) {
	for i, release := range l.Versions {
		if !snapshots && !release.Stable() {
			continue
		}
		version, err := semver.NewVersion(release.ID)
		// skip unparsable minecraft versions (most snapshots)
		if err != nil {
			continue
		}
		if constraint.Check(version) {
			return &l.Versions[i], nil
		}
	}
	return nil, fmt.Errorf("%s: %w", constraint, ErrNoMatchingVersion)
}

// Matching returns all releases matching the constraint
func (l *VersionList) Matching(constraint *semver.Constraints, snapshots bool) []Release {
	matching := []Release{}
	for _, release := range l.Filter(snapshots) {
		version, err := semver.NewVersion(release.ID)
		if err != nil {
			continue
		}
		if constraint.Check(version) {
			matching = append(matching, release)
		}
	}
	return matching
}

func (l *VersionList) findOrFail(id string) (*Release, error) {
	if release := l.Find(id); release != nil {
		return release, nil
	}
	return nil, fmt.Errorf("%s: %w", id, ErrInvalidVersion)
}

func decodeJSON(raw []byte, v interface{}) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("invalid launcher meta response: %w", err)
	}
	return nil
}
