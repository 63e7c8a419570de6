// Package version holds build version metadata for the promptforge binary.
package version

// VersionTag is the release tag, overridable at build time:
//
//	go build -ldflags "-X github.com/teranos/promptforge/internal/version.VersionTag=v0.2.0"
var VersionTag = "v0.1.0-dev"
