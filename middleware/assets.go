package middleware

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"log"
	"os"
	"sync"
)

// versioned static assets, relative to the working directory
const (
	siteCSSPath  = "static/css/site.css"
	faviconPath  = "static/images/favicon.svg"
	revealJSPath = "static/js/reveal.js"
)

var (
	cssVersion        string
	faviconVersion    string
	revealJSVersion   string
	assetVersionsOnce sync.Once
)

// InitAssetVersions computes file hashes for cache busting at startup
func InitAssetVersions() {
	assetVersionsOnce.Do(func() {
		cssVersion = versionOf(siteCSSPath)
		faviconVersion = versionOf(faviconPath)
		revealJSVersion = versionOf(revealJSPath)
		log.Printf("[INFO] Asset versions initialized: css=%s favicon=%s reveal=%s",
			cssVersion, faviconVersion, revealJSVersion)
	})
}

func versionOf(path string) string {
	if v := computeFileHash(path); v != "" {
		return v
	}
	return "1"
}

// computeFileHash returns the first 8 characters of the MD5 hash of a file
func computeFileHash(path string) string {
	file, err := os.Open(path)
	if err != nil {
		log.Printf("[WARNING] Failed to open file for hashing %s: %v", path, err)
		return ""
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		log.Printf("[WARNING] Failed to hash file %s: %v", path, err)
		return ""
	}

	return hex.EncodeToString(hash.Sum(nil))[:8]
}

// GetCSSVersion returns the stylesheet version hash for cache busting.
// The ctx parameter keeps the helpers callable the same way from templ.
func GetCSSVersion(ctx context.Context) string {
	if cssVersion == "" {
		return "1"
	}
	return cssVersion
}

// GetFaviconVersion returns the favicon version hash
func GetFaviconVersion(ctx context.Context) string {
	if faviconVersion == "" {
		return "1"
	}
	return faviconVersion
}

// GetRevealJSVersion returns the reveal.js version hash
func GetRevealJSVersion(ctx context.Context) string {
	if revealJSVersion == "" {
		return "1"
	}
	return revealJSVersion
}
