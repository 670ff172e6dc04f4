package services

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/frontmatter"

	"hugo-exporter/pkg/models"
)

// BundleIndex lists the page bundles present under an export directory.
// The walk result is cached until the next export run invalidates it.
type BundleIndex struct {
	mu      sync.Mutex
	bundles []models.BundleInfo
	loaded  bool
}

func NewBundleIndex() *BundleIndex { return &BundleIndex{} }

type bundleMeta struct {
	Title  string `yaml:"title"`
	Layout string `yaml:"layout"`
}

// List walks {exportDir}/content and returns one entry per bundle
// directory holding an index.md, with sibling files counted as assets.
func (b *BundleIndex) List(exportDir string) ([]models.BundleInfo, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.loaded {
		return b.bundles, nil
	}

	contentDir := filepath.Join(exportDir, "content")
	var bundles []models.BundleInfo

	err := filepath.WalkDir(contentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != "index.md" {
			return nil
		}

		bundleDir := filepath.Dir(path)
		relPath, _ := filepath.Rel(contentDir, bundleDir)
		relPath = filepath.ToSlash(relPath)

		info := models.BundleInfo{Path: relPath, Title: relPath}

		if content, err := os.ReadFile(path); err == nil {
			var meta bundleMeta
			if _, err := frontmatter.Parse(bytes.NewReader(content), &meta); err == nil {
				if strings.TrimSpace(meta.Title) != "" {
					info.Title = meta.Title
				}
				info.Layout = meta.Layout
			}
		}

		if entries, err := os.ReadDir(bundleDir); err == nil {
			for _, entry := range entries {
				if !entry.IsDir() && entry.Name() != "index.md" {
					info.Assets++
				}
			}
		}

		bundles = append(bundles, info)
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	b.bundles = bundles
	b.loaded = true
	return b.bundles, nil
}

// Invalidate drops the cached listing. Called after each export run.
func (b *BundleIndex) Invalidate() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.loaded = false
	b.bundles = nil
}
