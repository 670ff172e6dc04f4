package services

import (
	"path/filepath"
	"strings"
)

// SafeJoin joins target under root/sub, rejecting traversal outside the
// tree. Returns "" when the target is unsafe.
func SafeJoin(root, sub, target string) string {
	cleanTarget := filepath.Clean(target)
	if strings.Contains(cleanTarget, "..") {
		return ""
	}
	return filepath.Join(root, sub, cleanTarget)
}
