package config

import (
	"os"
	"path/filepath"
	"strings"
)

// EnvHomeDir overrides the base directory relative runtime paths resolve against.
const EnvHomeDir = EnvPrefix + "HOME"

// BaseDir returns STUDYDESK_HOME when set, otherwise the working directory.
func BaseDir() string {
	if dir := strings.TrimSpace(os.Getenv(EnvHomeDir)); dir != "" {
		return filepath.Clean(dir)
	}
	if wd, err := os.Getwd(); err == nil && wd != "" {
		return wd
	}
	return "."
}

// ResolveRuntimePath resolves a configured path against BaseDir.
// An empty raw value falls back to fallbackSubdir.
func ResolveRuntimePath(raw string, fallbackSubdir string) string {
	target := strings.TrimSpace(raw)
	if target == "" {
		target = strings.TrimSpace(fallbackSubdir)
		if target == "" {
			return BaseDir()
		}
	}
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Clean(filepath.Join(BaseDir(), target))
}
