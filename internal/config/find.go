package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"
)

// LocalNames are the per-project config files, looked up from the working
// directory upwards.
var LocalNames = []string{".cxxtargs.toml", ".cxxtargs.yaml", ".cxxtargs.yml"}

// userNames are looked up inside each user config directory.
var userNames = []string{"config.toml", "config.yaml", "config.yml"}

// UserDirs returns the XDG config directories for cxxtargs, most specific
// first.
func UserDirs() []string {
	dirs := make([]string, 0, 1+len(xdg.ConfigDirs))
	for _, base := range append([]string{xdg.ConfigHome}, xdg.ConfigDirs...) {
		if base != "" {
			dirs = append(dirs, filepath.Join(base, "cxxtargs"))
		}
	}
	return dirs
}

// Find returns the first config file found walking up from startDir, then
// in userDirs. ok is false when no file exists.
func Find(fs afero.Fs, startDir string, userDirs []string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		if path, ok, err := firstExisting(fs, dir, LocalNames); ok || err != nil {
			return path, ok, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	for _, dir := range userDirs {
		if path, ok, err := firstExisting(fs, dir, userNames); ok || err != nil {
			return path, ok, err
		}
	}
	return "", false, nil
}

func firstExisting(fs afero.Fs, dir string, names []string) (string, bool, error) {
	for _, name := range names {
		candidate := filepath.Join(dir, name)
		info, err := fs.Stat(candidate)
		switch {
		case err == nil && !info.IsDir():
			return candidate, true, nil
		case err != nil && !os.IsNotExist(err):
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
	}
	return "", false, nil
}

// Resolve loads the explicit path when given, otherwise the first file Find
// reports, otherwise Default. The returned path is empty for defaults.
func Resolve(fs afero.Fs, explicit, startDir string, userDirs []string) (Settings, string, error) {
	path := explicit
	if path == "" {
		found, ok, err := Find(fs, startDir, userDirs)
		if err != nil {
			return Settings{}, "", err
		}
		if !ok {
			return Default(), "", nil
		}
		path = found
	}
	s, err := Load(fs, path)
	if err != nil {
		return Settings{}, "", err
	}
	return s, path, nil
}
