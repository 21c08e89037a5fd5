package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// PathResolver locates config files and dictionaries relative to the
// executable, the working directory and the user's config directory.
type PathResolver struct {
	executableDir string
	homeDir       string
	configDir     string
}

// NewPathResolver creates a new path resolver that determines the executable location
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executableDir: filepath.Dir(execPath),
		homeDir:       homeDir,
		configDir:     getConfigDir(homeDir),
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", pr.executableDir, pr.configDir)
	return pr, nil
}

// getConfigDir returns the appropriate config directory for the platform
func getConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, "wordfuzz")
		}
		return filepath.Join(homeDir, ".config", "wordfuzz")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "wordfuzz")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "wordfuzz")
	default:
		return filepath.Join(homeDir, ".config", "wordfuzz")
	}
}

// GetConfigPath returns the full path for a config file, falling back to a
// writable location when the preferred config directory is not.
func (pr *PathResolver) GetConfigPath(filename string) (string, error) {
	if ensureWritableDir(pr.configDir) {
		return filepath.Join(pr.configDir, filename), nil
	}

	fallbackDirs := []string{
		filepath.Join(os.TempDir(), "wordfuzz"),
		pr.executableDir,
	}
	for _, dir := range fallbackDirs {
		if ensureWritableDir(dir) {
			path := filepath.Join(dir, filename)
			log.Warnf("Using fallback config location: %s", path)
			return path, nil
		}
	}

	tempPath := filepath.Join(os.TempDir(), filename)
	log.Warnf("Using temporary config file: %s", tempPath)
	return tempPath, nil
}

// ResolveDictPath finds a dictionary file. Absolute paths and paths that
// exist relative to the working directory are returned as is; otherwise the
// executable directory and the config directory are searched.
func (pr *PathResolver) ResolveDictPath(path string) (string, error) {
	if filepath.IsAbs(path) || FileExists(path) {
		return path, nil
	}
	for _, dir := range []string{pr.executableDir, pr.configDir} {
		candidate := filepath.Join(dir, path)
		if FileExists(candidate) {
			log.Debugf("Resolved dictionary %s to %s", path, candidate)
			return candidate, nil
		}
		log.Debugf("Dictionary candidate not found: %s", candidate)
	}
	return "", &os.PathError{Op: "resolve", Path: path, Err: os.ErrNotExist}
}

// ensureWritableDir creates dir if needed and tests writability
func ensureWritableDir(dir string) bool {
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		log.Debugf("Cannot create directory %s: %v", dir, err)
		return false
	}
	testFile := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(testFile, []byte("test"), FilePerm); err != nil {
		log.Debugf("Directory %s is not writable: %v", dir, err)
		return false
	}
	os.Remove(testFile)
	return true
}
