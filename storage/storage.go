package storage

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

var (
	dataDirOnce sync.Once
	dataDirPath string
)

// DataDir returns the platform-appropriate writable data directory and creates it if missing.
func DataDir() string {
	dataDirOnce.Do(func() {
		dataDirPath = resolveDataDir()
		_ = os.MkdirAll(dataDirPath, 0o755)
	})
	return dataDirPath
}

// DataFile joins the data directory with the provided relative name.
func DataFile(name string) string {
	return filepath.Join(DataDir(), name)
}

// ExportFile returns a path under the exports subdirectory, creating it on demand.
func ExportFile(name string) (string, error) {
	dir := DataFile("exports")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// WriteDataFile writes data to the data directory, ensuring the directory exists.
func WriteDataFile(name string, data []byte, perm os.FileMode) error {
	path := DataFile(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, perm)
}

func resolveDataDir() string {
	if custom := os.Getenv("TAIPOP_DATA_DIR"); custom != "" {
		return custom
	}

	switch runtime.GOOS {
	case "windows":
		if base := os.Getenv("APPDATA"); base != "" {
			return filepath.Join(base, "TaiwanPopulationDensity")
		}
		if base := os.Getenv("LOCALAPPDATA"); base != "" {
			return filepath.Join(base, "TaiwanPopulationDensity")
		}
	case "darwin":
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "Library", "Application Support", "TaiwanPopulationDensity")
		}
	default: // Linux and others
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, "TaiwanPopulationDensity")
		}
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, ".local", "share", "TaiwanPopulationDensity")
		}
	}

	// Final fallback: use current directory
	return "./TaiwanPopulationDensity"
}
