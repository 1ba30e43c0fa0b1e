package paths

import (
	"os"
	"path/filepath"
)

const appDirName = "borlette-pos"

// DataDir returns the base data directory. POS_DATA_DIR overrides the
// platform default so terminals can run from a USB stick.
func DataDir() string {
	if dir := os.Getenv("POS_DATA_DIR"); dir != "" {
		return dir
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "./" + appDirName
	}
	return filepath.Join(base, appDirName)
}

// EnsureDataDirs creates the data directories used at runtime.
func EnsureDataDirs() error {
	for _, dir := range []string{DataDir(), PrintOutDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// GetDBPath returns the sqlite database path.
func GetDBPath() string {
	return filepath.Join(DataDir(), "pos.db")
}

// PrintOutDir returns the directory dry-run ticket images are written to.
func PrintOutDir() string {
	return filepath.Join(DataDir(), "printout")
}
