package paths

import (
	"os"
	"path/filepath"
)

// BaseDir returns ~/.sxport.
func BaseDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".sxport")
}

// ConfigPath returns the global config file path.
func ConfigPath() string {
	return filepath.Join(BaseDir(), "config.toml")
}

// HistoryDBPath returns the app-owned sxport.db path.
func HistoryDBPath() string {
	return filepath.Join(BaseDir(), "sxport.db")
}

// LogDir returns the log directory.
func LogDir() string {
	return filepath.Join(BaseDir(), "logs")
}

// LogPath returns the log file path.
func LogPath() string {
	return filepath.Join(LogDir(), "sxport.log")
}

// EnsureDirs creates the base directory tree with proper permissions.
func EnsureDirs() error {
	dirs := []string{
		BaseDir(),
		LogDir(),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0700); err != nil {
			return err
		}
	}
	return nil
}

// FindChatDB probes the SimpleX desktop client's default database
// locations and returns the first that exists, or "" if none do.
func FindChatDB() string {
	home, _ := os.UserHomeDir()
	candidates := []string{
		filepath.Join(os.Getenv("APPDATA"), "SimpleX", "simplex_v1_chat.db"),
		filepath.Join(os.Getenv("APPDATA"), "simplex", "simplex_v1_chat.db"),
		filepath.Join(home, ".simplex", "simplex_v1_chat.db"),
		filepath.Join(home, ".local", "share", "simplex", "simplex_v1_chat.db"),
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}
