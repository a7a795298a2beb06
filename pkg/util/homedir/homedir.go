// Package homedir resolves the current user's home directory and the
// default location of the client configuration.
package homedir

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
)

// ConfigDirName is the directory under the home directory holding the client config.
const ConfigDirName = ".kestra"

// Get returns the home directory of the current user with the help of
// environment variables depending on the target operating system.
func Get() (string, error) {
	var errs []error
	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return home, nil
	}
	errs = append(errs, err)
	u, err := user.Current()
	if err == nil && u != nil && u.HomeDir != "" {
		return u.HomeDir, nil
	}
	errs = append(errs, err)
	return "", fmt.Errorf("unable to determine home directory: %w", errors.Join(errs...))
}

// Expand expands the path to include the home directory if the path
// is prefixed with `~`. If it isn't prefixed with `~`, the path is
// returned as-is.
func Expand(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	if len(path) > 1 && path[1] != '/' && path[1] != '\\' {
		return "", errors.New("cannot expand user-specific home dir")
	}
	home, err := Get()
	if err != nil {
		return "", fmt.Errorf("cannot get user-specific home dir: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// ConfigDir returns "~/.kestra", or "./.kestra" when the home directory
// cannot be determined.
func ConfigDir() string {
	home, err := Get()
	if err != nil {
		return ConfigDirName
	}
	return filepath.Join(home, ConfigDirName)
}
