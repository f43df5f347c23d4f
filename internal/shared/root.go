package shared

import (
	"fmt"
	"os"
	"path/filepath"
)

var executable = os.Executable

// ExecutableDir returns the directory containing the running binary, with symlinks resolved.
func ExecutableDir() (string, error) {
	exe, err := executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}

	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	return filepath.Dir(exe), nil
}

// ResolveRoot returns the absolute directory to serve.
//
// An empty dir resolves to [ExecutableDir]. The result must be an existing directory.
func ResolveRoot(dir string) (string, error) {
	if dir == "" {
		exeDir, err := ExecutableDir()
		if err != nil {
			return "", err
		}
		dir = exeDir
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidArgument, dir, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidArgument, abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrInvalidArgument, abs)
	}

	return abs, nil
}
