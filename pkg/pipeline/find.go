package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the pipeline file searched for when no explicit path is given.
const FileName = ".parity.yaml"

// Find locates the pipeline file. An explicit path is used as-is and must
// exist. Otherwise the search walks up from startDir, stopping at the first
// directory containing a .git marker (the repository root) or at the home
// directory.
func Find(startDir, explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("pipeline file not found: %w", err)
		}
		return explicitPath, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	for {
		candidate := filepath.Join(currentDir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		if currentDir == homeDir {
			break
		}

		gitPath := filepath.Join(currentDir, ".git")
		if _, err := os.Stat(gitPath); err == nil {
			break
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached filesystem root
			break
		}
		currentDir = parentDir
	}

	return "", errors.New(FileName + " not found")
}
