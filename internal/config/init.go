package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// InitTarget identifies where configuration should be initialized.
type InitTarget string

const (
	// InitTargetLocal writes configuration into the working directory.
	InitTargetLocal InitTarget = "local"
	// InitTargetGlobal writes configuration into the global configuration directory.
	InitTargetGlobal InitTarget = "global"

	defaultConfigurationTemplate = `render:
  style: classic
  max_depth: 0
  ignore:
    - .git
    - node_modules
  show_files: true
  show_sizes: false
  trailing_slash: false
  show_stats: false
  clipboard: false
`

	configDirectoryPermissions  = 0o755
	configFilePermissions       = 0o644
	existingConfigurationError  = "configuration file %s already exists (use --force to overwrite)"
	unknownInitTargetError      = "unknown configuration target %q"
	createDirectoryErrorFormat  = "create configuration directory %s: %w"
	writeConfigurationErrFormat = "write configuration %s: %w"
)

// InitOptions controls how configuration initialization behaves.
type InitOptions struct {
	Target           InitTarget
	Force            bool
	WorkingDirectory string
}

// InitializeConfiguration writes the default configuration to the requested
// target and returns the written path.
func InitializeConfiguration(options InitOptions) (string, error) {
	targetPath, resolveError := resolveInitPath(options)
	if resolveError != nil {
		return "", resolveError
	}

	if !options.Force {
		if _, statError := os.Stat(targetPath); statError == nil {
			return "", fmt.Errorf(existingConfigurationError, targetPath)
		}
	}

	if directoryError := os.MkdirAll(filepath.Dir(targetPath), configDirectoryPermissions); directoryError != nil {
		return "", fmt.Errorf(createDirectoryErrorFormat, filepath.Dir(targetPath), directoryError)
	}
	if writeError := os.WriteFile(targetPath, []byte(defaultConfigurationTemplate), configFilePermissions); writeError != nil {
		return "", fmt.Errorf(writeConfigurationErrFormat, targetPath, writeError)
	}
	return targetPath, nil
}

func resolveInitPath(options InitOptions) (string, error) {
	switch options.Target {
	case InitTargetLocal:
		workingDirectory := options.WorkingDirectory
		if workingDirectory == "" {
			currentDirectory, workingDirectoryError := os.Getwd()
			if workingDirectoryError != nil {
				return "", fmt.Errorf("determine working directory: %w", workingDirectoryError)
			}
			workingDirectory = currentDirectory
		}
		return filepath.Join(workingDirectory, ConfigFileName), nil
	case InitTargetGlobal:
		homeDirectory, homeError := os.UserHomeDir()
		if homeError != nil {
			return "", fmt.Errorf("determine home directory: %w", homeError)
		}
		return filepath.Join(homeDirectory, GlobalConfigDirectoryName, GlobalConfigFileName), nil
	default:
		return "", fmt.Errorf(unknownInitTargetError, string(options.Target))
	}
}
