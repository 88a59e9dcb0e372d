package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyExtensions indicates no source extensions are configured
	ErrEmptyExtensions = errors.New("empty source extensions")

	// ErrInvalidExtension indicates an extension without a leading dot
	ErrInvalidExtension = errors.New("invalid source extension")

	// ErrEmptySuffixes indicates no import resolution suffixes are configured
	ErrEmptySuffixes = errors.New("empty resolve suffixes")

	// ErrEmptyConfigName indicates the symbol scanner has no project config name
	ErrEmptyConfigName = errors.New("empty project config name")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateFiles(&cfg.Files); err != nil {
		errs = append(errs, err)
	}

	if err := validateSymbols(&cfg.Symbols); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateFiles(cfg *FilesConfig) error {
	var errs []error

	if len(cfg.SourceExtensions) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one extension required", ErrEmptyExtensions))
	}

	for _, ext := range cfg.SourceExtensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			errs = append(errs, fmt.Errorf("%w: %q must start with '.'", ErrInvalidExtension, ext))
		}
	}

	if len(cfg.ResolveSuffixes) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one suffix required", ErrEmptySuffixes))
	}

	// Entry markers, entry filenames and report exclusions may all be empty.

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateSymbols(cfg *SymbolsConfig) error {
	if strings.TrimSpace(cfg.ConfigName) == "" {
		return fmt.Errorf("%w: config_name is required", ErrEmptyConfigName)
	}
	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
