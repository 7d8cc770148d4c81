package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks
var (
	ErrFetch  = errors.New("fetch failed")
	ErrConfig = errors.New("invalid configuration")
)

// FetchError is returned when a node provider cannot resolve an identity
// or answers with an error payload. A FetchError aborts the whole ranking run.
type FetchError struct {
	Login   string
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Login == "" {
		return fmt.Sprintf("error fetching data from GitHub: %s", e.Message)
	}
	return fmt.Sprintf("error fetching data from GitHub for %q: %s", e.Login, e.Message)
}

func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ConfigError represents an invalid setting, rejected before any walk starts.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
