package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchError_Is(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("rank failed: %w", &FetchError{Login: "octocat", Message: "boom", Err: cause})

	assert.True(t, errors.Is(err, ErrFetch))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrConfig))

	var fe *FetchError
	assert.True(t, errors.As(err, &fe))
	assert.Equal(t, "octocat", fe.Login)
	assert.Contains(t, err.Error(), `"octocat": boom`)
}

func TestConfigError_Is(t *testing.T) {
	err := &ConfigError{Field: "depth", Message: "must be >= 0"}
	assert.True(t, errors.Is(err, ErrConfig))
	assert.Equal(t, "depth: must be >= 0", err.Error())
}

func TestNodeSnapshot_OutboundCount(t *testing.T) {
	assert.Equal(t, 0, NodeSnapshot{Login: "a"}.OutboundCount())
	assert.Equal(t, 2, NodeSnapshot{Following: []string{"b", "c"}}.OutboundCount())
}
