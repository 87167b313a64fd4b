package main

import (
	"testing"

	. "github.com/Luismorlan/socialpost/utils/flag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReturnsConfigError(t *testing.T) {
	previous := *AppConfigPath
	*AppConfigPath = "testdata/missing_config.yaml"
	defer func() { *AppConfigPath = previous }()

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fail to parse app config")
	assert.Contains(t, err.Error(), "testdata/missing_config.yaml")
}
