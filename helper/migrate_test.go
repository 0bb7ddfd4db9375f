package helper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawstay/config"
	"pawstay/helper"
)

func TestActions(t *testing.T) {
	assert.Equal(t, []string{"down", "drop", "step-up", "up", "version"}, helper.Actions())
}

func TestRunRejectsUnknownAction(t *testing.T) {
	err := helper.Run(&config.Config{}, "sideways")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sideways")
}
