package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImportOFXCmd(t *testing.T) {
	cmd := importOFXCmd()

	flag := cmd.Flag("dry-run")
	assert.NotNil(t, flag, "dry-run flag should exist")
	assert.Equal(t, "false", flag.DefValue)

	// At least one file argument is required
	assert.Error(t, cmd.Args(cmd, []string{}))
	assert.NoError(t, cmd.Args(cmd, []string{"statement.qfx"}))
}

func TestResetCmd(t *testing.T) {
	cmd := resetCmd()

	flag := cmd.Flag("force")
	assert.NotNil(t, flag, "force flag should exist")
	assert.Equal(t, "false", flag.DefValue)
}
