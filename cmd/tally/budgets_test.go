package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestBudgetsCmd(t *testing.T) {
	cmd := budgetsCmd()
	assert.NotNil(t, cmd)

	subcommands := make(map[string]*cobra.Command)
	for _, subcmd := range cmd.Commands() {
		subcommands[subcmd.Name()] = subcmd
	}

	assert.Contains(t, subcommands, "set", "set subcommand should exist")
	assert.Contains(t, subcommands, "list", "list subcommand should exist")
	assert.Contains(t, subcommands, "status", "status subcommand should exist")
}

func TestSetBudgetCmd(t *testing.T) {
	cmd := setBudgetCmd()

	flag := cmd.Flag("period")
	assert.NotNil(t, flag, "period flag should exist")
	assert.Equal(t, "monthly", flag.DefValue, "default period should be monthly")
	assert.Contains(t, flag.Usage, "daily, weekly, monthly, yearly")
}

func TestBudgetStatusCmd(t *testing.T) {
	cmd := budgetStatusCmd()

	// Status takes an optional category argument
	assert.NotNil(t, cmd.Args)
	assert.NoError(t, cmd.Args(cmd, []string{}))
	assert.NoError(t, cmd.Args(cmd, []string{"food"}))
	assert.Error(t, cmd.Args(cmd, []string{"food", "extra"}))
}
