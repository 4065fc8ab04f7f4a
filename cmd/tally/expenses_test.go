package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestExpensesCmd(t *testing.T) {
	cmd := expensesCmd()
	assert.NotNil(t, cmd)

	subcommands := make(map[string]*cobra.Command)
	for _, subcmd := range cmd.Commands() {
		subcommands[subcmd.Name()] = subcmd
	}

	assert.Contains(t, subcommands, "add", "add subcommand should exist")
	assert.Contains(t, subcommands, "list", "list subcommand should exist")
	assert.Contains(t, subcommands, "total", "total subcommand should exist")
}

func TestAddExpenseCmd(t *testing.T) {
	cmd := addExpenseCmd()

	// The category flag defaults to the catch-all category
	flag := cmd.Flag("category")
	assert.NotNil(t, flag, "category flag should exist")
	assert.Equal(t, "other", flag.DefValue, "default category should be other")
}

func TestListExpensesCmd(t *testing.T) {
	cmd := listExpensesCmd()

	flag := cmd.Flag("category")
	assert.NotNil(t, flag, "category flag should exist")
	assert.Equal(t, "", flag.DefValue, "category filter should be empty by default")
}
