package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"get-all", "ls"},
	Short:   "List all items",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := newClient().ListItems(cmd.Context())
		if err != nil {
			return err
		}
		printResult(items)
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a single item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := newClient().GetItem(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printResult(item)
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := newClient().AddItem(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <id> [name]",
	Short: "Rename an item; the name is read from stdin when omitted",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var name string
		if len(args) == 2 {
			name = args[1]
		} else {
			b, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read name: %w", err)
			}
			name = strings.TrimSuffix(string(b), "\n")
		}
		msg, err := newClient().UpdateItem(cmd.Context(), args[0], name)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an item",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := newClient().DeleteItem(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check liveness",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return health(cmd, "/health")
	},
}

var readyCmd = &cobra.Command{
	Use:   "ready",
	Short: "Check readiness (database reachable)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return health(cmd, "/ready")
	},
}

func health(cmd *cobra.Command, path string) error {
	msg, err := newClient().Health(cmd.Context(), path)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}

func init() {
	rootCmd.AddCommand(listCmd, getCmd, addCmd, updateCmd, deleteCmd, healthCmd, readyCmd)
}
