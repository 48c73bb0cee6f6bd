package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cloudlane/idmclient/rest"
)

var blockCmd = &cobra.Command{
	Use:   "block",
	Short: "Manage user blocks",
	Long:  "Commands for inspecting and removing the blocks applied to a user",
}

var blockGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show the blocks applied to a user",
	Args:  cobra.ExactArgs(1),
	RunE:  blockGet,
}

var blockDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove the blocks applied to a user",
	Args:  cobra.ExactArgs(1),
	RunE:  blockDelete,
}

func init() {
	blockCmd.AddCommand(blockGetCmd)
	blockCmd.AddCommand(blockDeleteCmd)
}

func blockGet(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	block, err := client.UserBlocks.Get(context.Background(), rest.Params{"id": args[0]})
	if err != nil {
		return fmt.Errorf("failed to get user blocks: %w", err)
	}

	if len(block.BlockedFor) == 0 {
		fmt.Println("No blocks found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "IDENTIFIER\tIP")
	for _, blocked := range block.BlockedFor {
		fmt.Fprintf(w, "%s\t%s\n", blocked.Identifier, blocked.IP)
	}
	w.Flush()

	return nil
}

func blockDelete(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	if err := client.UserBlocks.Delete(context.Background(), rest.Params{"id": args[0]}); err != nil {
		return fmt.Errorf("failed to delete user blocks: %w", err)
	}

	fmt.Printf("Blocks removed for user '%s'\n", args[0])
	return nil
}
