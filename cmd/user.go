package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cloudlane/idmclient/rest"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
	Long:  "Commands for managing user records of the identity management API",
}

var userGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Fetch a user",
	Args:  cobra.ExactArgs(1),
	RunE:  userGet,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE:  userList,
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new user",
	RunE:  userCreate,
}

var userUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a user",
	Args:  cobra.ExactArgs(1),
	RunE:  userUpdate,
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE:  userDelete,
}

var userUnlinkCmd = &cobra.Command{
	Use:   "unlink <id>",
	Short: "Unlink an identity from a user",
	Args:  cobra.ExactArgs(1),
	RunE:  userUnlink,
}

// User command flags
var (
	userEmail      string
	userName       string
	userConnection string
	userProvider   string
	userIdentityID string
)

func init() {
	userCreateCmd.Flags().StringVarP(&userEmail, "email", "e", "", "email address (required)")
	userCreateCmd.Flags().StringVarP(&userName, "name", "n", "", "display name")
	userCreateCmd.Flags().StringVarP(&userConnection, "connection", "c", "", "connection the user belongs to")
	_ = userCreateCmd.MarkFlagRequired("email")

	userUpdateCmd.Flags().StringVarP(&userEmail, "email", "e", "", "email address")
	userUpdateCmd.Flags().StringVarP(&userName, "name", "n", "", "display name")

	userUnlinkCmd.Flags().StringVar(&userProvider, "provider", "", "identity provider (required)")
	userUnlinkCmd.Flags().StringVar(&userIdentityID, "user-id", "", "identity user id at the provider (required)")
	_ = userUnlinkCmd.MarkFlagRequired("provider")
	_ = userUnlinkCmd.MarkFlagRequired("user-id")

	userCmd.AddCommand(userGetCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userUpdateCmd)
	userCmd.AddCommand(userDeleteCmd)
	userCmd.AddCommand(userUnlinkCmd)
}

func userGet(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	user, err := client.Users.Get(context.Background(), rest.Params{"id": args[0]})
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	fmt.Printf("ID:    %s\nEmail: %s\nName:  %s\n", user.ID, user.Email, user.Name)
	return nil
}

func userList(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	users, err := client.Users.GetAll(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	if len(users) == 0 {
		fmt.Println("No users found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMAIL\tNAME\tBLOCKED")
	for _, user := range users {
		blocked := "No"
		if user.Blocked {
			blocked = "Yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", user.ID, user.Email, user.Name, blocked)
	}
	w.Flush()

	return nil
}

func userCreate(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	data := map[string]any{"email": userEmail}
	if userName != "" {
		data["name"] = userName
	}
	if userConnection != "" {
		data["connection"] = userConnection
	}

	user, err := client.Users.Create(context.Background(), data)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("User '%s' created successfully (ID: %s)\n", userEmail, user.ID)
	return nil
}

func userUpdate(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	data := map[string]any{}
	if userEmail != "" {
		data["email"] = userEmail
	}
	if userName != "" {
		data["name"] = userName
	}
	if len(data) == 0 {
		return fmt.Errorf("nothing to update")
	}

	user, err := client.Users.Update(context.Background(), rest.Params{"id": args[0]}, data)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	fmt.Printf("User '%s' updated successfully\n", user.ID)
	return nil
}

func userDelete(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("user id must be a number: %w", err)
	}

	if err := client.Users.Delete(context.Background(), rest.Params{"id": id}); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	fmt.Printf("User '%d' deleted successfully\n", id)
	return nil
}

func userUnlink(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	_, err = client.Users.Unlink(context.Background(), rest.Params{
		"id":       args[0],
		"provider": userProvider,
		"user_id":  userIdentityID,
	})
	if err != nil {
		return fmt.Errorf("failed to unlink identity: %w", err)
	}

	fmt.Printf("Identity '%s|%s' unlinked from user '%s'\n", userProvider, userIdentityID, args[0])
	return nil
}
