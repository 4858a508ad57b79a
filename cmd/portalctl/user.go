package main

import (
	"errors"
	"fmt"

	"github.com/2beens/coachportal/internal/auth"
	"github.com/2beens/coachportal/pkg"

	"github.com/spf13/cobra"
)

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print the bcrypt hash of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := pkg.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func userCmd(flags *globalFlags) *cobra.Command {
	c := &cobra.Command{
		Use:   "user",
		Short: "Manage portal accounts",
	}
	c.AddCommand(userAddCmd(flags))
	return c
}

func userAddCmd(flags *globalFlags) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an account with email and password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			dbPool, err := connect(ctx, flags)
			if err != nil {
				return err
			}
			defer dbPool.Close()

			users := auth.NewUserRepo(dbPool)
			if err := users.EnsureSchema(ctx); err != nil {
				return fmt.Errorf("ensure users schema: %w", err)
			}

			// sessions are not needed to create accounts
			identity := auth.NewIdentity(users, nil, nil)
			user, err := identity.CreateUser(ctx, email, password)
			if errors.Is(err, auth.ErrUserExists) {
				return fmt.Errorf("account %s already exists", email)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created user %s (%s)\n", user.ID, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
