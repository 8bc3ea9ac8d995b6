package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rekaindo/rekatrack/internal/core/service"
)

func newLoginCmd(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and store the session locally",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), ctxTimeout)
			defer cancel()

			auth := service.NewAuthService(a.client, a.store, a.log)
			session, err := auth.Login(ctx, email, password)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s (%s, %s)\n",
				session.User.Name, session.User.Role.Name, session.User.Role.Division.Name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Destroy the local session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), ctxTimeout)
			defer cancel()

			auth := service.NewAuthService(a.client, a.store, a.log)
			if err := auth.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the authenticated user's profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), ctxTimeout)
			defer cancel()

			auth := service.NewAuthService(a.client, a.store, a.log)
			user, err := auth.Profile(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "name:     %s\n", user.Name)
			fmt.Fprintf(out, "email:    %s\n", user.Email)
			fmt.Fprintf(out, "phone:    %s\n", user.PhoneNumber)
			fmt.Fprintf(out, "role:     %s\n", user.Role.Name)
			fmt.Fprintf(out, "division: %s\n", user.Role.Division.Name)
			return nil
		},
	}

	var name, email, phone string
	update := &cobra.Command{
		Use:   "update",
		Short: "Edit name, email and phone number",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), ctxTimeout)
			defer cancel()

			auth := service.NewAuthService(a.client, a.store, a.log)
			user, err := auth.UpdateProfile(ctx, name, email, phone)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "profile updated: %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}
	update.Flags().StringVar(&name, "name", "", "full name")
	update.Flags().StringVar(&email, "email", "", "email address")
	update.Flags().StringVar(&phone, "phone", "", "phone number")
	_ = update.MarkFlagRequired("name")
	_ = update.MarkFlagRequired("email")

	cmd.AddCommand(update)
	return cmd
}
