package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/auth"
	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/domain"
)

func newTokenCmd() *cobra.Command {
	var (
		secret string
		role   string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token <user_id>",
		Short: "mint a development bearer token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := domain.Role(role)
			if !r.Valid() {
				return fmt.Errorf("role: unknown role %q", role)
			}
			token, err := auth.NewJWTService(secret).GenerateToken(domain.Identity{UserID: args[0], Role: r}, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "dev_secret", "HMAC secret shared with the server")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleStudent), "student, supervisor or admin")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")

	return cmd
}
