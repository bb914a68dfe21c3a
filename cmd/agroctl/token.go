package main

import (
	"fmt"
	"time"

	"github.com/agrodash/agroadmin/internal/server/auth"
	"github.com/spf13/cobra"
)

func newTokenCmd(c *cli) *cobra.Command {
	var (
		userID string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token signed with the server secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if ttl <= 0 {
				ttl = cfg.AccessTokenValidityDuration
			}
			token, err := auth.GenerateToken(userID, []byte(cfg.SecretKey), ttl)
			if err != nil {
				return fmt.Errorf("generate token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVarP(&userID, "user", "u", "", "user id placed in the token")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to the configured validity)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
