package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/agrodash/agroadmin/internal/server/auth"
	"github.com/agrodash/agroadmin/internal/server/models"
	"github.com/agrodash/agroadmin/internal/server/restapi"
	"github.com/agrodash/agroadmin/internal/server/services"
	"github.com/agrodash/agroadmin/internal/server/validation"
	"github.com/spf13/cobra"
)

func newStatsCmd(c *cli) *cobra.Command {
	var (
		filter   models.MarketPriceFilter
		from, to string
		token    string
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print market price statistics from the REST API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if filter.From, err = parseDay(from); err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			if filter.To, err = parseDay(to); err != nil {
				return fmt.Errorf("--to: %w", err)
			}

			ctx := cmd.Context()
			if token != "" {
				sess, err := auth.NewVerifier([]byte(cfg.SecretKey)).Verify(token)
				if err != nil {
					return fmt.Errorf("--token: %w", err)
				}
				ctx = auth.WithSession(ctx, sess)
			}

			svc := services.NewMarketPriceService(restapi.New(cfg.APIBaseURL, cfg.APITimeout), validation.New())
			stats, err := svc.Stats(ctx, filter)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		},
	}
	cmd.Flags().StringVar(&filter.Crop, "crop", "", "crop name")
	cmd.Flags().StringVar(&filter.Market, "market", "", "market name")
	cmd.Flags().StringVar(&filter.Region, "region", "", "region")
	cmd.Flags().StringVar(&from, "from", "", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last day, YYYY-MM-DD")
	cmd.Flags().StringVar(&token, "token", "", "bearer token forwarded to the API")
	return cmd
}

func parseDay(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
