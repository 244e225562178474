package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/app"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/config"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/database"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/newsletter"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/tokens"
)

var errNoMongo = errors.New("MONGODB_URI is not set")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "leadctl",
		Short:         "Operate the CohortLab lead API",
		SilenceUsage:  true,
	}
	root.AddCommand(newTokenCmd(), newVerifyCmd(), newIndexesCmd(), newStatsCmd())
	return root
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// adminSecret prefers the flag over ADMIN_JWT_SECRET.
func adminSecret(cmd *cobra.Command) (string, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return "", nil, err
	}
	secret, _ := cmd.Flags().GetString("secret")
	if secret == "" {
		secret = cfg.Admin.JWTSecret
	}
	if secret == "" {
		return "", nil, errors.New("no admin secret: set ADMIN_JWT_SECRET or pass --secret")
	}
	return secret, cfg, nil
}

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an admin bearer token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret, cfg, err := adminSecret(cmd)
			if err != nil {
				return err
			}
			subject, _ := cmd.Flags().GetString("subject")
			ttl, _ := cmd.Flags().GetDuration("ttl")
			if ttl <= 0 {
				ttl = cfg.Admin.TokenTTL
			}
			tok, err := tokens.GenerateAdminToken(secret, subject, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().String("subject", "operator", "token subject (sub claim)")
	cmd.Flags().Duration("ttl", 0, "token lifetime (default ADMIN_TOKEN_TTL_MINUTES)")
	cmd.Flags().String("secret", "", "HS256 secret (default ADMIN_JWT_SECRET)")
	return cmd
}

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <token>",
		Short: "Check an admin token and print its claims",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, _, err := adminSecret(cmd)
			if err != nil {
				return err
			}
			tok, err := tokens.NewHMACVerifier(secret).Verify(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			var claims map[string]interface{}
			if err := tok.Claims(&claims); err != nil {
				return err
			}
			return printJSON(cmd, claims)
		},
	}
	cmd.Flags().String("secret", "", "HS256 secret (default ADMIN_JWT_SECRET)")
	return cmd
}

func connect(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	if cfg.MongoDB.URI == "" {
		return nil, errNoMongo
	}
	return database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
}

func newIndexesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "indexes",
		Short: "Create the indexes of every lead collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, err := connect(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { _ = client.Disconnect(context.Background()) }()

			if err := app.MongoRepos(client.Database(cfg.MongoDB.Database)).EnsureIndexes(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "indexes ensured on database %s\n", cfg.MongoDB.Database)
			return nil
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print newsletter subscription counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client, err := connect(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = client.Disconnect(context.Background()) }()

			repo := newsletter.NewMongoRepo(client.Database(cfg.MongoDB.Database).Collection(newsletter.Collection))
			st, err := repo.Stats(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd, st)
		},
	}
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
