package main

import (
	"fmt"

	"produce-kart/internal/repository"
	"produce-kart/internal/seed"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	var (
		file     string
		bucket   string
		region   string
		s3Prefix string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a YAML catalog of products, offers and merits",
		Long: `Load a catalog file and upsert its products and offers. Merits and the
offer-week flag replace the stored settings.

When an S3 bucket is configured the catalog is read from
s3://<bucket>/<prefix><file> first, falling back to the local file.
Files ending in .gz are decompressed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadTools("seed")
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("s3-bucket") {
				cfg.S3.Bucket = bucket
			}
			if cmd.Flags().Changed("s3-region") {
				cfg.S3.Region = region
			}
			if cmd.Flags().Changed("s3-prefix") {
				cfg.S3.Prefix = s3Prefix
			}

			ctx := cmd.Context()

			var s3Loader seed.Loader
			if cfg.S3.Bucket != "" {
				s3Loader, err = seed.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
				if err != nil {
					logger.Warn().Err(err).Msg("S3 loader unavailable, using local files only")
				}
			}
			loader := seed.NewFallbackLoader(s3Loader, seed.NewFileLoader(logger), cfg.S3.Prefix, s3Loader != nil, logger)

			catalog, err := loader.Load(ctx, file)
			if err != nil {
				return err
			}

			repos, err := repository.Open(ctx, cfg.Database, logger)
			if err != nil {
				return err
			}
			defer repos.Close()

			res, err := seed.NewSeeder(repos.Products, repos.Offers, repos.Settings, logger).Apply(ctx, catalog)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"products: %d created, %d updated\noffers: %d created, %d updated\nmerits: %d\n",
				res.ProductsCreated, res.ProductsUpdated, res.OffersCreated, res.OffersUpdated, res.Merits)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "catalog.yaml", "catalog file (.yaml, .yml or .gz)")
	cmd.Flags().StringVar(&bucket, "s3-bucket", "", "S3 bucket holding catalog files (overrides SEED_S3_BUCKET)")
	cmd.Flags().StringVar(&region, "s3-region", "", "AWS region of the bucket (overrides S3_REGION)")
	cmd.Flags().StringVar(&s3Prefix, "s3-prefix", "", "key prefix within the bucket (overrides SEED_S3_PREFIX)")
	return cmd
}
