package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"novelhub/database"
	"novelhub/internal/config"
	"novelhub/internal/microservices/http-api/repository"
	"novelhub/internal/middleware/auth"
	"novelhub/internal/shared"
	"novelhub/pkg/logger"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "novelhub",
		Usage: "web novel publishing and reading API",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the http api",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "create or update the database schema",
				Action: migrate,
			},
			{
				Name:   "seed",
				Usage:  "insert the genre catalogue",
				Action: seed,
			},
			{
				Name:  "token",
				Usage: "sign a development session token with SESSION_JWT_SECRET",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "sub", Required: true, Usage: "identity provider subject id"},
					&cli.StringFlag{Name: "email"},
					&cli.StringFlag{Name: "name", Usage: "display name, split on the first space"},
					&cli.DurationFlag{Name: "ttl", Value: 24 * time.Hour},
				},
				Action: token,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("novelhub exited")
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("could not load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Init(cfg.GoEnv, cfg.LogLevel, cfg.LogFormat)
	return cfg, nil
}

func migrate(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := database.Connect(c.Context, cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	return database.Migrate(c.Context, db)
}

func seed(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := database.Connect(c.Context, cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	added, err := repository.NewGenreRepository(db).SeedNames(c.Context, database.Genres)
	if err != nil {
		return err
	}
	log.Info().Int64("added", added).Int("catalogue", len(database.Genres)).Msg("genres seeded")
	return nil
}

func token(c *cli.Context) error {
	secret := os.Getenv("SESSION_JWT_SECRET")
	if secret == "" {
		return fmt.Errorf("SESSION_JWT_SECRET is not set")
	}
	p := shared.Principal{Subject: c.String("sub"), Email: c.String("email")}
	first, last, _ := strings.Cut(c.String("name"), " ")
	p.FirstName, p.LastName = first, last

	signed, err := auth.NewHMACVerifier(secret, os.Getenv("SESSION_JWT_ISSUER")).Sign(p, c.Duration("ttl"))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, signed)
	return nil
}
