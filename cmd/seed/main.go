package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"rentwheels/config"
	"rentwheels/di"
	"rentwheels/internal/seeder"
	"rentwheels/shared/logger"
)

func main() {
	logger.InitLogger()
	logger.SetLogLevel(config.Get())

	app := &cli.App{
		Name:   "seed",
		Usage:  "load the default car catalog and the admin account",
		Action: seedAll,
		Commands: []*cli.Command{
			{
				Name:   "all",
				Usage:  "seed the admin account and the catalog",
				Action: seedAll,
			},
			{
				Name:  "admin",
				Usage: "seed the admin account only",
				Action: func(c *cli.Context) error {
					s, catalog, err := load()
					if err != nil {
						return err
					}

					_, err = s.SeedAdmin(c.Context, catalog.Admin)

					return err //nolint:wrapcheck
				},
			},
			{
				Name:  "cars",
				Usage: "seed the catalog cars only",
				Action: func(c *cli.Context) error {
					s, catalog, err := load()
					if err != nil {
						return err
					}

					_, err = s.SeedCars(c.Context, catalog.Cars)

					return err //nolint:wrapcheck
				},
			},
			{
				Name:  "list",
				Usage: "print the embedded catalog",
				Action: func(c *cli.Context) error {
					catalog, err := seeder.LoadCatalog()
					if err != nil {
						return err //nolint:wrapcheck
					}

					for _, car := range catalog.Cars {
						fmt.Fprintf(c.App.Writer, "%-30s %10.2f %d seats %-9s %s\n",
							car.Name, car.PricePerDay, car.Seats, car.Transmission, car.FuelType)
					}

					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}
}

func seedAll(c *cli.Context) error {
	s, err := di.InitializeSeeder()
	if err != nil {
		return err //nolint:wrapcheck
	}

	res, err := s.Run(c.Context)
	if err != nil {
		return err //nolint:wrapcheck
	}

	log.Info().Bool("admin", res.Admin).Int("cars", res.Cars).Msg("Seeding finished")

	return nil
}

func load() (*seeder.Seeder, seeder.Catalog, error) {
	catalog, err := seeder.LoadCatalog()
	if err != nil {
		return nil, seeder.Catalog{}, err //nolint:wrapcheck
	}

	s, err := di.InitializeSeeder()
	if err != nil {
		return nil, seeder.Catalog{}, err //nolint:wrapcheck
	}

	return s, catalog, nil
}
