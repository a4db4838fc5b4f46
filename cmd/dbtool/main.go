package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"visit-route-service/internal/adapters/cache"
	"visit-route-service/internal/adapters/geocode"
	"visit-route-service/internal/adapters/repositories"
	"visit-route-service/internal/config"
	"visit-route-service/internal/logger"
	"visit-route-service/internal/platform/db"
	"visit-route-service/internal/ports"
	"visit-route-service/internal/services"
)

type options struct {
	Logger   logger.Logger   `group:"Logger options"`
	Database config.Database `group:"Database options"`
}

var opts options

type initCommand struct{}

type seedCommand struct {
	File string `short:"f" long:"file" env:"SEED_PATH" description:"Seed file (.json, .yaml, .xlsx)" required:"true"`
}

type geocodeCommand struct {
	APIKey    string        `long:"ors-api-key" env:"ORS_API_KEY"   description:"OpenRouteService API key" required:"true"`
	Country   string        `long:"country"     env:"GEOCODE_COUNTRY" description:"Restrict results to an ISO country code"`
	Cache     string        `long:"cache"       env:"GEOCODE_CACHE" description:"Geocode cache backend" choice:"sql" choice:"redis" default:"sql"`
	RedisAddr string        `long:"redis-addr"  env:"REDIS_ADDR"    description:"Redis address for the redis cache" default:"localhost:6379"`
	RedisTTL  time.Duration `long:"redis-ttl"   env:"REDIS_TTL"     description:"Lifetime of redis cache entries (0 keeps them)" default:"720h"`
	Timeout   time.Duration `long:"timeout"                         description:"Overall deadline for the run" default:"10m"`
}

func main() {
	config.LoadEnv()

	parser := flags.NewParser(&opts, flags.Default)
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		opts.Logger.Setup()
		if cmd == nil {
			return nil
		}
		return cmd.Execute(args)
	}

	_, _ = parser.AddCommand("init", "Create the database schema", "", &initCommand{})
	_, _ = parser.AddCommand("seed", "Create the schema and load outlets and assignments", "", &seedCommand{})
	_, _ = parser.AddCommand("geocode", "Resolve coordinates for outlets that only have an address", "", &geocodeCommand{})

	if _, err := parser.Parse(); err != nil {
		if config.IsHelp(err) {
			os.Exit(0)
		}
		var fe *flags.Error
		if errors.As(err, &fe) {
			os.Exit(2)
		}
		log.Fatal().Err(err).Msg("dbtool failed")
	}
}

func openDB() (*sql.DB, db.Dialect, error) {
	dialect, err := db.ParseDialect(opts.Database.Driver)
	if err != nil {
		return nil, "", err
	}
	conn, err := db.Open(dialect, opts.Database.URL)
	if err != nil {
		return nil, "", err
	}
	if err := repositories.InitSchema(conn); err != nil {
		conn.Close()
		return nil, "", err
	}
	return conn, dialect, nil
}

func (c *initCommand) Execute([]string) error {
	conn, dialect, err := openDB()
	if err != nil {
		return err
	}
	defer conn.Close()

	log.Info().Str("db_driver", string(dialect)).Msg("schema ready")
	return nil
}

func (c *seedCommand) Execute([]string) error {
	conn, dialect, err := openDB()
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log.Info().Str("path", c.File).Msg("seeding database")
	if err := repositories.SeedFromFile(ctx, conn, dialect, c.File); err != nil {
		return err
	}
	log.Info().Msg("seeding complete")
	return nil
}

func (c *geocodeCommand) Execute([]string) error {
	if strings.TrimSpace(c.APIKey) == "" {
		return errors.New("ORS_API_KEY is required")
	}

	conn, dialect, err := openDB()
	if err != nil {
		return err
	}
	defer conn.Close()

	geocoder, err := geocode.NewORSGeocoder(c.APIKey, geocode.WithCountry(c.Country))
	if err != nil {
		return err
	}

	var gc ports.GeocodeCache
	switch c.Cache {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: c.RedisAddr})
		defer client.Close()
		gc = cache.NewRedisGeocodeCache(client, c.RedisTTL)
	default:
		gc = cache.NewSQLGeocodeCache(conn, dialect)
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	repo := repositories.NewSQLOutletRepository(conn, dialect)
	res, err := services.BackfillCoordinates(ctx, repo, geocoder, gc)
	if err != nil {
		return fmt.Errorf("geocode: %w", err)
	}

	for _, o := range res.Updated {
		log.Debug().
			Int64("outlet_id", o.ID).
			Float64("lat", *o.Lat).
			Float64("lon", *o.Lon).
			Msg("outlet located")
	}

	log.Info().
		Int("candidates", res.Candidates).
		Int("from_cache", res.FromCache).
		Int("geocoded", res.Geocoded).
		Int("failed", res.Failed).
		Str("cache", c.Cache).
		Msg("geocode backfill complete")
	return nil
}
