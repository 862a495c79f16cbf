package main

import (
	"fmt"
	"log"
	"os"

	"geoattend/backend/foundation/web"
	"geoattend/backend/internal/auth"
	"geoattend/backend/internal/commands"
	"geoattend/backend/internal/pkg/config"
	"geoattend/backend/internal/pkg/repository/postgresql"
	"geoattend/backend/internal/router"

	"github.com/ardanlabs/conf"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

var build = "develop"

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, commands.ErrHelp) {
			log.Println("error:", err)
		}
		os.Exit(1)
	}
}

func run() error {
	var settings struct {
		conf.Version
		Web struct {
			Address string `conf:"default:0.0.0.0:8080"`
		}
		Migrate         bool `conf:"default:false"`
		Seed            bool `conf:"default:false"`
		ClearAttendance bool `conf:"default:false"`
	}
	settings.Version.SVN = build
	settings.Version.Desc = "geofenced attendance backend"

	if err := conf.Parse(os.Args[1:], "GEOATTEND", &settings); err != nil {
		switch {
		case errors.Is(err, conf.ErrHelpWanted):
			usage, err := conf.Usage("GEOATTEND", &settings)
			if err != nil {
				return errors.Wrap(err, "generating config usage")
			}
			fmt.Println(usage)
			return commands.ErrHelp
		case errors.Is(err, conf.ErrVersionWanted):
			version, err := conf.VersionString("GEOATTEND", &settings)
			if err != nil {
				return errors.Wrap(err, "generating config version")
			}
			fmt.Println(version)
			return commands.ErrHelp
		}
		return errors.Wrap(err, "parsing config")
	}

	cfg, err := config.NewConfig()
	if err != nil {
		return errors.Wrap(err, "loading config")
	}

	postgresDB := postgresql.NewDatabase(cfg)
	defer postgresDB.Close()

	if settings.Migrate {
		commands.MigrateUP(postgresDB)
	}
	if settings.Seed {
		commands.Seed(postgresDB)
	}
	if settings.ClearAttendance {
		commands.ClearAttendance(postgresDB)
		return nil
	}

	redisDB := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisHost,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisDB.Close()

	authenticator := auth.New(cfg.JWTKey)

	app := web.NewApp()

	r := router.NewRouter(app, postgresDB, redisDB, settings.Web.Address, authenticator, cfg.BaseUrl)

	log.Printf("api listening on %s", settings.Web.Address)

	return r.Init()
}
