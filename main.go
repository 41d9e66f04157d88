package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/DivyaPradhan23/grocery-backend/app"
	"github.com/DivyaPradhan23/grocery-backend/config"
	_ "github.com/DivyaPradhan23/grocery-backend/docs"
	"github.com/DivyaPradhan23/grocery-backend/models"
	"github.com/DivyaPradhan23/grocery-backend/repositories"
	"github.com/DivyaPradhan23/grocery-backend/services"
)

// @title Grocery Store API
// @version 1.0
// @description Grocery e-commerce backend: catalog, cart, checkout with promo codes, wishlist and manager reports.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cliApp := &cli.App{
		Name:   "grocery",
		Usage:  "grocery store backend",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP API",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "apply database migrations",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "down", Usage: "roll back the most recent migration"},
				},
				Action: migrate,
			},
			{
				Name:  "set-role",
				Usage: "change the role of a user",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Required: true},
					&cli.StringFlag{Name: "role", Required: true, Usage: "customer or manager"},
				},
				Action: setRole,
			},
			{
				Name:  "create-promo",
				Usage: "create a promo code",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "code", Required: true},
					&cli.IntFlag{Name: "percent", Required: true, Usage: "discount percentage, 0-100"},
					&cli.StringFlag{Name: "expires", Required: true, Usage: "last valid day, YYYY-MM-DD"},
					&cli.BoolFlag{Name: "inactive", Usage: "create the code disabled"},
				},
				Action: createPromo,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.WithError(err).Fatal("command failed")
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	config.SetupLogger(cfg)
	return cfg, nil
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := config.RunMigrations(cfg.DSN(), false); err != nil {
		return err
	}

	application, err := app.New(c.Context, cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           application.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.WithFields(log.Fields{
			"port":    cfg.Port,
			"env":     cfg.AppEnv,
			"swagger": fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Port),
		}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	killSignalChan := make(chan os.Signal, 1)
	signal.Notify(killSignalChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return errors.Wrap(err, "server stopped")
	case sig := <-killSignalChan:
		log.WithField("signal", sig.String()).Info("Shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func migrate(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return config.RunMigrations(cfg.DSN(), c.Bool("down"))
}

func withPool(c *cli.Context, fn func(pool *pgxpool.Pool) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	pool, err := config.ConnectDB(c.Context, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()
	return fn(pool)
}

func setRole(c *cli.Context) error {
	username, role := c.String("username"), c.String("role")

	return withPool(c, func(pool *pgxpool.Pool) error {
		authService := services.NewAuthService(repositories.NewUserRepository(pool), nil)
		if err := authService.SetRole(c.Context, username, role); err != nil {
			return err
		}
		log.WithFields(log.Fields{"username": username, "role": role}).Info("role updated")
		return nil
	})
}

func createPromo(c *cli.Context) error {
	discount := c.Int("percent")
	active := !c.Bool("inactive")
	req := models.PromoRequest{
		Code:               c.String("code"),
		DiscountPercentage: &discount,
		Active:             &active,
		ExpiryDate:         c.String("expires"),
	}

	return withPool(c, func(pool *pgxpool.Pool) error {
		promo, err := services.NewPromoService(repositories.NewPromoRepository(pool)).Create(c.Context, req)
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"code":     promo.Code,
			"discount": promo.DiscountPercentage,
			"expiry":   promo.ExpiryDate.Format(time.DateOnly),
		}).Info("promo code created")
		return nil
	})
}
