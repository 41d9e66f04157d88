package app

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/DivyaPradhan23/grocery-backend/config"
	"github.com/DivyaPradhan23/grocery-backend/libs"
	"github.com/DivyaPradhan23/grocery-backend/middleware"
	"github.com/DivyaPradhan23/grocery-backend/repositories"
	"github.com/DivyaPradhan23/grocery-backend/routes"
	"github.com/DivyaPradhan23/grocery-backend/services"
	"github.com/DivyaPradhan23/grocery-backend/utils"
)

// App holds the wired application and the connections it owns.
type App struct {
	Config   *config.Config
	DB       *pgxpool.Pool
	Redis    *redis.Client
	Services routes.Services
	Router   *gin.Engine
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	pool, err := config.ConnectDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	redisClient := config.ConnectRedis(ctx, cfg)

	svc, err := BuildServices(cfg, pool, redisClient)
	if err != nil {
		pool.Close()
		if redisClient != nil {
			redisClient.Close()
		}
		return nil, err
	}

	uploadDir := ""
	if cfg.CloudinaryURL == "" {
		uploadDir = cfg.UploadDir
	}

	return &App{
		Config:   cfg,
		DB:       pool,
		Redis:    redisClient,
		Services: svc,
		Router:   NewRouter(cfg.OriginURL, svc, uploadDir),
	}, nil
}

// BuildServices wires repositories and optional integrations into the
// services. Redis and SMTP are optional; image uploads go to Cloudinary when
// configured and to the local upload directory otherwise.
func BuildServices(cfg *config.Config, pool *pgxpool.Pool, redisClient *redis.Client) (routes.Services, error) {
	users := repositories.NewUserRepository(pool)
	products := repositories.NewProductRepository(pool)

	var images services.ImageUploader
	if cfg.CloudinaryURL != "" {
		uploader, err := libs.NewCloudinaryUploader(cfg.CloudinaryURL)
		if err != nil {
			return routes.Services{}, err
		}
		images = uploader
	} else {
		if err := os.MkdirAll(cfg.UploadDir, os.ModePerm); err != nil {
			return routes.Services{}, errors.Wrap(err, "failed to create upload directory")
		}
		images = libs.NewLocalUploader(cfg.UploadDir, cfg.PublicBaseURL)
	}

	var cache services.ProductCache
	if redisClient != nil {
		cache = libs.NewProductCache(redisClient, cfg.ProductCacheTTL)
	}

	var notifier services.OrderNotifier
	if cfg.MailEnabled() {
		notifier = libs.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	} else {
		log.Info("SMTP not configured, order confirmation mails disabled")
	}

	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	return routes.Services{
		Auth:     services.NewAuthService(users, tokens),
		Products: services.NewProductService(products, cache, images, cfg.MaxUploadSize),
		Cart:     services.NewCartService(repositories.NewCartRepository(pool), products),
		Checkout: services.NewCheckoutService(
			repositories.NewOrderRepository(pool),
			repositories.NewPromoRepository(pool),
			users,
			notifier,
		),
		Wishlist: services.NewWishlistService(repositories.NewWishlistRepository(pool), products),
		Reports:  services.NewReportService(repositories.NewReportRepository(pool)),
		Promos:   services.NewPromoService(repositories.NewPromoRepository(pool)),
	}, nil
}

func NewRouter(originURL string, svc routes.Services, uploadDir string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORSMiddleware(originURL))

	routes.SetupRoutes(router, svc, uploadDir)
	return router
}

func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			log.WithError(err).Warn("failed to close Redis client")
		}
	}
	if a.DB != nil {
		a.DB.Close()
	}
	log.Info("connections closed")
}
