package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/Guyuepp/layers-blog/domain"
	"github.com/Guyuepp/layers-blog/internal/config"
	"github.com/Guyuepp/layers-blog/internal/identity"
	"github.com/Guyuepp/layers-blog/internal/notify"
	"github.com/Guyuepp/layers-blog/internal/repository"
	mongoRepo "github.com/Guyuepp/layers-blog/internal/repository/mongodb"
	mysqlRepo "github.com/Guyuepp/layers-blog/internal/repository/mysql"
	myRedisCache "github.com/Guyuepp/layers-blog/internal/repository/redis"
	"github.com/Guyuepp/layers-blog/internal/rest"
	"github.com/Guyuepp/layers-blog/internal/rest/middleware"
	"github.com/Guyuepp/layers-blog/internal/usecase/auth"
	"github.com/Guyuepp/layers-blog/internal/usecase/comment"
)

const (
	dbMaxRetry         = 10
	dbRetryIntervalSec = 2
)

func setupLogging(cfg config.Config) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Warnf("unknown LOG_LEVEL %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	if cfg.Env == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		gin.SetMode(gin.ReleaseMode)
	}
}

func openMySQL(cfg config.Database) (*gorm.DB, error) {
	connection := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", cfg.User, cfg.Pass, cfg.Host, cfg.Port, cfg.Name)
	val := url.Values{}
	val.Add("parseTime", "1")
	val.Add("loc", "UTC")
	val.Add("multiStatements", "true")
	dsn := fmt.Sprintf("%s?%s", connection, val.Encode())

	var (
		db  *gorm.DB
		err error
	)
	for i := range dbMaxRetry {
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
		if err != nil {
			logrus.Warnf("failed to open connection to database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
		} else {
			sqlDB, derr := db.DB()
			if derr != nil {
				err = derr
				logrus.Warnf("failed to get sql.DB from gorm.DB (attempt %d/%d): %v", i+1, dbMaxRetry, err)
				continue
			}
			if err = sqlDB.Ping(); err == nil {
				return db, nil
			}
			logrus.Warnf("failed to ping database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
			_ = sqlDB.Close()
		}
		time.Sleep(dbRetryIntervalSec * time.Second)
	}
	return nil, err
}

func main() {
	cfg := config.Load()
	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// prepare database; posts always live in MySQL
	db, err := openMySQL(cfg.Database)
	if err != nil {
		logrus.Fatalf("could not connect to database after retries: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatalf("got error when getting sql.DB from gorm.DB: %v", err)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			logrus.Errorf("got error when closing the DB connection: %v", err)
		}
	}()
	if err := mysqlRepo.Migrate(ctx, sqlDB); err != nil {
		logrus.Fatalf("failed to migrate database: %v", err)
	}

	// prepare cache
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.Host + ":" + cfg.Cache.Port,
		Password: cfg.Cache.Pass,
		DB:       cfg.Cache.DB,
	})
	defer func() {
		if err := client.Close(); err != nil {
			logrus.Errorf("got error when closing the cache connection: %v", err)
		}
	}()
	if err := client.Ping(ctx).Err(); err != nil {
		logrus.Fatalf("failed to open connection to cache: %v", err)
	}

	checks := map[string]rest.Check{
		"mysql": sqlDB.PingContext,
		"redis": func(ctx context.Context) error { return client.Ping(ctx).Err() },
	}

	// comment store
	var commentRepo domain.CommentRepository
	switch cfg.StoreDriver {
	case config.StoreMongo:
		mc, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			logrus.Fatalf("failed to connect to mongo: %v", err)
		}
		defer func() {
			if err := mc.Disconnect(context.Background()); err != nil {
				logrus.Errorf("got error when disconnecting mongo: %v", err)
			}
		}()
		if err := mc.Ping(ctx, nil); err != nil {
			logrus.Fatalf("failed to ping mongo: %v", err)
		}
		repo := mongoRepo.NewCommentRepository(mc.Database(cfg.MongoDatabase))
		if err := repo.EnsureIndexes(ctx); err != nil {
			logrus.Fatalf("failed to create mongo indexes: %v", err)
		}
		commentRepo = repo
		checks["mongo"] = func(ctx context.Context) error { return mc.Ping(ctx, nil) }
	case config.StoreMySQL:
		commentRepo = mysqlRepo.NewCommentRepository(db)
	default:
		logrus.Fatalf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	// post store: db, cache, coordinator
	postDBRepo := mysqlRepo.NewPostDBRepository(db)
	postCache := myRedisCache.NewPostCache(client)
	postRepo := repository.NewPostRepository(postDBRepo, postCache)
	bloomRepo := myRedisCache.NewRedisBloomRepo(client, cfg.BloomBitSize)
	sessionRepo := myRedisCache.NewSessionRepository(client)

	var mailer domain.Mailer = notify.LogMailer{}
	if len(cfg.KafkaBrokers) > 0 {
		km := notify.NewKafkaMailer(cfg.KafkaBrokers, cfg.KafkaMailTopic)
		defer func() {
			if err := km.Close(); err != nil {
				logrus.Errorf("got error when closing the kafka writer: %v", err)
			}
		}()
		mailer = km
	} else {
		logrus.Warn("KAFKA_BROKERS not set, magic links are written to the log")
	}

	// Build service Layer
	adminCookie := identity.NewAdminCookie([]byte(cfg.AdminCookieSecret), cfg.AdminCookieFlag, cfg.AdminCookieTTL)
	if cfg.AdminCookieSecret == "" {
		logrus.Warn("ADMIN_COOKIE_SECRET not set, admin sign-in is disabled")
	}
	resolver := identity.NewResolver(sessionRepo, adminCookie)

	commentSvc := comment.NewService(commentRepo, postRepo, bloomRepo, comment.Config{
		AdminEmail:          cfg.AdminEmail,
		RequireExistingPost: cfg.RequireExistingPost,
	})
	authSvc := auth.NewService(sessionRepo, mailer, adminCookie, auth.Config{
		SiteURL:           cfg.SiteURL,
		MagicLinkTTL:      cfg.MagicLinkTTL,
		SessionTTL:        cfg.SessionTTL,
		AdminPasswordHash: []byte(cfg.AdminPasswordHash),
	})

	// Prepare bloom filter
	if cfg.RequireExistingPost {
		if err := commentSvc.InitBloomFilter(ctx); err != nil {
			logrus.Fatalf("failed to init bloom filter: %v", err)
		}
	}

	// prepare gin
	metrics := middleware.NewMetrics(prometheus.DefaultRegisterer)
	route := gin.Default()
	route.Use(metrics.Handler())
	route.Use(middleware.CORS(cfg.SiteURL))
	route.Use(middleware.SetRequestContextWithTimeout(cfg.ContextTimeout))

	route.GET("/metrics", gin.WrapH(promhttp.Handler()))
	rest.NewHealthHandler(checks).Register(route)

	api := route.Group("/")
	api.Use(middleware.Identity(resolver))
	rest.NewCommentHandler(commentSvc).Register(api)
	rest.NewAdminHandler(commentSvc).Register(api)
	rest.NewAuthHandler(authSvc, cfg.SessionTTL, cfg.AdminCookieTTL, cfg.SecureCookies()).Register(api)

	// Start Server
	srv := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: route,
	}
	go func() {
		logrus.Infof("Server is running on %s", cfg.ServerAddress)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("listen: %s", err)
		}
	}()

	// shutdown
	<-ctx.Done()
	logrus.Info("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}
	logrus.Info("Server exiting")
}
