package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	httpadp "genesis-lending/internal/adapter/http"
	"genesis-lending/internal/adapter/middleware"
	"genesis-lending/internal/adapter/repository/mysql"
	"genesis-lending/internal/config"
	"genesis-lending/internal/infrastructure/cache"
	"genesis-lending/internal/infrastructure/db"
	"genesis-lending/internal/infrastructure/logger"
	"genesis-lending/internal/infrastructure/token"
	"genesis-lending/internal/usecase/account"
	"genesis-lending/internal/usecase/loan"
	"genesis-lending/internal/usecase/profile"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	gormLevel := gormlogger.Warn
	if logger.ParseLevel(cfg.LogLevel) == zap.DebugLevel {
		gormLevel = gormlogger.Info
	}
	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN(), gormLevel)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			zl.Warn("db close", zap.Error(err))
		}
	}()
	if cfg.DBAutoMigrate {
		if err := db.Migrate(gdb); err != nil {
			return err
		}
	}

	// idempotency is best effort; without redis it is disabled
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = cache.OpenRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			zl.Warn("redis unavailable, idempotency disabled", zap.String("addr", cfg.RedisAddr), zap.Error(err))
			rdb = nil
		} else {
			defer func() { _ = rdb.Close() }()
		}
	}

	users := mysql.NewUserRepository(gdb)
	loans := mysql.NewLoanRepository(gdb)
	tx := mysql.NewGormUoW(gdb)
	tokens := token.NewManager(cfg.JWTIssuer, cfg.JWTSecret, cfg.JWTTTL)
	loanUC := loan.NewUsecase(loans, tx)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Recover(), middleware.RequestID(), middleware.RequestLogger(zl), echomw.CORS())

	httpadp.Routes{
		Base:        httpadp.NewHandler(),
		Auth:        httpadp.NewAuthHandler(account.NewUsecase(users, tokens)),
		Loans:       httpadp.NewLoanHandler(loanUC),
		Profile:     httpadp.NewProfileHandler(profile.NewUsecase(users, tx), loanUC),
		Authn:       middleware.Auth(tokens, users),
		Idempotency: middleware.Idempotency(rdb, cfg.IdempotencyTTL()),
	}.Register(e)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.AppPort
	errCh := make(chan error, 1)
	go func() {
		zl.Info("listening", zap.String("addr", addr), zap.String("env", cfg.AppEnv))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
