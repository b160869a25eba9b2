// Package app 按配置装配 store → repo → service → handler → engine。
package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"postboard/internal/core/config"
	"postboard/internal/core/database"
	"postboard/internal/domain"
	"postboard/internal/repo"
	"postboard/internal/service"
	"postboard/internal/store"
	"postboard/internal/transport/http/handler"
	"postboard/internal/transport/http/router"
)

const DriverMemory = "memory"

type App struct {
	Engine *gin.Engine
	DB     *gorm.DB // memory 驱动时为 nil
}

func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return database.Close(a.DB)
}

func New(cfg *config.Config, l *zap.Logger) (*App, error) {
	a := &App{}
	var (
		users store.Store[domain.User]
		posts store.Store[domain.Post]
	)

	if cfg.DB.Driver == DriverMemory {
		users = store.NewMemory[domain.User]()
		posts = store.NewMemory[domain.Post]()
		l.Info("using in-memory store")
	} else {
		db, err := database.NewGorm(database.Opts{
			Driver:             cfg.DB.Driver,
			DSN:                cfg.DB.DSN,
			Username:           cfg.DB.Username,
			Password:           cfg.DB.Password,
			MaxOpenConns:       cfg.DB.MaxOpenConns,
			MaxIdleConns:       cfg.DB.MaxIdleConns,
			ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
			LogLevel:           cfg.DB.LogLevel,
			Logger:             l,
		})
		if err != nil {
			return nil, fmt.Errorf("open db: %w", err)
		}
		a.DB = db
		l.Info("database connected", zap.String("driver", cfg.DB.Driver))

		if cfg.DB.AutoMigrate {
			if err := database.Migrate(db); err != nil {
				_ = a.Close()
				return nil, fmt.Errorf("automigrate: %w", err)
			}
			l.Info("automigrate done")
		}
		users = store.NewGorm[domain.User](db)
		posts = store.NewGorm[domain.Post](db)
	}

	userRepo := repo.NewUserRepo(users)
	postRepo := repo.NewPostRepo(posts)

	a.Engine = router.NewAPIEngine(l, router.OptionsFrom(cfg.App.HTTP),
		handler.NewUserHandler(service.NewUserService(userRepo, l)),
		handler.NewPostHandler(service.NewPostService(postRepo, userRepo, l)),
	)
	return a, nil
}
