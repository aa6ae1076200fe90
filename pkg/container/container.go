package container

import (
	"context"
	"fmt"
	"time"

	"devfolio-backend/internal/config"
	infraCache "devfolio-backend/internal/infrastructure/cache"
	"devfolio-backend/internal/infrastructure/database"
	"devfolio-backend/internal/infrastructure/storage"
	"devfolio-backend/pkg/cache"
	"devfolio-backend/pkg/jwt"
	"devfolio-backend/pkg/logger"

	projectHandler "devfolio-backend/internal/domains/project/handler"
	projectRepo "devfolio-backend/internal/domains/project/repository"
	projectService "devfolio-backend/internal/domains/project/service"
	saveddevHandler "devfolio-backend/internal/domains/saveddev/handler"
	saveddevRepo "devfolio-backend/internal/domains/saveddev/repository"
	saveddevService "devfolio-backend/internal/domains/saveddev/service"
	skillHandler "devfolio-backend/internal/domains/skill/handler"
	skillRepo "devfolio-backend/internal/domains/skill/repository"
	skillService "devfolio-backend/internal/domains/skill/service"
	userHandler "devfolio-backend/internal/domains/user/handler"
	userRepo "devfolio-backend/internal/domains/user/repository"
	userService "devfolio-backend/internal/domains/user/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	Storage    *storage.MinIOStorage
	JWTManager *jwt.Manager

	UserRepo     userRepo.UserRepository
	SkillRepo    skillRepo.SkillRepository
	ProjectRepo  projectRepo.ProjectRepository
	SavedDevRepo saveddevRepo.SavedDevRepository

	AuthService     userService.AuthService
	UserService     userService.UserService
	SkillService    skillService.SkillService
	ProjectService  projectService.ProjectService
	SavedDevService saveddevService.SavedDevService

	AuthHandler     *userHandler.AuthHandler
	UserHandler     *userHandler.UserHandler
	SkillHandler    *skillHandler.SkillHandler
	ProjectHandler  *projectHandler.ProjectHandler
	SavedDevHandler *saveddevHandler.SavedDevHandler

	redisCache *infraCache.RedisCache
}

// NewContainer builds the whole graph in dependency order: config,
// infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c.DB = database.NewPostgresDB(dbConfig)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	c.redisCache = infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.redisCache.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Cache = c.redisCache

	c.Storage, err = storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Hour,
	)

	c.UserRepo = userRepo.NewPostgresUserRepository(c.DB.Pool)
	c.SkillRepo = skillRepo.NewPostgresSkillRepository(c.DB.Pool)
	c.ProjectRepo = projectRepo.NewPostgresProjectRepository(c.DB.Pool)
	c.SavedDevRepo = saveddevRepo.NewPostgresSavedDevRepository(c.DB.Pool)

	c.AuthService = userService.NewAuthService(c.UserRepo, c.JWTManager)
	c.UserService = userService.NewUserService(c.UserRepo, c.Storage, c.Cache)
	c.SkillService = skillService.NewSkillService(c.SkillRepo, c.Cache)
	c.ProjectService = projectService.NewProjectService(c.ProjectRepo, c.SkillService, c.Storage, c.Cache)
	c.SavedDevService = saveddevService.NewSavedDevService(c.SavedDevRepo, c.UserRepo)

	c.AuthHandler = userHandler.NewAuthHandler(c.AuthService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.SkillHandler = skillHandler.NewSkillHandler(c.SkillService)
	c.ProjectHandler = projectHandler.NewProjectHandler(c.ProjectService)
	c.SavedDevHandler = saveddevHandler.NewSavedDevHandler(c.SavedDevService)

	logger.Info("container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	return c, nil
}

// Cleanup closes infrastructure connections in reverse order.
func (c *Container) Cleanup() {
	if c.redisCache != nil {
		if err := c.redisCache.Close(); err != nil {
			logger.Error("failed to close redis connection", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
