package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-walker/api"
	api_i "github.com/beka-birhanu/vinom-walker/api/i"
	mazeapi "github.com/beka-birhanu/vinom-walker/api/maze"
	"github.com/beka-birhanu/vinom-walker/config"
	"github.com/beka-birhanu/vinom-walker/encoder/pb"
	logger "github.com/beka-birhanu/vinom-walker/infrastruture/log"
	"github.com/beka-birhanu/vinom-walker/infrastruture/repo"
	"github.com/beka-birhanu/vinom-walker/maze"
	"github.com/beka-birhanu/vinom-walker/scene"
	"github.com/beka-birhanu/vinom-walker/service"
	"github.com/beka-birhanu/vinom-walker/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient    *mongo.Client
	redisClient    *redis.Client
	mazeRepo       i.MazeRepo
	mazeService    i.MazeService
	mazeController api_i.Controller
	router         *api.Router
	appLogger      i.Logger
)

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
		DB:       config.Envs.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initMazeRepo(ctx context.Context) {
	switch config.Envs.MazeStore {
	case "memory":
		mazeRepo = repo.NewMemoryMazeRepo()
	case "redis":
		initRedis(ctx)
		var err error
		mazeRepo, err = repo.NewRedisMazeRepo(redisClient, &pb.Protobuf{}, config.Envs.MazeTTLSeconds)
		if err != nil {
			appLogger.Error(fmt.Sprintf("Creating redis maze repository: %v", err))
			os.Exit(1)
		}
	case "mongo":
		initMongo(ctx)
		mazeRepo = repo.NewMongoMazeRepo(mongoClient, &pb.Protobuf{}, config.Envs.DBName, "mazes")
	default:
		appLogger.Error(fmt.Sprintf("Unknown maze store %q", config.Envs.MazeStore))
		os.Exit(1)
	}
	appLogger.Info(fmt.Sprintf("Maze repository initialized (%s)", config.Envs.MazeStore))
}

func initMazeService() {
	mazeLogger, err := logger.New("MAZE", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze service logger: %v", err))
		os.Exit(1)
	}

	mazeService, err = service.New(&service.Config{
		Repo:             mazeRepo,
		Logger:           mazeLogger,
		Scene:            scene.ConfigFor(config.Envs.CellSize, config.Envs.WallThickness),
		DefaultAlgorithm: maze.Algorithm(config.Envs.DefaultAlgorithm),
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze service initialized")
}

func initMazeController() {
	var err error
	mazeController, err = mazeapi.NewMazeController(mazeService, config.Envs.MinimapSize)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze controller initialized")
}

func initRouter() {
	httpLogger, err := logger.New("HTTP", config.ColorPurple, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating http logger: %v", err))
		os.Exit(1)
	}

	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:        fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:     "/api",
		Controllers: []api_i.Controller{mazeController},
		Middlewares: []gin.HandlerFunc{api.RequestLogger(httpLogger)},
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel() // Ensure the context is always canceled

	// Initialize dependencies
	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)

	initMazeRepo(ctx)
	defer func() {
		if mongoClient != nil {
			_ = mongoClient.Disconnect(context.Background())
		}
		if redisClient != nil {
			_ = redisClient.Close()
		}
	}()

	initMazeService()
	initMazeController()
	initRouter()

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
