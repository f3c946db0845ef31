package bootstrap

import (
	"log"
	"time"

	"ai-chatapp-be/internal/cache"
	"ai-chatapp-be/internal/config"
	"ai-chatapp-be/internal/constant"
	"ai-chatapp-be/internal/controller"
	"ai-chatapp-be/internal/pkg/logger"
	"ai-chatapp-be/internal/pkg/serverutils"
	"ai-chatapp-be/internal/repository/memory"
	"ai-chatapp-be/internal/repository/unitofwork"
	"ai-chatapp-be/internal/service"
	"ai-chatapp-be/pkg/dataset"
	"ai-chatapp-be/pkg/llm/ollama"
	"ai-chatapp-be/pkg/prompt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	AuthController   controller.IAuthController
	ChatController   controller.IChatController
	AgentController  controller.IAgentController
	OllamaController controller.IOllamaController

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Redis message cache. A bad URL or unreachable server degrades the
	// cache, never the app.
	var rdb *redis.Client
	if opts, err := redis.ParseURL(cfg.App.RedisURL); err != nil {
		log.Printf("[WARN] Invalid REDIS_URL, message cache disabled: %v", err)
	} else {
		rdb = redis.NewClient(opts)
	}
	msgCache := cache.NewMessageCache(rdb, sysLogger, time.Duration(cfg.Cache.TTLSeconds)*time.Second)

	// 3. Dataset index, loaded eagerly so the first chat turn pays nothing.
	// An empty path keeps the index permanently unavailable.
	csvPath := cfg.Dataset.CSVPath
	if !cfg.Dataset.Enabled {
		csvPath = ""
	}
	index := dataset.NewIndex(csvPath)
	if cfg.Dataset.Enabled {
		if index.Available() {
			log.Printf("[INFO] Dataset index loaded: %d rows", index.RowCount())
		} else {
			log.Printf("[WARN] Dataset unavailable, chat will run without dataset context")
		}
	}

	composer := prompt.NewComposer(cfg.Dataset.ContextCharLim, constant.OllamaDefaultSystemPrompt)

	// 4. LLM provider
	llmProvider := ollama.NewOllamaProvider(ollama.Config{
		BaseURL:       cfg.Ollama.BaseURL,
		DefaultModel:  cfg.Ollama.DefaultModel,
		Temperature:   cfg.Ollama.Temperature,
		TopP:          cfg.Ollama.TopP,
		TopK:          cfg.Ollama.TopK,
		RepeatPenalty: cfg.Ollama.RepeatPenalty,
		MaxTokens:     cfg.Ollama.MaxTokens,
		Timeout:       time.Duration(cfg.Ollama.TimeoutSeconds) * time.Second,
	})

	// 5. Auth infrastructure
	blacklist := memory.NewTokenBlacklist()
	jwtMiddleware := serverutils.NewJwtMiddleware(cfg.Auth.JWTSecret, blacklist)

	// 6. Services
	authService := service.NewAuthService(uowFactory, msgCache, blacklist, sysLogger, cfg.Auth, cfg.Cache.RecentLimit)
	agentService := service.NewAgentService(uowFactory)
	ollamaService := service.NewOllamaService(llmProvider, cfg.Ollama.DefaultModel)
	chatService := service.NewChatService(uowFactory, llmProvider, index, composer, msgCache, sysLogger, cfg.Dataset.MaxResults)

	// 7. Controllers
	return &Container{
		AuthController:   controller.NewAuthController(authService, jwtMiddleware),
		ChatController:   controller.NewChatController(chatService, jwtMiddleware),
		AgentController:  controller.NewAgentController(agentService, jwtMiddleware),
		OllamaController: controller.NewOllamaController(ollamaService, jwtMiddleware),
		Logger:           sysLogger,
	}
}
