package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/korjavin/flightroster/pkg/config"
	"github.com/korjavin/flightroster/pkg/logger"
	"github.com/korjavin/flightroster/pkg/messages"
	"github.com/korjavin/flightroster/pkg/openai"
	"github.com/korjavin/flightroster/pkg/schedule"
	"github.com/korjavin/flightroster/pkg/scheduler"
	"github.com/korjavin/flightroster/pkg/storage"
	"github.com/korjavin/flightroster/pkg/teardown"
	"github.com/korjavin/flightroster/pkg/telegram"
	"github.com/korjavin/flightroster/pkg/wizard"
)

func main() {
	log := logger.Global
	log.Info("Starting flight roster bot...")

	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	// Initialize storage
	store, err := storage.New(cfg.DataDir)
	if err != nil {
		log.Error("Failed to initialize storage: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	// Start BadgerDB garbage collection
	store.StartGCRoutine(10 * time.Minute)

	// OpenAI-backed flavor text is optional; static fallbacks cover the rest
	var openaiClient *openai.Client
	if cfg.OpenAIAPIKey != "" {
		openaiClient = openai.New(cfg.OpenAIAPIKey, cfg.OpenAIAPIBase, cfg.OpenAIModel)
	}
	messageService := messages.New(openaiClient)

	// Initialize Telegram bot
	bot, err := telegram.New(cfg.BotToken)
	if err != nil {
		log.Error("Failed to initialize Telegram bot: %v", err)
		os.Exit(1)
	}

	// Initialize services
	presenter := telegram.NewPresenter(bot, store)
	scheduleService := schedule.New(store, presenter)
	teardownOrchestrator := teardown.New(scheduleService)
	router := wizard.New(scheduleService, presenter, messageService, teardownOrchestrator)

	// Periodically re-render the active-schedule summary
	refresher := scheduler.New(scheduleService, time.Duration(cfg.SummaryRefreshMinutes)*time.Minute)
	refresher.Start()

	// Setup command handlers
	commandHandlers := map[string]telegram.CommandHandler{
		"start": func(message *tgbotapi.Message) {
			active, err := scheduleService.ActiveSchedules()
			if err != nil {
				log.Error("Failed to load active schedules: %v", err)
				return
			}
			if err := presenter.EnsureSummary(message.Chat.ID, active); err != nil {
				log.Error("Failed to set up summary in chat %d: %v", message.Chat.ID, err)
			}
		},
		"schedules": func(message *tgbotapi.Message) {
			active, err := scheduleService.ActiveSchedules()
			if err != nil {
				log.Error("Failed to load active schedules: %v", err)
				return
			}
			if err := presenter.EnsureSummary(message.Chat.ID, active); err != nil {
				log.Error("Failed to refresh summary in chat %d: %v", message.Chat.ID, err)
			}
		},
	}

	// Every callback query is one self-contained wizard event
	callbackHandler := func(callback *tgbotapi.CallbackQuery) {
		ev := telegram.EventFromCallback(callback)
		if err := router.HandleEvent(ev); err != nil {
			log.Error("Event from %s rejected: %v", ev.ActorID, err)
		}
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("Shutting down...")
		refresher.Stop()
		store.Close()
		os.Exit(0)
	}()

	// Start the bot
	log.Info("Bot is now running. Press CTRL-C to exit.")
	if err := bot.Start(commandHandlers, callbackHandler); err != nil {
		log.Error("Error running bot: %v", err)
		os.Exit(1)
	}
}
