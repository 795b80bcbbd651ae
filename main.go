package main

import (
	"ChatPulse/bot"
	"ChatPulse/impl/core"
	"ChatPulse/internal/config"
	repository "ChatPulse/internal/database"
	"ChatPulse/internal/http-server/api"
	"ChatPulse/internal/lib/logger"
	"ChatPulse/internal/lib/sl"
	"ChatPulse/internal/service/digest"
	"ChatPulse/internal/service/insight"
	"ChatPulse/internal/service/whapi"
	"flag"
	"log/slog"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	// Initialize Telegram bot if enabled
	var tgBot *bot.TgBot
	if conf.Telegram.Enabled {
		var err error
		tgBot, err = bot.NewTgBot(conf.Telegram.BotName, conf.Telegram.ApiKey, conf.Telegram.AdminId, lg)
		if err != nil {
			lg.Error("failed to initialize telegram bot", slog.String("error", err.Error()))
		} else {
			// Set up Telegram handler for the logger
			lg = logger.SetupTelegramHandler(lg, tgBot, slog.LevelError)
			lg.With(
				slog.String("bot_name", conf.Telegram.BotName),
			).Info("telegram bot initialized")

			// Start the bot in a goroutine
			go func() {
				if err := tgBot.Start(); err != nil {
					lg.Error("telegram bot error", slog.String("error", err.Error()))
				}
			}()
		}
	}

	lg.Info("starting chatpulse", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	policy := insight.PolicyFromConfig(conf)
	handler := core.New(lg, policy)
	handler.SetAuthKey(conf.Listen.ApiKey)
	handler.SetOrgPhone(conf.Whapi.Phone)

	db, err := repository.NewMongoClient(conf, lg)
	if err != nil {
		lg.With(
			sl.Err(err),
		).Error("mongo client")
	}
	if db != nil {
		handler.SetRepository(db)
		lg.With(
			slog.String("host", conf.Mongo.Host),
			slog.String("port", conf.Mongo.Port),
			slog.String("user", conf.Mongo.User),
			slog.String("database", conf.Mongo.Database),
		).Info("mongo client initialized")
	}

	source := whapi.NewService(conf, lg)
	handler.SetChatSource(source)
	lg.With(
		slog.String("url", conf.Whapi.BaseUrl),
		sl.Secret("token", conf.Whapi.Token),
	).Info("whapi source initialized")

	digestService := digest.NewDigestService(conf, lg)
	if digestService != nil {
		handler.SetDigestService(digestService)
		lg.With(
			slog.String("model", conf.OpenAI.Model),
			sl.Secret("openai_key", conf.OpenAI.ApiKey),
		).Info("digest service initialized")
	}

	if tgBot != nil {
		tgBot.SetStatsProvider(handler)
		handler.SetNotifier(tgBot)
	}

	handler.Init()

	// *** blocking start with http server ***
	err = api.New(conf, lg, handler)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Error("service stopped")
}
