// Package main is the entry point for the ParangBot Go application.
// It initializes all systems and starts the Discord bot.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ParangStudios/ParangBotGo/internal/commands"
	"github.com/ParangStudios/ParangBotGo/internal/events"
	"github.com/ParangStudios/ParangBotGo/pkg/censor"
	"github.com/ParangStudios/ParangBotGo/pkg/config"
	"github.com/ParangStudios/ParangBotGo/pkg/database"
	"github.com/ParangStudios/ParangBotGo/pkg/discord"
	"github.com/ParangStudios/ParangBotGo/pkg/errors"
	"github.com/ParangStudios/ParangBotGo/pkg/logger"
	"github.com/ParangStudios/ParangBotGo/pkg/mqtt"
	"github.com/ParangStudios/ParangBotGo/pkg/store"
	"github.com/ParangStudios/ParangBotGo/pkg/telemetry"
	"github.com/ParangStudios/ParangBotGo/pkg/voicetrack"
	"github.com/ParangStudios/ParangBotGo/pkg/web"
	"github.com/ParangStudios/ParangBotGo/pkg/welcome"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.Init(cfg.ErrorWebhook, cfg.LogsWebhook)
	defer log.Close()

	logger.System("ParangBot Go를 시작합니다...", "Main")
	logger.Info(fmt.Sprintf("작업 디렉토리: %s", getCurrentDir()), "Main")

	// Initialize error handler
	var discordClient *discord.ExtendedClient
	errors.Init(cfg.ErrorWebhook, func() {
		if discordClient != nil {
			_ = discordClient.Stop()
		}
	})

	// Guild configuration document
	st := store.New(cfg.ConfigFile)
	logger.Info(fmt.Sprintf("설정 파일: %s", st.Path()), "Main")

	// Telemetry sinks: MQTT stream, websocket feed, MongoDB archive
	var sinks telemetry.MultiSink

	if cfg.ArchiveEnabled() {
		db, err := database.Init(cfg.MongoDBURL, cfg.DBName)
		if err != nil {
			logger.Error(fmt.Sprintf("데이터베이스 연결 실패: %v", err), "Main")
			// Keep going, reconnection runs in the background.
		}
		defer func() {
			if db != nil {
				_ = db.Disconnect()
			}
		}()
		if db != nil {
			sinks = append(sinks, database.NewArchive(db))
		}
	}

	if cfg.MQTTEnabled() {
		mqttClientID := "parangbot"
		if !cfg.IsProd() {
			mqttClientID = "parangbot_canary"
		}
		mqttClient := mqtt.Init(
			cfg.MQTTHost,
			cfg.MQTTPort,
			cfg.MQTTUser,
			cfg.MQTTPassword,
			mqttClientID,
		)
		defer mqttClient.Destroy()
		sinks = append(sinks, mqtt.NewEventPublisher(mqttClient))
	}

	feed := web.NewFeed()
	sinks = append(sinks, feed)

	// Web server
	webServer := web.Init()
	web.SetupAPIRoutes(webServer, st)
	web.SetupFeedRoute(webServer, feed)
	webServer.StartAsync(cfg.Port)

	// Discord client
	discordClient, err = discord.Init(cfg.BotToken)
	if err != nil {
		logger.Critical(fmt.Sprintf("Discord 클라이언트 생성 실패: %v", err), "Main")
		os.Exit(1)
	}

	actions := discord.NewSessionActions(discordClient.Session)
	handlers := &events.Handlers{
		Censor:  censor.New(st, actions, sinks),
		Voice:   voicetrack.New(st, actions, sinks),
		Welcome: welcome.New(st, actions, sinks),
	}

	commands.RegisterAll(discordClient, st, sinks)
	events.RegisterAll(discordClient, handlers)

	// Start the bot
	if err := discordClient.Start(); err != nil {
		logger.Critical(fmt.Sprintf("Discord 연결 실패: %v", err), "Main")
		os.Exit(1)
	}
	defer func() {
		_ = discordClient.Stop()
	}()

	logger.Success("ParangBot Go가 정상적으로 시작되었습니다!", "Main")

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	logger.System("ParangBot Go를 종료합니다...", "Main")
}

// getCurrentDir returns the current working directory.
func getCurrentDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "unknown"
	}
	return dir
}
