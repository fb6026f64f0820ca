// Package main provides a utility to sync Discord slash commands.
// This removes stale commands from Discord and ensures only currently-defined
// commands are registered.
//
// Usage:
//
//	go run cmd/sync-commands/main.go [options]
//
// Options:
//
//	-list           List all registered commands (global and guild)
//	-clean          Remove all commands without registering new ones
//	-guild <id>     Target a specific guild instead of global commands
//	-sync           Sync commands (remove stale, register current) - default behavior
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/bwmarrin/discordgo"

	"github.com/ParangStudios/ParangBotGo/internal/commands"
	"github.com/ParangStudios/ParangBotGo/pkg/config"
	"github.com/ParangStudios/ParangBotGo/pkg/discord"
	"github.com/ParangStudios/ParangBotGo/pkg/logger"
	"github.com/ParangStudios/ParangBotGo/pkg/store"
	"github.com/ParangStudios/ParangBotGo/pkg/telemetry"
)

func main() {
	listCmd := flag.Bool("list", false, "List all registered commands")
	cleanCmd := flag.Bool("clean", false, "Remove all commands without registering new ones")
	guildID := flag.String("guild", "", "Target a specific guild (leave empty for global)")
	syncCmd := flag.Bool("sync", false, "Sync commands (remove stale, register current)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(cfg.ErrorWebhook, cfg.LogsWebhook)
	defer log.Close()

	logger.System("명령어 동기화 유틸리티를 시작합니다...", "SyncCommands")

	client, err := discord.NewClient(cfg.BotToken)
	if err != nil {
		logger.Critical(fmt.Sprintf("Discord 클라이언트 생성 실패: %v", err), "SyncCommands")
		os.Exit(1)
	}

	if err := client.Session.Open(); err != nil {
		logger.Critical(fmt.Sprintf("Discord 연결 실패: %v", err), "SyncCommands")
		os.Exit(1)
	}
	defer client.Session.Close()

	logger.Success("Discord에 연결되었습니다", "SyncCommands")

	// Build the local command set so the sync knows what should exist. The
	// handlers never run here; the store and sink are placeholders.
	commands.RegisterAll(client, store.New(cfg.ConfigFile), telemetry.Nop{})

	switch {
	case *listCmd:
		listCommands(client, *guildID)
	case *cleanCmd:
		cleanCommands(client, *guildID)
	case *syncCmd:
		syncCommands(client, *guildID)
	default:
		syncCommands(client, *guildID)
	}

	logger.Success("작업이 완료되었습니다", "SyncCommands")
}

// listCommands lists all commands registered with Discord.
func listCommands(client *discord.ExtendedClient, guildID string) {
	logger.Info("📋 등록된 명령어를 조회합니다...", "SyncCommands")

	var cmds []*discordgo.ApplicationCommand
	var err error

	if guildID != "" {
		logger.Info(fmt.Sprintf("서버 명령어 조회: %s", guildID), "SyncCommands")
		cmds, err = client.CommandHandler.ListGuildCommands(guildID)
	} else {
		logger.Info("전역 명령어 조회", "SyncCommands")
		cmds, err = client.CommandHandler.ListGlobalCommands()
	}

	if err != nil {
		logger.Error(fmt.Sprintf("명령어 조회 실패: %v", err), "SyncCommands")
		return
	}

	if len(cmds) == 0 {
		logger.Info("등록된 명령어가 없습니다", "SyncCommands")
		return
	}

	logger.Info(fmt.Sprintf("명령어 %d개 발견", len(cmds)), "SyncCommands")
	for i, cmd := range cmds {
		logger.Info(fmt.Sprintf("  %d. /%s - %s (ID: %s)", i+1, cmd.Name, cmd.Description, cmd.ID), "SyncCommands")
	}
}

// cleanCommands removes all commands from Discord.
func cleanCommands(client *discord.ExtendedClient, guildID string) {
	logger.Info("🧹 모든 명령어를 삭제합니다...", "SyncCommands")

	var err error
	if guildID != "" {
		err = client.CommandHandler.UnregisterGuildCommands(guildID)
	} else {
		err = client.CommandHandler.UnregisterCommands()
	}

	if err != nil {
		logger.Error(fmt.Sprintf("명령어 삭제 실패: %v", err), "SyncCommands")
		return
	}

	logger.Success("✅ 모든 명령어가 삭제되었습니다", "SyncCommands")
}

// syncCommands removes stale commands and registers current ones.
func syncCommands(client *discord.ExtendedClient, guildID string) {
	logger.Info("🔄 명령어를 동기화합니다...", "SyncCommands")

	if guildID != "" {
		// Guild sync only removes; dev commands are registered by the bot.
		if err := client.CommandHandler.UnregisterGuildCommands(guildID); err != nil {
			logger.Error(fmt.Sprintf("서버 명령어 삭제 실패: %v", err), "SyncCommands")
			return
		}
		logger.Success("✅ 서버 명령어가 삭제되었습니다. 개발 명령어는 봇 본체가 등록합니다.", "SyncCommands")
		return
	}

	if err := client.CommandHandler.SyncCommands(); err != nil {
		logger.Error(fmt.Sprintf("명령어 동기화 실패: %v", err), "SyncCommands")
		return
	}
	logger.Success("✅ 명령어 동기화 완료", "SyncCommands")
}
