// Package discord provides the command handler for loading and registering
// commands.
package discord

import (
	"github.com/ParangStudios/ParangBotGo/pkg/config"
	"github.com/ParangStudios/ParangBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// CommandHandler manages command loading and registration.
type CommandHandler struct {
	client           *ExtendedClient
	slashCommands    []*discordgo.ApplicationCommand
	slashCommandsDev []*discordgo.ApplicationCommand
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(client *ExtendedClient) *CommandHandler {
	return &CommandHandler{
		client:           client,
		slashCommands:    make([]*discordgo.ApplicationCommand, 0),
		slashCommandsDev: make([]*discordgo.ApplicationCommand, 0),
	}
}

// RegisterCommand adds a command to the handler.
func (ch *CommandHandler) RegisterCommand(cmd *Command) {
	ch.client.Commands.Set(cmd.Name, cmd)

	appCmd := cmd.ToApplicationCommand()

	if cmd.IsDev {
		ch.slashCommandsDev = append(ch.slashCommandsDev, appCmd)
	} else {
		ch.slashCommands = append(ch.slashCommands, appCmd)
	}

	logger.Debug("명령어 등록 준비: "+cmd.Name, "CommandHandler")
}

// RegisterCommands registers all slash commands with Discord.
func (ch *CommandHandler) RegisterCommands() {
	cfg := config.Get()

	logger.Info("🔄 전역 명령어를 등록합니다...", "CommandHandler")

	for _, cmd := range ch.slashCommands {
		_, err := ch.client.Session.ApplicationCommandCreate(
			ch.client.Session.State.User.ID,
			"",
			cmd,
		)
		if err != nil {
			logger.Error("명령어 등록 실패 "+cmd.Name+": "+err.Error(), "CommandHandler")
		}
	}

	logger.Success("✅ 전역 명령어 등록 완료.", "CommandHandler")

	if cfg.DevGuildID != "" && len(ch.slashCommandsDev) > 0 {
		logger.Info("🔄 개발 서버("+cfg.DevGuildID+")에 개발 명령어를 등록합니다...", "CommandHandler")

		for _, cmd := range ch.slashCommandsDev {
			_, err := ch.client.Session.ApplicationCommandCreate(
				ch.client.Session.State.User.ID,
				cfg.DevGuildID,
				cmd,
			)
			if err != nil {
				logger.Error("개발 명령어 등록 실패 "+cmd.Name+": "+err.Error(), "CommandHandler")
			}
		}

		logger.Success("✅ 개발 명령어 등록 완료.", "CommandHandler")
	}
}

// UnregisterCommands removes all registered commands from Discord.
func (ch *CommandHandler) UnregisterCommands() error {
	commands, err := ch.client.Session.ApplicationCommands(ch.client.Session.State.User.ID, "")
	if err != nil {
		return err
	}

	for _, cmd := range commands {
		err := ch.client.Session.ApplicationCommandDelete(ch.client.Session.State.User.ID, "", cmd.ID)
		if err != nil {
			logger.Error("명령어 삭제 실패 "+cmd.Name+": "+err.Error(), "CommandHandler")
		}
	}

	logger.Success("전역 명령어를 모두 삭제했습니다.", "CommandHandler")
	return nil
}

// AddGlobalCommand adds a raw application command to the global command list.
func (ch *CommandHandler) AddGlobalCommand(cmd *discordgo.ApplicationCommand) {
	ch.slashCommands = append(ch.slashCommands, cmd)
}

// ListGlobalCommands returns the commands currently registered with Discord.
func (ch *CommandHandler) ListGlobalCommands() ([]*discordgo.ApplicationCommand, error) {
	return ch.client.Session.ApplicationCommands(ch.client.Session.State.User.ID, "")
}

// ListGuildCommands returns the commands registered for a specific guild.
func (ch *CommandHandler) ListGuildCommands(guildID string) ([]*discordgo.ApplicationCommand, error) {
	return ch.client.Session.ApplicationCommands(ch.client.Session.State.User.ID, guildID)
}

// UnregisterGuildCommands removes all commands registered for a guild.
func (ch *CommandHandler) UnregisterGuildCommands(guildID string) error {
	commands, err := ch.ListGuildCommands(guildID)
	if err != nil {
		return err
	}

	for _, cmd := range commands {
		err := ch.client.Session.ApplicationCommandDelete(ch.client.Session.State.User.ID, guildID, cmd.ID)
		if err != nil {
			logger.Error("명령어 삭제 실패 "+cmd.Name+": "+err.Error(), "CommandHandler")
		}
	}

	logger.Success("서버("+guildID+")의 명령어를 모두 삭제했습니다.", "CommandHandler")
	return nil
}

// SyncCommands removes global commands no longer defined locally, then
// registers the current set.
func (ch *CommandHandler) SyncCommands() error {
	registered, err := ch.ListGlobalCommands()
	if err != nil {
		return err
	}

	current := make(map[string]bool, len(ch.slashCommands))
	for _, cmd := range ch.slashCommands {
		current[cmd.Name] = true
	}

	for _, cmd := range registered {
		if current[cmd.Name] {
			continue
		}
		logger.Info("오래된 명령어를 삭제합니다: "+cmd.Name, "CommandHandler")
		err := ch.client.Session.ApplicationCommandDelete(ch.client.Session.State.User.ID, "", cmd.ID)
		if err != nil {
			logger.Error("명령어 삭제 실패 "+cmd.Name+": "+err.Error(), "CommandHandler")
		}
	}

	ch.RegisterCommands()
	return nil
}
