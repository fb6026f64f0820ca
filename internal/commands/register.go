// Package commands provides a registry for organizing bot commands.
// Commands are organized in subdirectories by category (settings, moderation,
// utils).
package commands

import (
	"github.com/ParangStudios/ParangBotGo/internal/commands/moderation"
	"github.com/ParangStudios/ParangBotGo/internal/commands/settings"
	"github.com/ParangStudios/ParangBotGo/internal/commands/utils"
	"github.com/ParangStudios/ParangBotGo/pkg/discord"
	"github.com/ParangStudios/ParangBotGo/pkg/store"
	"github.com/ParangStudios/ParangBotGo/pkg/telemetry"
)

// RegisterAll registers all commands with the Discord client.
func RegisterAll(client *discord.ExtendedClient, st *store.Store, sink telemetry.Sink) {
	if sink == nil {
		sink = telemetry.Nop{}
	}

	// Channel, welcome and settings-view commands
	settings.RegisterSettingsCommands(client, st)

	// Censorship keyword, punishment and warning commands
	moderation.RegisterModerationCommands(client, st, sink)

	// Ranking and help commands
	utils.RegisterUtilsCommands(client, st)
}
