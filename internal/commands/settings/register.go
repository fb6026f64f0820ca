// Package settings provides the commands that write per-guild configuration:
// watched channels and the welcome message.
package settings

import (
	"github.com/ParangStudios/ParangBotGo/pkg/discord"
	"github.com/ParangStudios/ParangBotGo/pkg/store"
)

// RegisterSettingsCommands registers the settings commands.
func RegisterSettingsCommands(client *discord.ExtendedClient, st *store.Store) {
	client.CommandHandler.RegisterCommand(createSetupCommand(st))
	client.CommandHandler.RegisterCommand(createViewCommand(st))
	client.CommandHandler.RegisterCommand(createWelcomeCommand(st))
}
