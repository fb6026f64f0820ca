// Package utils provides the general-purpose commands: voice-time ranking,
// help, and latency check.
package utils

import (
	"github.com/ParangStudios/ParangBotGo/pkg/discord"
	"github.com/ParangStudios/ParangBotGo/pkg/store"
)

// RegisterUtilsCommands registers the utility commands.
func RegisterUtilsCommands(client *discord.ExtendedClient, st *store.Store) {
	client.CommandHandler.RegisterCommand(createRankingCommand(st))
	client.CommandHandler.RegisterCommand(createHelpCommand())
	client.CommandHandler.RegisterCommand(createPingCommand())
}
