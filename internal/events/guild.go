package events

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/ParangStudios/ParangBotGo/pkg/discord"
	"github.com/ParangStudios/ParangBotGo/pkg/logger"
)

// RegisterGuildEvents registers server join/leave handlers.
func RegisterGuildEvents(client *discord.ExtendedClient) {
	client.Session.AddHandler(onGuildCreate)
	client.Session.AddHandler(onGuildDelete)
}

// onGuildCreate is called when the bot joins a guild or one becomes available.
func onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	if g.Unavailable {
		return
	}
	logger.Info(fmt.Sprintf("🏠 서버 참여: %s (%s, 멤버 %d명)", g.Name, g.ID, g.MemberCount), "Guild")
}

// onGuildDelete is called when the bot leaves a guild. The guild's settings
// stay in the document in case the bot is re-invited.
func onGuildDelete(s *discordgo.Session, g *discordgo.GuildDelete) {
	if g.Unavailable {
		return
	}
	logger.Info(fmt.Sprintf("👋 서버 퇴장: %s", g.ID), "Guild")
}
