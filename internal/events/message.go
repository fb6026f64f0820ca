package events

import (
	"github.com/bwmarrin/discordgo"

	"github.com/ParangStudios/ParangBotGo/pkg/censor"
	"github.com/ParangStudios/ParangBotGo/pkg/discord"
	"github.com/ParangStudios/ParangBotGo/pkg/errors"
)

// RegisterMessageEvents registers message-related event handlers.
func RegisterMessageEvents(client *discord.ExtendedClient, h *Handlers) {
	client.Session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		defer errors.RecoverMiddleware()()

		if m.Author == nil {
			return
		}

		guildName := m.GuildID
		if guild, err := s.State.Guild(m.GuildID); err == nil {
			guildName = guild.Name
		}

		h.Censor.HandleMessage(censor.Message{
			GuildID:   m.GuildID,
			GuildName: guildName,
			ChannelID: m.ChannelID,
			MessageID: m.ID,
			AuthorID:  m.Author.ID,
			AuthorBot: m.Author.Bot,
			Content:   m.Content,
		})
	})
}
