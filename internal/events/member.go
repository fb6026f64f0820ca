package events

import (
	"github.com/bwmarrin/discordgo"

	"github.com/ParangStudios/ParangBotGo/pkg/discord"
	"github.com/ParangStudios/ParangBotGo/pkg/errors"
	"github.com/ParangStudios/ParangBotGo/pkg/welcome"
)

// RegisterMemberEvents registers member join handlers.
func RegisterMemberEvents(client *discord.ExtendedClient, h *Handlers) {
	client.Session.AddHandler(func(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
		defer errors.RecoverMiddleware()()

		if m.User == nil || m.User.Bot {
			return
		}

		guildName := m.GuildID
		guildIcon := ""
		memberCount := 0
		if guild, err := s.State.Guild(m.GuildID); err == nil {
			guildName = guild.Name
			guildIcon = guild.IconURL("")
			memberCount = guild.MemberCount
		}

		h.Welcome.HandleJoin(welcome.Member{
			GuildID:      m.GuildID,
			GuildName:    guildName,
			GuildIconURL: guildIcon,
			UserID:       m.User.ID,
			UserName:     m.User.Username,
			AvatarURL:    m.User.AvatarURL(""),
			MemberCount:  memberCount,
		})
	})
}
