package settings

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/ParangStudios/ParangBotGo/pkg/discord"
	"github.com/ParangStudios/ParangBotGo/pkg/errors"
	"github.com/ParangStudios/ParangBotGo/pkg/models"
	"github.com/ParangStudios/ParangBotGo/pkg/store"
)

// createViewCommand creates the /설정 command.
func createViewCommand(st *store.Store) *discord.Command {
	return discord.NewCommand(
		"설정",
		"현재 서버의 설정을 확인합니다",
		"settings",
		viewHandler(st),
	).WithUserPermissions(discordgo.PermissionAdministrator)
}

func channelOrUnset(id string) string {
	if id == "" {
		return "미설정"
	}
	return fmt.Sprintf("<#%s>", id)
}

func punishmentLabel(p models.Punishment) string {
	switch p.Type {
	case models.PunishmentTimeout:
		return fmt.Sprintf("타임아웃 %d분 (경고 %d회)", p.TimeoutDurationMinutes, p.Threshold)
	case models.PunishmentKick:
		return fmt.Sprintf("추방 (경고 %d회)", p.Threshold)
	case models.PunishmentBan:
		return fmt.Sprintf("차단 (경고 %d회)", p.Threshold)
	default:
		return "없음"
	}
}

// viewHandler handles the /설정 command.
func viewHandler(st *store.Store) discord.CommandRunFunc {
	return func(ctx *discord.CommandContext) error {
		go func() {
			defer errors.RecoverMiddleware()()

			cfg := st.Guild(ctx.Interaction.GuildID)
			welcome := cfg.WelcomeOrDefault()

			welcomeLabel := "비활성화"
			if welcome.Enabled {
				welcomeLabel = fmt.Sprintf("활성화 (%s)", channelOrUnset(welcome.ChannelID))
			}

			ctx.ReplyEphemeralEmbed(&discordgo.MessageEmbed{
				Title: "⚙️ 서버 설정",
				Color: 0x3498DB,
				Fields: []*discordgo.MessageEmbedField{
					{Name: "감시 음성 채널", Value: channelOrUnset(cfg.VoiceChannelID), Inline: true},
					{Name: "로그 채널", Value: channelOrUnset(cfg.TextChannelID), Inline: true},
					{Name: "검열 키워드", Value: fmt.Sprintf("%d개", len(cfg.CensoredKeywords)), Inline: true},
					{Name: "자동 처벌", Value: punishmentLabel(cfg.PunishmentOrDefault()), Inline: true},
					{Name: "환영 메시지", Value: welcomeLabel, Inline: true},
				},
			})
		}()
		return nil
	}
}
