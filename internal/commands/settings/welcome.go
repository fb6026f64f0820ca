package settings

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/ParangStudios/ParangBotGo/pkg/discord"
	"github.com/ParangStudios/ParangBotGo/pkg/errors"
	"github.com/ParangStudios/ParangBotGo/pkg/logger"
	"github.com/ParangStudios/ParangBotGo/pkg/models"
	"github.com/ParangStudios/ParangBotGo/pkg/store"
)

// createWelcomeCommand creates the /입장 command.
func createWelcomeCommand(st *store.Store) *discord.Command {
	return discord.NewCommand(
		"입장",
		"새 멤버 환영 메시지를 설정합니다",
		"settings",
		welcomeHandler(st),
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionBoolean,
			Name:        "활성화",
			Description: "환영 메시지 사용 여부",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:         discordgo.ApplicationCommandOptionChannel,
			Name:         "채널",
			Description:  "환영 메시지를 보낼 채널",
			ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "메시지",
			Description: "$user_mention, $server_name, $member_count 등을 사용할 수 있습니다",
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionBoolean,
			Name:        "임베드",
			Description: "임베드 형식으로 보낼지 여부",
		},
	).WithUserPermissions(discordgo.PermissionAdministrator)
}

// welcomeHandler handles the /입장 command.
func welcomeHandler(st *store.Store) discord.CommandRunFunc {
	return func(ctx *discord.CommandContext) error {
		go func() {
			defer errors.RecoverMiddleware()()

			enabled := ctx.GetBoolOption("활성화")
			channel := ctx.GetChannelOption("채널")
			message := ctx.GetStringOption("메시지")
			useEmbed := ctx.GetBoolOption("임베드")

			guildID := ctx.Interaction.GuildID
			err := st.UpdateWelcome(guildID, func(wm *models.WelcomeMessage) {
				wm.Enabled = enabled
				if channel != nil {
					wm.ChannelID = channel.ID
				}
				if message != "" {
					wm.Message = message
				}
				if ctx.GetOption("임베드") != nil {
					wm.UseEmbed = useEmbed
				}
			})
			if err != nil {
				logger.Error(fmt.Sprintf("환영 메시지 설정 저장 실패: %v", err), "Settings")
				ctx.ReplyEphemeral("❌ 설정 저장에 실패했습니다.")
				return
			}

			if !enabled {
				ctx.Reply("✅ 환영 메시지를 비활성화했습니다.")
				return
			}

			saved := st.Guild(guildID).WelcomeOrDefault()
			if saved.ChannelID == "" {
				ctx.ReplyEphemeral("⚠️ 환영 메시지가 활성화되었지만 채널이 설정되지 않았습니다. `/입장`에서 채널을 지정해주세요.")
				return
			}
			if saved.Message == "" {
				ctx.ReplyEphemeral("⚠️ 환영 메시지가 활성화되었지만 메시지가 설정되지 않았습니다. 메시지를 지정하기 전까지는 전송되지 않습니다.")
				return
			}
			ctx.ReplyEmbed(&discordgo.MessageEmbed{
				Title:       "✅ 환영 메시지 설정 완료",
				Description: fmt.Sprintf("**채널:** <#%s>\n**임베드:** %v", saved.ChannelID, saved.UseEmbed),
				Color:       0x2ECC71,
			})
		}()
		return nil
	}
}
