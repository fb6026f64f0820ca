package settings

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/ParangStudios/ParangBotGo/pkg/discord"
	"github.com/ParangStudios/ParangBotGo/pkg/errors"
	"github.com/ParangStudios/ParangBotGo/pkg/logger"
	"github.com/ParangStudios/ParangBotGo/pkg/store"
)

// createSetupCommand creates the /초기설정 command.
func createSetupCommand(st *store.Store) *discord.Command {
	return discord.NewCommand(
		"초기설정",
		"감시할 음성 채널과 로그 채널을 설정합니다",
		"settings",
		setupHandler(st),
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:         discordgo.ApplicationCommandOptionChannel,
			Name:         "음성채널",
			Description:  "입장/퇴장을 기록할 음성 채널",
			Required:     true,
			ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildVoice},
		},
		&discordgo.ApplicationCommandOption{
			Type:         discordgo.ApplicationCommandOptionChannel,
			Name:         "로그채널",
			Description:  "로그 메시지를 보낼 텍스트 채널",
			Required:     true,
			ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
		},
	).WithUserPermissions(discordgo.PermissionAdministrator)
}

// setupHandler handles the /초기설정 command.
func setupHandler(st *store.Store) discord.CommandRunFunc {
	return func(ctx *discord.CommandContext) error {
		go func() {
			defer errors.RecoverMiddleware()()

			voice := ctx.GetChannelOption("음성채널")
			text := ctx.GetChannelOption("로그채널")
			if voice == nil || text == nil {
				ctx.ReplyEphemeral("❌ 채널을 다시 선택해주세요.")
				return
			}

			guildID := ctx.Interaction.GuildID
			if err := st.SetVoiceChannel(guildID, voice.ID); err != nil {
				logger.Error(fmt.Sprintf("음성 채널 저장 실패: %v", err), "Settings")
				ctx.ReplyEphemeral("❌ 설정 저장에 실패했습니다.")
				return
			}
			if err := st.SetTextChannel(guildID, text.ID); err != nil {
				logger.Error(fmt.Sprintf("로그 채널 저장 실패: %v", err), "Settings")
				ctx.ReplyEphemeral("❌ 설정 저장에 실패했습니다.")
				return
			}

			ctx.ReplyEmbed(&discordgo.MessageEmbed{
				Title: "✅ 초기설정 완료",
				Description: fmt.Sprintf("**감시 음성 채널:** <#%s>\n**로그 채널:** <#%s>",
					voice.ID, text.ID),
				Color: 0x2ECC71,
			})
		}()
		return nil
	}
}
