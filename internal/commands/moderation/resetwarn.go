package moderation

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/ParangStudios/ParangBotGo/pkg/discord"
	"github.com/ParangStudios/ParangBotGo/pkg/errors"
	"github.com/ParangStudios/ParangBotGo/pkg/logger"
	"github.com/ParangStudios/ParangBotGo/pkg/store"
	"github.com/ParangStudios/ParangBotGo/pkg/telemetry"
)

// createResetWarningsCommand creates the /경고초기화 command.
func createResetWarningsCommand(st *store.Store, sink telemetry.Sink) *discord.Command {
	return discord.NewCommand(
		"경고초기화",
		"특정 유저의 경고를 초기화합니다",
		"moderation",
		resetWarningsHandler(st, sink),
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "유저",
			Description: "경고를 초기화할 유저",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionAdministrator)
}

// resetWarningsHandler handles the /경고초기화 command. A reset deletes the
// user's warning entry entirely.
func resetWarningsHandler(st *store.Store, sink telemetry.Sink) discord.CommandRunFunc {
	return func(ctx *discord.CommandContext) error {
		go func() {
			defer errors.RecoverMiddleware()()

			user := ctx.GetUserOption("유저")
			if user == nil {
				ctx.ReplyEphemeral("❌ 유저를 다시 선택해주세요.")
				return
			}

			guildID := ctx.Interaction.GuildID
			existed, err := st.ResetWarnings(guildID, user.ID)
			if err != nil {
				logger.Error(fmt.Sprintf("경고 초기화 실패: %v", err), "Moderation")
				ctx.ReplyEphemeral("❌ 경고 초기화에 실패했습니다.")
				return
			}
			if !existed {
				ctx.ReplyEphemeral(fmt.Sprintf("<@%s>님은 경고 기록이 없습니다.", user.ID))
				return
			}

			ctx.ReplyEmbed(&discordgo.MessageEmbed{
				Title:       "🧹 경고 초기화",
				Description: fmt.Sprintf("<@%s>님의 경고를 초기화했습니다.", user.ID),
				Color:       0x979C9F,
			})

			moderator := ""
			if u := ctx.User(); u != nil {
				moderator = u.ID
			}
			sink.Publish(telemetry.NewEvent(telemetry.KindWarningReset, guildID, user.ID, map[string]any{
				"moderator_id": moderator,
			}))
		}()
		return nil
	}
}
