package moderation

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/ParangStudios/ParangBotGo/pkg/discord"
	"github.com/ParangStudios/ParangBotGo/pkg/errors"
	"github.com/ParangStudios/ParangBotGo/pkg/logger"
	"github.com/ParangStudios/ParangBotGo/pkg/store"
)

// createCensorRemoveCommand creates the /검열삭제 command.
func createCensorRemoveCommand(st *store.Store) *discord.Command {
	return discord.NewCommand(
		"검열삭제",
		"검열 키워드를 삭제합니다",
		"moderation",
		censorRemoveHandler(st),
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "키워드",
			Description: "삭제할 키워드",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionAdministrator)
}

// censorRemoveHandler handles the /검열삭제 command.
func censorRemoveHandler(st *store.Store) discord.CommandRunFunc {
	return func(ctx *discord.CommandContext) error {
		go func() {
			defer errors.RecoverMiddleware()()

			keyword := ctx.GetStringOption("키워드")

			removed, err := st.RemoveKeyword(ctx.Interaction.GuildID, keyword)
			if err != nil {
				logger.Error(fmt.Sprintf("키워드 삭제 실패: %v", err), "Moderation")
				ctx.ReplyEphemeral("❌ 키워드 삭제에 실패했습니다.")
				return
			}
			if !removed {
				ctx.ReplyEphemeral(fmt.Sprintf("⚠️ `%s`는 등록되지 않은 키워드입니다.", keyword))
				return
			}

			ctx.Reply(fmt.Sprintf("✅ 검열 키워드 `%s`를 삭제했습니다.", keyword))
		}()
		return nil
	}
}
