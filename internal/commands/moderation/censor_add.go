package moderation

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/ParangStudios/ParangBotGo/pkg/discord"
	"github.com/ParangStudios/ParangBotGo/pkg/errors"
	"github.com/ParangStudios/ParangBotGo/pkg/logger"
	"github.com/ParangStudios/ParangBotGo/pkg/store"
)

// createCensorAddCommand creates the /검열추가 command.
func createCensorAddCommand(st *store.Store) *discord.Command {
	return discord.NewCommand(
		"검열추가",
		"검열할 키워드를 추가합니다",
		"moderation",
		censorAddHandler(st),
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "키워드",
			Description: "메시지에 포함되면 삭제할 키워드 (대소문자 구분)",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionAdministrator)
}

// censorAddHandler handles the /검열추가 command.
func censorAddHandler(st *store.Store) discord.CommandRunFunc {
	return func(ctx *discord.CommandContext) error {
		go func() {
			defer errors.RecoverMiddleware()()

			keyword := strings.TrimSpace(ctx.GetStringOption("키워드"))
			if keyword == "" {
				ctx.ReplyEphemeral("❌ 키워드를 입력해주세요.")
				return
			}

			added, err := st.AddKeyword(ctx.Interaction.GuildID, keyword)
			if err != nil {
				logger.Error(fmt.Sprintf("키워드 저장 실패: %v", err), "Moderation")
				ctx.ReplyEphemeral("❌ 키워드 저장에 실패했습니다.")
				return
			}
			if !added {
				ctx.ReplyEphemeral(fmt.Sprintf("⚠️ `%s`는 이미 등록된 키워드입니다.", keyword))
				return
			}

			ctx.Reply(fmt.Sprintf("✅ 검열 키워드 `%s`를 추가했습니다.", keyword))
		}()
		return nil
	}
}
