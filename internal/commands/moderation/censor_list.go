package moderation

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/ParangStudios/ParangBotGo/pkg/discord"
	"github.com/ParangStudios/ParangBotGo/pkg/errors"
	"github.com/ParangStudios/ParangBotGo/pkg/store"
)

// createCensorListCommand creates the /검열목록 command.
func createCensorListCommand(st *store.Store) *discord.Command {
	return discord.NewCommand(
		"검열목록",
		"등록된 검열 키워드를 확인합니다",
		"moderation",
		censorListHandler(st),
	).WithUserPermissions(discordgo.PermissionAdministrator)
}

// censorListHandler handles the /검열목록 command. The list is shown only to
// the caller; keywords stay out of the public channel.
func censorListHandler(st *store.Store) discord.CommandRunFunc {
	return func(ctx *discord.CommandContext) error {
		go func() {
			defer errors.RecoverMiddleware()()

			keywords := st.Keywords(ctx.Interaction.GuildID)
			if len(keywords) == 0 {
				ctx.ReplyEphemeral("등록된 검열 키워드가 없습니다.")
				return
			}

			var b strings.Builder
			for i, keyword := range keywords {
				fmt.Fprintf(&b, "%d. `%s`\n", i+1, keyword)
			}

			ctx.ReplyEphemeralEmbed(&discordgo.MessageEmbed{
				Title:       fmt.Sprintf("🔇 검열 키워드 (%d개)", len(keywords)),
				Description: b.String(),
				Color:       0xF1C40F,
			})
		}()
		return nil
	}
}
