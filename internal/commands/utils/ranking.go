package utils

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/ParangStudios/ParangBotGo/pkg/discord"
	"github.com/ParangStudios/ParangBotGo/pkg/errors"
	"github.com/ParangStudios/ParangBotGo/pkg/store"
	"github.com/ParangStudios/ParangBotGo/pkg/voicetrack"
)

const rankingSize = 10

// createRankingCommand creates the /랭킹 command.
func createRankingCommand(st *store.Store) *discord.Command {
	return discord.NewCommand(
		"랭킹",
		"음성 채널 체류 시간 순위를 확인합니다",
		"utils",
		rankingHandler(st),
	)
}

// rankingHandler handles the /랭킹 command.
func rankingHandler(st *store.Store) discord.CommandRunFunc {
	return func(ctx *discord.CommandContext) error {
		go func() {
			defer errors.RecoverMiddleware()()

			totals := st.Guild(ctx.Interaction.GuildID).VoiceTimeTracking
			if len(totals) == 0 {
				ctx.Reply("아직 기록된 음성 채널 체류 시간이 없습니다.")
				return
			}

			type entry struct {
				userID  string
				seconds float64
			}
			ranking := make([]entry, 0, len(totals))
			for userID, seconds := range totals {
				ranking = append(ranking, entry{userID, seconds})
			}
			sort.Slice(ranking, func(i, j int) bool {
				return ranking[i].seconds > ranking[j].seconds
			})
			if len(ranking) > rankingSize {
				ranking = ranking[:rankingSize]
			}

			medals := []string{"🥇", "🥈", "🥉"}
			var b strings.Builder
			for i, e := range ranking {
				rank := fmt.Sprintf("%d.", i+1)
				if i < len(medals) {
					rank = medals[i]
				}
				fmt.Fprintf(&b, "%s <@%s> — %s\n", rank, e.userID, voicetrack.FormatDuration(e.seconds))
			}

			ctx.ReplyEmbed(&discordgo.MessageEmbed{
				Title:       "🏆 음성 채널 체류 시간 랭킹",
				Description: b.String(),
				Color:       0xF1C40F,
			})
		}()
		return nil
	}
}
