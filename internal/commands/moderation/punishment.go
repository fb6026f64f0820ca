package moderation

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/ParangStudios/ParangBotGo/pkg/discord"
	"github.com/ParangStudios/ParangBotGo/pkg/errors"
	"github.com/ParangStudios/ParangBotGo/pkg/logger"
	"github.com/ParangStudios/ParangBotGo/pkg/models"
	"github.com/ParangStudios/ParangBotGo/pkg/store"
)

// createPunishmentCommand creates the /처벌설정 command.
func createPunishmentCommand(st *store.Store) *discord.Command {
	return discord.NewCommand(
		"처벌설정",
		"경고 누적 시 자동 처벌을 설정합니다",
		"moderation",
		punishmentHandler(st),
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "종류",
			Description: "처벌 종류",
			Required:    true,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "없음", Value: models.PunishmentNone},
				{Name: "타임아웃", Value: models.PunishmentTimeout},
				{Name: "추방", Value: models.PunishmentKick},
				{Name: "차단", Value: models.PunishmentBan},
			},
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "횟수",
			Description: "처벌이 실행되는 경고 횟수 (1 이상)",
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "시간",
			Description: "타임아웃 시간(분), 타임아웃 선택 시에만 사용",
		},
	).WithUserPermissions(discordgo.PermissionAdministrator)
}

// punishmentHandler handles the /처벌설정 command.
func punishmentHandler(st *store.Store) discord.CommandRunFunc {
	return func(ctx *discord.CommandContext) error {
		go func() {
			defer errors.RecoverMiddleware()()

			ptype := ctx.GetStringOption("종류")
			threshold := int(ctx.GetIntOption("횟수"))
			minutes := int(ctx.GetIntOption("시간"))

			guildID := ctx.Interaction.GuildID

			if ptype == models.PunishmentNone {
				if err := st.DisablePunishment(guildID); err != nil {
					logger.Error(fmt.Sprintf("처벌 설정 저장 실패: %v", err), "Moderation")
					ctx.ReplyEphemeral("❌ 설정 저장에 실패했습니다.")
					return
				}
				ctx.Reply("✅ 자동 처벌을 비활성화했습니다.")
				return
			}

			rule := models.Punishment{
				Type:                   ptype,
				Threshold:              threshold,
				TimeoutDurationMinutes: minutes,
			}
			switch err := st.SetPunishment(guildID, rule); err {
			case nil:
			case store.ErrInvalidThreshold:
				ctx.ReplyEphemeral("❌ 경고 횟수는 1 이상의 정수여야 합니다.")
				return
			case store.ErrInvalidDuration:
				ctx.ReplyEphemeral("❌ 타임아웃 시간은 1분 이상이어야 합니다.")
				return
			case store.ErrUnknownType:
				ctx.ReplyEphemeral("❌ 알 수 없는 처벌 종류입니다.")
				return
			default:
				logger.Error(fmt.Sprintf("처벌 설정 저장 실패: %v", err), "Moderation")
				ctx.ReplyEphemeral("❌ 설정 저장에 실패했습니다.")
				return
			}

			label := ""
			switch ptype {
			case models.PunishmentTimeout:
				label = fmt.Sprintf("경고 %d회 누적 시 %d분 타임아웃", threshold, minutes)
			case models.PunishmentKick:
				label = fmt.Sprintf("경고 %d회 누적 시 추방", threshold)
			case models.PunishmentBan:
				label = fmt.Sprintf("경고 %d회 누적 시 차단", threshold)
			}
			ctx.ReplyEmbed(&discordgo.MessageEmbed{
				Title:       "⚔️ 자동 처벌 설정 완료",
				Description: label,
				Color:       0x992D22,
			})
		}()
		return nil
	}
}
