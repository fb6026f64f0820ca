package utils

import (
	"github.com/bwmarrin/discordgo"

	"github.com/ParangStudios/ParangBotGo/pkg/discord"
	"github.com/ParangStudios/ParangBotGo/pkg/errors"
)

// createHelpCommand creates the /명령어 command.
func createHelpCommand() *discord.Command {
	return discord.NewCommand(
		"명령어",
		"사용 가능한 명령어를 확인합니다",
		"utils",
		helpHandler,
	)
}

// helpHandler handles the /명령어 command.
func helpHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		ctx.ReplyEphemeralEmbed(&discordgo.MessageEmbed{
			Title: "📖 ParangBot 명령어",
			Color: 0x3498DB,
			Fields: []*discordgo.MessageEmbedField{
				{
					Name: "⚙️ 설정 (관리자)",
					Value: "`/초기설정` - 감시 음성 채널과 로그 채널 설정\n" +
						"`/설정` - 현재 설정 확인\n" +
						"`/입장` - 환영 메시지 설정",
				},
				{
					Name: "🔇 검열 (관리자)",
					Value: "`/검열추가 <키워드>` - 검열 키워드 추가\n" +
						"`/검열삭제 <키워드>` - 검열 키워드 삭제\n" +
						"`/검열목록` - 검열 키워드 확인\n" +
						"`/처벌설정 <종류> <횟수> [시간]` - 자동 처벌 설정\n" +
						"`/경고초기화 <유저>` - 경고 초기화",
				},
				{
					Name: "🎙️ 일반",
					Value: "`/랭킹` - 음성 채널 체류 시간 순위\n" +
						"`/핑` - 봇 응답 속도 확인",
				},
			},
		})
	}()
	return nil
}
