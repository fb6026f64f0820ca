package events

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/ParangStudios/ParangBotGo/pkg/discord"
	"github.com/ParangStudios/ParangBotGo/pkg/logger"
)

// RegisterReadyEvent registers the ready event handler.
func RegisterReadyEvent(client *discord.ExtendedClient) {
	client.Session.AddHandler(onReady)
}

// onReady is called when the bot successfully connects to Discord.
func onReady(s *discordgo.Session, r *discordgo.Ready) {
	logger.Success(fmt.Sprintf("✅ 봇 연결 완료: %s#%s", r.User.Username, r.User.Discriminator), "Ready")
	logger.Info(fmt.Sprintf("📊 %d개 서버에 연결되었습니다", len(r.Guilds)), "Ready")

	if err := s.UpdateGameStatus(0, "🛡️ 서버 관리 중 | /명령어"); err != nil {
		logger.Error(fmt.Sprintf("상태 설정 실패: %v", err), "Ready")
	}
}
