package render

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.BrazilianPortuguese

	message.SetString(lang, "reach.mode.green", "Disponível")
	message.SetString(lang, "reach.mode.blue", "Abertura")
	message.SetString(lang, "reach.mode.yellow", "Depois")
	message.SetString(lang, "reach.mode.orange", "Limite de contatos")
	message.SetString(lang, "reach.mode.red", "Bloqueado")
	message.SetString(lang, "reach.mode.gray", "Pausado")
	message.SetString(lang, "reach.mode.brown", "Horário")
	message.SetString(lang, "reach.mode.invisible", "Invisível")

	message.SetString(lang, "reach.status.available", "Disponível")
	message.Set(lang, "reach.status.slots_left", plural.Selectf(1, "%d",
		"=1", "1 vaga restante",
		"other", "%d vagas restantes",
	))
	message.SetString(lang, "reach.status.minutes_left", "Disponível por mais %d min")
	message.SetString(lang, "reach.status.invisible", "Invisível")
	message.SetString(lang, "reach.status.locked", "Bloqueado")
	message.SetString(lang, "reach.status.paused", "Pausado")
	message.SetString(lang, "reach.status.expired", "Expirado")
	message.SetString(lang, "reach.status.max_contacts", "Limite de contatos atingido")
	message.SetString(lang, "reach.status.opens", "Abre em %s")
	message.SetString(lang, "reach.status.available_at", "Disponível às %s")

	message.SetString(lang, "reach.restriction.locked", "Usuário bloqueou mensagens")
	message.SetString(lang, "reach.restriction.paused", "Usuário pausou mensagens")
	message.SetString(lang, "reach.restriction.max_contacts", "Limite de contatos atingido")
	message.SetString(lang, "reach.restriction.opens", "Disponível: %s")
	message.SetString(lang, "reach.restriction.available_at", "Disponível às: %s")

	message.SetString(lang, "reach.chat.expired", "Expirado • Avaliação pendente")
	message.SetString(lang, "reach.chat.rated", "✓ Avaliado")
	message.SetString(lang, "reach.chat.waiting", "Aguardando início")
	message.SetString(lang, "reach.chat.remaining", "%s restantes")

	message.SetString(lang, "reach.layout.date", "02/01/2006")
	message.SetString(lang, "reach.layout.clock", "15:04")

	message.SetString(lang, "reach.notice.mode_active", "✅ %s agora está ATIVO!")
	message.SetString(lang, "reach.notice.mode_active_green", "✅ %s agora está ATIVO! Visível para todos")
	message.SetString(lang, "reach.notice.mode_inactive", "%s agora está INATIVO! Você está Invisível")
	message.SetString(lang, "reach.notice.rated_good", "Avaliação positiva! %+d%% de aprovação")
	message.SetString(lang, "reach.notice.rated_bad", "Avaliação negativa: %d%% de aprovação")
	message.SetString(lang, "reach.notice.review_submitted", "Você deu %[2]d estrelas para %[1]s")
	message.SetString(lang, "reach.notice.selections_updated", "Interesses do perfil atualizados")
	message.SetString(lang, "reach.notice.chats_deleted", "Todas as conversas foram apagadas")
	message.SetString(lang, "reach.notice.logged_in", "Bem-vindo(a), %s")
	message.SetString(lang, "reach.notice.logged_out", "Sessão encerrada")
	message.SetString(lang, "reach.notice.storage_degraded", "Não foi possível salvar; as alterações valem só nesta sessão")
}
