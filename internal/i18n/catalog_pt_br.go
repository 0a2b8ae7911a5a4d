package i18n

import (
	"golang.org/x/text/feature/plural"
)

var ptBR = map[string]any{
	"time.unit.s": plural.Selectf(1, "%d", plural.One, "%d segundo", plural.Other, "%d segundos"),
	"time.unit.m": plural.Selectf(1, "%d", plural.One, "%d minuto", plural.Other, "%d minutos"),
	"time.unit.h": plural.Selectf(1, "%d", plural.One, "%d hora", plural.Other, "%d horas"),
	"time.unit.d": plural.Selectf(1, "%d", plural.One, "%d dia", plural.Other, "%d dias"),
	"time.unit.w": plural.Selectf(1, "%d", plural.One, "%d semana", plural.Other, "%d semanas"),
	"time.unit.M": plural.Selectf(1, "%d", plural.One, "%d mês", plural.Other, "%d meses"),
	"time.unit.y": plural.Selectf(1, "%d", plural.One, "%d ano", plural.Other, "%d anos"),

	"common.autocomplete_reset":        "0 (sem duração)",
	"common.autocomplete_time_help":    "Digite um número seguido de uma unidade: %s",
	"common.autocomplete_invalid_time": "Formato inválido, use <número><unidade>, ex.: 10m",
	"common.last_24_hours":             "Últimas 24 horas",
	"common.last_7_days":               "Últimos 7 dias",
	"common.total":                     "Total",
	"common.no_reason":                 "Nenhum motivo foi fornecido.",
	"common.previous":                  "Anterior",
	"common.next":                      "Próxima",
	"common.page":                      "Página %d de %d",
	"common.proofs":                    "Provas",
	"common.expires":                   "Expira",
	"common.never":                     "Nunca",
	"common.contest_footer":            "Acha que esta punição é injusta? Fale com a equipe do servidor.",

	"errors.bot_missing_permissions": plural.Selectf(1, "%d",
		plural.One, "Este comando precisa que eu tenha a seguinte permissão: %[2]s.",
		plural.Other, "Este comando precisa que eu tenha as seguintes permissões: %[2]s."),
	"errors.user_missing_permissions": plural.Selectf(1, "%d",
		plural.One, "Você não possui a seguinte permissão: %[2]s.",
		plural.Other, "Você não possui as seguintes permissões: %[2]s."),
	"errors.bot_role_inferior":       "Este usuário possui um cargo com hierarquia superior a minha.",
	"errors.target_role_higher":      "Este usuário possui um cargo superior ao seu.",
	"errors.self_punish":             "Ei... você não pode punir você mesmo.",
	"errors.invalid_time_format":     "O tempo que você mandou (%s) não é um formato válido. Use o formato `<tempo><unidade>`.",
	"errors.time_exceeds_max_length": "O tempo que você mandou (%d caracteres) excede o limite de %d.",
	"errors.mute_too_long":           "Um silenciamento pode durar no máximo %s.",
	"errors.not_in_guild":            "Este comando só pode ser usado em servidores.",
	"errors.not_trusted_url":         "Uma das URLs que você forneceu não é aceita: o domínio não é confiável ou ela não termina com uma extensão de imagem/vídeo válida.",
	"errors.target_not_member":       "Este usuário não é membro deste servidor.",
	"errors.unknown":                 "Ocorreu um erro desconhecido, reporte isso ao desenvolvedor ou tente novamente mais tarde.",
	"errors.not_implemented":         "Este comando ainda não foi implementado.",
	"errors.prompt_timeout":          "O tempo acabou, use o comando novamente para recomeçar.",

	"moderation.ban.success":            "O usuário %s foi banido com sucesso deste servidor.",
	"moderation.ban.success_silent":     "O usuário %s foi banido com sucesso deste servidor sem ser notificado via MD.",
	"moderation.ban.success_dm_failed":  "O usuário %s foi banido com sucesso deste servidor, mas eu não consegui enviar uma MD ao usuário.",
	"moderation.kick.success":           "O usuário %s foi expulso com sucesso.",
	"moderation.kick.success_silent":    "O usuário %s foi expulso com sucesso sem ser notificado via MD.",
	"moderation.kick.success_dm_failed": "O usuário %s foi expulso com sucesso, mas não foi possível enviar a MD do usuário.",
	"moderation.warn.success":           "O usuário %s foi avisado.",
	"moderation.warn.success_silent":    "O usuário %s foi avisado e não foi notificado via MD.",
	"moderation.warn.success_dm_failed": "O usuário %s foi avisado, mas não foi possível enviar a MD do usuário.",
	"moderation.mute.success":           "O usuário %s foi silenciado até %s.",
	"moderation.mute.success_silent":    "O usuário %s foi silenciado até %s sem ser notificado via MD.",
	"moderation.mute.success_dm_failed": "O usuário %s foi silenciado até %s, mas não foi possível enviar a MD do usuário.",
	"moderation.unban.success":          "O usuário %s foi desbanido.",
	"moderation.unban.not_banned":       "O usuário %s não está banido.",
	"moderation.unmute.success":         "O usuário %s não está mais silenciado.",
	"moderation.unmute.not_muted":       "O usuário %s não está silenciado.",

	"moderation.ban.notification.title":        "🔨 Você foi banido do servidor %s",
	"moderation.ban.notification.description":  "Você foi banido do servidor %s por %s com o motivo: %s",
	"moderation.kick.notification.title":       "📰 Você foi expulso do servidor %s",
	"moderation.kick.notification.description": "Você foi expulso do servidor %s por %s pelo motivo: %s",
	"moderation.warn.notification.title":       "📰 Você foi advertido no servidor %s",
	"moderation.warn.notification.description": "Você foi advertido no servidor %s por %s pelo motivo *%s*",
	"moderation.mute.notification.title":       "🔇 Você foi silenciado no servidor %s",
	"moderation.mute.notification.description": "Você foi silenciado no servidor %s por %s pelo motivo: %s",

	"infractions.of":               "Infrações de %s",
	"infractions.none":             "Este usuário não possui infrações neste servidor.",
	"infractions.count":            "%d infrações.",
	"infractions.entry":            "`#%d` **%s** por %s %s\n%s",
	"infractions.type.BAN":         "Banimento",
	"infractions.type.KICK":        "Expulsão",
	"infractions.type.WARN":        "Aviso",
	"infractions.type.MUTE":        "Silenciamento",
	"infractions.type.REVERT_BAN":  "Desbanimento",
	"infractions.type.REVERT_MUTE": "Dessilenciamento",
	"infractions.reverted":         "(revertida)",
	"infractions.prompt_closed":    "Paginação encerrada.",

	"tickets.wizard.ask_context":     "Aonde você quer que as perguntas sejam feitas? Aqui neste canal ou no seu privado?",
	"tickets.wizard.context_guild":   "Servidor",
	"tickets.wizard.context_dm":      "Privado",
	"tickets.wizard.dm_intro":        "As perguntas a partir de agora serão feitas aqui, fique atento e não feche a MD.",
	"tickets.wizard.dm_closed_retry": "Seu privado está fechado, não consigo enviar mensagens. Tentando novamente %s.",
	"tickets.wizard.dm_still_closed": "Você não abriu o privado ainda, use o modo \"Servidor\" para prosseguir ou abra o privado para continuar.",
	"tickets.wizard.moved_to_dm":     "Confira seu privado para continuar a configuração.",
	"tickets.wizard.ask_name":        "Qual é o nome desta seção de ticket?",
	"tickets.wizard.ask_description": "Descreva brevemente para que serve esta seção de ticket.",
	"tickets.wizard.ask_glyph":       "Escolha um emoji para identificar esta seção de ticket.",
	"tickets.wizard.add_more":        "Adicionar mais",
	"tickets.wizard.finish":          "Finalizar",
	"tickets.wizard.continue":        "Seção %s %s adicionada. Adicionar outra?",
	"tickets.wizard.limit_reached":   "O limite de %d seções foi atingido.",
	"tickets.wizard.invalid_name":    "O nome não pode ficar vazio.",
	"tickets.wizard.invalid_glyph":   "Isso não é um emoji. Envie um único emoji ou um emoji do servidor.",
	"tickets.wizard.panel_failed":    "Não consegui publicar o painel de tickets nesse canal. Verifique minhas permissões e execute o comando novamente.",
	"tickets.wizard.finished":        "Configuração finalizada com %d seções de ticket.",
	"tickets.wizard.timed_out":       "O tempo acabou e a configuração de tickets foi cancelada. Use o comando novamente para recomeçar.",
	"tickets.wizard.only_threads":    "Por enquanto apenas tickets em tópicos são suportados.",
	"tickets.wizard.type_channel":    "Canal",
	"tickets.wizard.type_thread":     "Tópico",
	"tickets.wizard.type_voice":      "Voz",
	"tickets.panel.placeholder":      "Selecione uma seção de ticket",
	"tickets.panel.content":          "Abra o menu para selecionar uma seção de ticket.",
	"tickets.panel.unknown":          "Este painel de tickets não está mais disponível.",
	"tickets.panel.unknown_category": "Esta seção de ticket não existe mais.",
	"tickets.panel.opened":           "Seu ticket foi aberto: %s",
	"tickets.panel.thread_intro":     "%s abriu um ticket em **%s**.\n%s",

	"showcase.button.content":     "Escolha uma cor.",
	"showcase.button.red":         "Vermelho",
	"showcase.button.green":       "Verde",
	"showcase.button.blue":        "Azul",
	"showcase.button.answered":    "Você escolheu %s.",
	"showcase.select.content":     "Escolha uma fruta.",
	"showcase.select.placeholder": "Frutas",
	"showcase.select.apple":       "Maçã",
	"showcase.select.banana":      "Banana",
	"showcase.select.cherry":      "Cereja",
	"showcase.select.answered":    "Você escolheu %s.",
	"showcase.messages.content":   "Me envie %d mensagens.",
	"showcase.messages.answered":  "Recebi %d mensagens: %s",
	"showcase.messages.partial":   "O tempo acabou, recebi apenas %d mensagens.",

	"core.ping.pong":   "Pong! Latência do gateway: %s",
	"core.help.title":  "Comandos do %s",
	"core.help.footer": "Versão %s",

	"slash.ban.name":                   "banir",
	"slash.ban.description":            "Bane um usuário do servidor.",
	"slash.unban.name":                 "desbanir",
	"slash.unban.description":          "Remove o banimento de um usuário.",
	"slash.kick.name":                  "expulsar",
	"slash.kick.description":           "Expulsa um usuário deste servidor e salva como infração.",
	"slash.warn.name":                  "avisar",
	"slash.warn.description":           "Avisa um usuário deste servidor e salva como infração.",
	"slash.mute.name":                  "silenciar",
	"slash.mute.description":           "Silencia um usuário deste servidor por um tempo específico.",
	"slash.unmute.name":                "dessilenciar",
	"slash.unmute.description":         "Dessilencia um usuário deste servidor.",
	"slash.infractions.name":           "infrações",
	"slash.infractions.description":    "Lista todas as infrações de um usuário em específico.",
	"slash.tickets.name":               "tickets",
	"slash.tickets.description":        "Comandos relacionados a tickets do servidor.",
	"slash.tickets.setup.name":         "configurar",
	"slash.tickets.setup.description":  "Configura um sistema de tickets para este servidor.",
	"slash.option.user.name":           "usuário",
	"slash.option.user.description":    "O usuário alvo.",
	"slash.option.reason.name":         "motivo",
	"slash.option.reason.description":  "Motivo desta ação.",
	"slash.option.proofs.name":         "provas",
	"slash.option.proofs.description":  "Links para provas, separados por vírgula.",
	"slash.option.silent.name":         "silencioso",
	"slash.option.silent.description":  "Não avisa o usuário via MD.",
	"slash.option.time.name":           "tempo",
	"slash.option.time.description":    "Duração, ex.: 10m, 2h, 7d.",
	"slash.option.channel.name":        "canal",
	"slash.option.channel.description": "Canal que será utilizado para iniciar um ticket.",
	"slash.option.type.name":           "tipo",
	"slash.option.type.description":    "Tipo de ticket que será utilizado.",

	"errors.group_disabled":   "Os comandos `%s` estão desativados neste servidor.",
	"errors.target_not_found": "Não consegui encontrar este usuário.",

	"core.help.description":       "Use um comando com `/` para ver suas opções.",
	"core.commands.enabled":       "Os comandos `%s` foram reativados.",
	"core.commands.disabled":      "Os comandos `%s` agora estão desativados.",
	"core.commands.unknown_group": "Não existe um grupo de comandos chamado `%s`.",
	"core.commands.core_locked":   "Os comandos `%s` não podem ser desativados.",
	"core.commands.history_title": "Últimos comandos",
	"core.commands.history_empty": "Nenhum comando foi usado neste servidor ainda.",
	"core.commands.history_entry": "<t:%d:R> **%s** `/%s` %s",
	"core.commands.disabled_list": "Grupos desativados: %s",

	"slash.ping.name":                    "ping",
	"slash.ping.description":             "Mostra a latência do bot.",
	"slash.help.name":                    "ajuda",
	"slash.help.description":             "Lista os comandos disponíveis.",
	"slash.commands.name":                "comandos",
	"slash.commands.description":         "Gerencia os comandos do bot neste servidor.",
	"slash.commands.toggle.name":         "alternar",
	"slash.commands.toggle.description":  "Ativa ou desativa um grupo de comandos.",
	"slash.commands.history.name":        "historico",
	"slash.commands.history.description": "Mostra os últimos comandos usados neste servidor.",
	"slash.ask_button.name":              "perguntar-botao",
	"slash.ask_button.description":       "Faz uma pergunta respondida com botões.",
	"slash.ask_select_menu.name":         "perguntar-menu",
	"slash.ask_select_menu.description":  "Faz uma pergunta respondida com um menu de seleção.",
	"slash.ask_messages.name":            "perguntar-mensagens",
	"slash.ask_messages.description":     "Coleta algumas das suas mensagens.",
	"slash.option.group.name":            "grupo",
	"slash.option.group.description":     "Grupo de comandos.",
	"slash.option.enabled.name":          "ativado",
	"slash.option.enabled.description":   "Se o grupo está ativado.",
	"slash.option.dm.name":               "md",
	"slash.option.dm.description":        "Perguntar na sua MD.",
}
