package i18n

import (
	"golang.org/x/text/feature/plural"
)

var enUS = map[string]any{
	"time.unit.s": plural.Selectf(1, "%d", plural.One, "%d second", plural.Other, "%d seconds"),
	"time.unit.m": plural.Selectf(1, "%d", plural.One, "%d minute", plural.Other, "%d minutes"),
	"time.unit.h": plural.Selectf(1, "%d", plural.One, "%d hour", plural.Other, "%d hours"),
	"time.unit.d": plural.Selectf(1, "%d", plural.One, "%d day", plural.Other, "%d days"),
	"time.unit.w": plural.Selectf(1, "%d", plural.One, "%d week", plural.Other, "%d weeks"),
	"time.unit.M": plural.Selectf(1, "%d", plural.One, "%d month", plural.Other, "%d months"),
	"time.unit.y": plural.Selectf(1, "%d", plural.One, "%d year", plural.Other, "%d years"),

	"common.autocomplete_reset":        "0 (no duration)",
	"common.autocomplete_time_help":    "Type a number followed by a unit: %s",
	"common.autocomplete_invalid_time": "Invalid format, use <number><unit>, e.g. 10m",
	"common.last_24_hours":             "Last 24 hours",
	"common.last_7_days":               "Last 7 days",
	"common.total":                     "Total",
	"common.no_reason":                 "No reason was provided.",
	"common.previous":                  "Previous",
	"common.next":                      "Next",
	"common.page":                      "Page %d of %d",
	"common.proofs":                    "Proofs",
	"common.expires":                   "Expires",
	"common.never":                     "Never",
	"common.contest_footer":            "Think this punishment is unfair? Reach out to the server staff.",

	"errors.bot_missing_permissions": plural.Selectf(1, "%d",
		plural.One, "This command needs me to have the following permission: %[2]s.",
		plural.Other, "This command needs me to have the following permissions: %[2]s."),
	"errors.user_missing_permissions": plural.Selectf(1, "%d",
		plural.One, "You are missing the following permission: %[2]s.",
		plural.Other, "You are missing the following permissions: %[2]s."),
	"errors.bot_role_inferior":       "This user has a role higher than mine.",
	"errors.target_role_higher":      "This user has a role higher than yours.",
	"errors.self_punish":             "Hey... you can't punish yourself.",
	"errors.invalid_time_format":     "The time you sent (%s) is not valid. Use the `<time><unit>` format.",
	"errors.time_exceeds_max_length": "The time you sent (%d characters) exceeds the limit of %d.",
	"errors.mute_too_long":           "A mute can last at most %s.",
	"errors.not_in_guild":            "This command can only be used in servers.",
	"errors.not_trusted_url":         "One of the URLs you provided is not accepted: either its domain is not trusted or it does not end with a valid image/video extension.",
	"errors.target_not_member":       "This user is not a member of this server.",
	"errors.unknown":                 "An unknown error occurred, report it to the developer or try again later.",
	"errors.not_implemented":         "This command is not implemented yet.",
	"errors.prompt_timeout":          "Time is up, run the command again to start over.",

	"moderation.ban.success":            "User %s was banned from this server.",
	"moderation.ban.success_silent":     "User %s was banned from this server without being notified by DM.",
	"moderation.ban.success_dm_failed":  "User %s was banned from this server, but I could not DM them.",
	"moderation.kick.success":           "User %s was kicked.",
	"moderation.kick.success_silent":    "User %s was kicked without being notified by DM.",
	"moderation.kick.success_dm_failed": "User %s was kicked, but I could not DM them.",
	"moderation.warn.success":           "User %s was warned.",
	"moderation.warn.success_silent":    "User %s was warned without being notified by DM.",
	"moderation.warn.success_dm_failed": "User %s was warned, but I could not DM them.",
	"moderation.mute.success":           "User %s was muted until %s.",
	"moderation.mute.success_silent":    "User %s was muted until %s without being notified by DM.",
	"moderation.mute.success_dm_failed": "User %s was muted until %s, but I could not DM them.",
	"moderation.unban.success":          "User %s was unbanned.",
	"moderation.unban.not_banned":       "User %s is not banned.",
	"moderation.unmute.success":         "User %s is no longer muted.",
	"moderation.unmute.not_muted":       "User %s is not muted.",

	"moderation.ban.notification.title":        "🔨 You were banned from %s",
	"moderation.ban.notification.description":  "You were banned from %s by %s for: %s",
	"moderation.kick.notification.title":       "📰 You were kicked from %s",
	"moderation.kick.notification.description": "You were kicked from %s by %s for: %s",
	"moderation.warn.notification.title":       "📰 You were warned in %s",
	"moderation.warn.notification.description": "You were warned in %s by %s for: *%s*",
	"moderation.mute.notification.title":       "🔇 You were muted in %s",
	"moderation.mute.notification.description": "You were muted in %s by %s for: %s",

	"infractions.of":               "Infractions of %s",
	"infractions.none":             "This user has no infractions in this server.",
	"infractions.count":            "%d infractions.",
	"infractions.entry":            "`#%d` **%s** by %s %s\n%s",
	"infractions.type.BAN":         "Ban",
	"infractions.type.KICK":        "Kick",
	"infractions.type.WARN":        "Warn",
	"infractions.type.MUTE":        "Mute",
	"infractions.type.REVERT_BAN":  "Unban",
	"infractions.type.REVERT_MUTE": "Unmute",
	"infractions.reverted":         "(reverted)",
	"infractions.prompt_closed":    "Pagination closed.",

	"tickets.wizard.ask_context":     "Where should the questions be asked? Here in this channel or in your DMs?",
	"tickets.wizard.context_guild":   "Server",
	"tickets.wizard.context_dm":      "Private",
	"tickets.wizard.dm_intro":        "From now on the questions will be asked here, stay tuned and don't close your DMs.",
	"tickets.wizard.dm_closed_retry": "Your DMs are closed, I can't send you messages. Trying again %s.",
	"tickets.wizard.dm_still_closed": "You haven't opened your DMs yet, use the \"Server\" mode or open your DMs to continue.",
	"tickets.wizard.moved_to_dm":     "Check your DMs to continue the setup.",
	"tickets.wizard.ask_name":        "What is the name of this ticket category?",
	"tickets.wizard.ask_description": "Briefly describe what this ticket category is for.",
	"tickets.wizard.ask_glyph":       "Pick an emoji to identify this ticket category.",
	"tickets.wizard.add_more":        "Add more",
	"tickets.wizard.finish":          "Finish",
	"tickets.wizard.continue":        "Category %s %s added. Add another one?",
	"tickets.wizard.limit_reached":   "The maximum of %d categories was reached.",
	"tickets.wizard.invalid_name":    "The name can't be empty.",
	"tickets.wizard.invalid_glyph":   "That is not an emoji. Send a single emoji or a server emoji.",
	"tickets.wizard.panel_failed":    "I couldn't post the ticket panel in that channel. Check my permissions and run the command again.",
	"tickets.wizard.finished":        "Setup finished with %d ticket categories.",
	"tickets.wizard.timed_out":       "Time is up, the ticket setup was cancelled. Run the command again to start over.",
	"tickets.wizard.only_threads":    "Only thread tickets are supported for now.",
	"tickets.wizard.type_channel":    "Channel",
	"tickets.wizard.type_thread":     "Thread",
	"tickets.wizard.type_voice":      "Voice",
	"tickets.panel.placeholder":      "Select a ticket category",
	"tickets.panel.content":          "Open the menu to select a ticket category.",
	"tickets.panel.unknown":          "This ticket panel is no longer available.",
	"tickets.panel.unknown_category": "This ticket category no longer exists.",
	"tickets.panel.opened":           "Your ticket was opened: %s",
	"tickets.panel.thread_intro":     "%s opened a ticket in **%s**.\n%s",

	"showcase.button.content":     "Pick a color.",
	"showcase.button.red":         "Red",
	"showcase.button.green":       "Green",
	"showcase.button.blue":        "Blue",
	"showcase.button.answered":    "You picked %s.",
	"showcase.select.content":     "Pick a fruit.",
	"showcase.select.placeholder": "Fruits",
	"showcase.select.apple":       "Apple",
	"showcase.select.banana":      "Banana",
	"showcase.select.cherry":      "Cherry",
	"showcase.select.answered":    "You picked %s.",
	"showcase.messages.content":   "Send me %d messages.",
	"showcase.messages.answered":  "I received %d messages: %s",
	"showcase.messages.partial":   "Time is up, I only received %d messages.",

	"core.ping.pong":   "Pong! Gateway latency: %s",
	"core.help.title":  "%s commands",
	"core.help.footer": "Version %s",

	"slash.ban.name":                   "ban",
	"slash.ban.description":            "Bans a user from the server.",
	"slash.unban.name":                 "unban",
	"slash.unban.description":          "Lifts a user's ban.",
	"slash.kick.name":                  "kick",
	"slash.kick.description":           "Kicks a user from the server and records it as an infraction.",
	"slash.warn.name":                  "warn",
	"slash.warn.description":           "Warns a user and records it as an infraction.",
	"slash.mute.name":                  "mute",
	"slash.mute.description":           "Mutes a user for a while.",
	"slash.unmute.name":                "unmute",
	"slash.unmute.description":         "Unmutes a user.",
	"slash.infractions.name":           "infractions",
	"slash.infractions.description":    "Lists every infraction of a user.",
	"slash.tickets.name":               "tickets",
	"slash.tickets.description":        "Server ticket commands.",
	"slash.tickets.setup.name":         "setup",
	"slash.tickets.setup.description":  "Sets up a ticket system for this server.",
	"slash.option.user.name":           "user",
	"slash.option.user.description":    "The target user.",
	"slash.option.reason.name":         "reason",
	"slash.option.reason.description":  "Why this action is being taken.",
	"slash.option.proofs.name":         "proofs",
	"slash.option.proofs.description":  "Links to proofs, separated by commas.",
	"slash.option.silent.name":         "silent",
	"slash.option.silent.description":  "Do not notify the user by DM.",
	"slash.option.time.name":           "time",
	"slash.option.time.description":    "Duration, e.g. 10m, 2h, 7d.",
	"slash.option.channel.name":        "channel",
	"slash.option.channel.description": "Channel where the ticket panel is posted.",
	"slash.option.type.name":           "type",
	"slash.option.type.description":    "Kind of ticket to open.",

	"errors.group_disabled":   "The `%s` commands are disabled on this server.",
	"errors.target_not_found": "I could not find this user.",

	"core.help.description":       "Run a command with `/` to see its options.",
	"core.commands.enabled":       "The `%s` commands are enabled again.",
	"core.commands.disabled":      "The `%s` commands are now disabled.",
	"core.commands.unknown_group": "There is no command group named `%s`.",
	"core.commands.core_locked":   "The `%s` commands can't be disabled.",
	"core.commands.history_title": "Latest commands",
	"core.commands.history_empty": "No command was used on this server yet.",
	"core.commands.history_entry": "<t:%d:R> **%s** `/%s` %s",
	"core.commands.disabled_list": "Disabled groups: %s",

	"slash.ping.name":                    "ping",
	"slash.ping.description":             "Shows the bot latency.",
	"slash.help.name":                    "help",
	"slash.help.description":             "Lists the available commands.",
	"slash.commands.name":                "commands",
	"slash.commands.description":         "Manages the bot commands on this server.",
	"slash.commands.toggle.name":         "toggle",
	"slash.commands.toggle.description":  "Enables or disables a command group.",
	"slash.commands.history.name":        "history",
	"slash.commands.history.description": "Shows the latest commands used on this server.",
	"slash.ask_button.name":              "ask-button",
	"slash.ask_button.description":       "Asks a question answered with buttons.",
	"slash.ask_select_menu.name":         "ask-select-menu",
	"slash.ask_select_menu.description":  "Asks a question answered with a select menu.",
	"slash.ask_messages.name":            "ask-messages",
	"slash.ask_messages.description":     "Collects a few of your messages.",
	"slash.option.group.name":            "group",
	"slash.option.group.description":     "Command group.",
	"slash.option.enabled.name":          "enabled",
	"slash.option.enabled.description":   "Whether the group is enabled.",
	"slash.option.dm.name":               "dm",
	"slash.option.dm.description":        "Ask in your DMs.",
}
