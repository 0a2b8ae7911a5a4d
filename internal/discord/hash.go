package discord

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// hashCommand is a deterministic SHA-1 over the fields Discord stores for a
// command, localizations included, so a catalog change re-registers it.
func hashCommand(cmd *discordgo.ApplicationCommand) string {
	stable := map[string]any{
		"name":        cmd.Name,
		"description": cmd.Description,
		"type":        cmd.Type,
	}
	if cmd.NameLocalizations != nil {
		stable["name_localizations"] = *cmd.NameLocalizations
	}
	if cmd.DescriptionLocalizations != nil {
		stable["description_localizations"] = *cmd.DescriptionLocalizations
	}
	if cmd.DefaultMemberPermissions != nil {
		stable["default_member_permissions"] = *cmd.DefaultMemberPermissions
	}
	if cmd.DMPermission != nil {
		stable["dm_permission"] = *cmd.DMPermission
	}
	if len(cmd.Options) > 0 {
		stable["options"] = normalizeOptions(cmd.Options)
	}
	// json sorts map keys, localizations included
	data, _ := json.Marshal(stable)
	return fmt.Sprintf("%x", sha1.Sum(data))
}

// normalizeOptions keeps the declared order, Discord shows options in it.
func normalizeOptions(opts []*discordgo.ApplicationCommandOption) []map[string]any {
	out := make([]map[string]any, len(opts))
	for i, o := range opts {
		entry := map[string]any{
			"name":                      o.Name,
			"description":               o.Description,
			"type":                      o.Type,
			"required":                  o.Required,
			"autocomplete":              o.Autocomplete,
			"name_localizations":        o.NameLocalizations,
			"description_localizations": o.DescriptionLocalizations,
			"channel_types":             o.ChannelTypes,
			"max_length":                o.MaxLength,
		}
		if len(o.Choices) > 0 {
			choices := make([]map[string]any, len(o.Choices))
			for j, ch := range o.Choices {
				choices[j] = map[string]any{
					"name":               ch.Name,
					"value":              ch.Value,
					"name_localizations": ch.NameLocalizations,
				}
			}
			entry["choices"] = choices
		}
		if len(o.Options) > 0 {
			entry["options"] = normalizeOptions(o.Options)
		}
		out[i] = entry
	}
	return out
}
