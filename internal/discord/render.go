package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/osse101/dropgame/internal/drop"
)

// Discord allows five buttons per row.
const buttonsPerRow = 5

func toEmbed(e *drop.Embed) *discordgo.MessageEmbed {
	if e == nil {
		return nil
	}
	out := &discordgo.MessageEmbed{
		Title:       e.Title,
		Description: e.Description,
		Color:       e.Color,
	}
	if e.Footer != "" {
		out.Footer = &discordgo.MessageEmbedFooter{Text: e.Footer}
	}
	for _, f := range e.Fields {
		out.Fields = append(out.Fields, &discordgo.MessageEmbedField{Name: f.Name, Value: f.Value, Inline: f.Inline})
	}
	return out
}

func toEmbeds(e *drop.Embed) []*discordgo.MessageEmbed {
	if e == nil {
		return []*discordgo.MessageEmbed{}
	}
	return []*discordgo.MessageEmbed{toEmbed(e)}
}

func buttonStyle(s drop.ButtonStyle) discordgo.ButtonStyle {
	switch s {
	case drop.ButtonPrimary:
		return discordgo.PrimaryButton
	case drop.ButtonSuccess:
		return discordgo.SuccessButton
	case drop.ButtonDanger:
		return discordgo.DangerButton
	default:
		return discordgo.SecondaryButton
	}
}

// toComponents lays buttons out in rows.
func toComponents(buttons []drop.Button) []discordgo.MessageComponent {
	rows := []discordgo.MessageComponent{}
	for start := 0; start < len(buttons); start += buttonsPerRow {
		end := min(start+buttonsPerRow, len(buttons))
		row := discordgo.ActionsRow{}
		for _, b := range buttons[start:end] {
			label := b.Label
			if b.Emoji != "" {
				label = b.Emoji + " " + label
			}
			row.Components = append(row.Components, discordgo.Button{
				CustomID: b.ID,
				Label:    label,
				Style:    buttonStyle(b.Style),
				Disabled: b.Disabled,
			})
		}
		rows = append(rows, row)
	}
	return rows
}

func messageFlags(msg drop.Message) discordgo.MessageFlags {
	if msg.Ephemeral {
		return discordgo.MessageFlagsEphemeral
	}
	return 0
}

func toSend(msg drop.Message) *discordgo.MessageSend {
	out := &discordgo.MessageSend{
		Content:    msg.Content,
		Embeds:     toEmbeds(msg.Embed),
		Components: toComponents(msg.Buttons),
	}
	if msg.ReplyTo != "" {
		out.Reference = &discordgo.MessageReference{MessageID: msg.ReplyTo}
	}
	return out
}

func toEdit(channelID, messageID string, msg drop.Message) *discordgo.MessageEdit {
	content := msg.Content
	embeds := toEmbeds(msg.Embed)
	components := toComponents(msg.Buttons)
	return &discordgo.MessageEdit{
		ID:         messageID,
		Channel:    channelID,
		Content:    &content,
		Embeds:     &embeds,
		Components: &components,
	}
}

func toResponseData(msg drop.Message) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content:    msg.Content,
		Embeds:     toEmbeds(msg.Embed),
		Components: toComponents(msg.Buttons),
		Flags:      messageFlags(msg),
	}
}

func toFollowup(msg drop.Message) *discordgo.WebhookParams {
	return &discordgo.WebhookParams{
		Content:    msg.Content,
		Embeds:     toEmbeds(msg.Embed),
		Components: toComponents(msg.Buttons),
		Flags:      messageFlags(msg),
	}
}

// memberOf converts a guild member to the games' view of it.
func memberOf(m *discordgo.Member, u *discordgo.User) drop.Member {
	if u == nil && m != nil {
		u = m.User
	}
	if u == nil {
		return drop.Member{}
	}
	name := u.Username
	if u.GlobalName != "" {
		name = u.GlobalName
	}
	if m != nil && m.Nick != "" {
		name = m.Nick
	}
	return drop.Member{ID: u.ID, DisplayName: name, Bot: u.Bot}
}
