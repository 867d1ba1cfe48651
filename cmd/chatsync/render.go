package main

import (
	"fmt"
	"io"
	"time"

	"github.com/PaulBabatuyi/chatsync/internal/data"
	"github.com/PaulBabatuyi/chatsync/internal/screen"
	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

const previewLen = 40

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func banner(w io.Writer, title string) {
	fmt.Fprintln(w, color.New(color.BgBlack, color.FgGreen).Render(fmt.Sprintf("  ====== %s ======", title)))
}

func status(w io.Writer, loading bool, errMsg string) {
	if errMsg != "" {
		fmt.Fprintln(w, color.Red.Sprint(errMsg))
	}
	if loading {
		fmt.Fprintln(w, color.Gray.Sprint("loading..."))
	}
}

func renderChatList(w io.Writer, me data.User, st screen.ChatListState) {
	banner(w, fmt.Sprintf("chats of %s", me.DisplayName))
	status(w, st.IsLoading, st.Error)

	table := newTable(w, "Chat", "With", "", "Last message", "At")
	for _, c := range st.Visible {
		name, online := c.PartnerID(me.ID), false
		if partner, ok := c.Partner(me.ID); ok {
			name, online = partner.DisplayName, partner.IsOnline
		}
		table.Append([]string{c.ID, name, presence(online), preview(c.LastMessageType, c.LastMessage), when(c.LastMessageTime)})
	}
	table.Render()
}

func renderChat(w io.Writer, st screen.ChatState) {
	title := st.ChatID
	if st.Partner != nil {
		title = fmt.Sprintf("%s (%s) %s", st.Partner.DisplayName, st.Partner.Initials(), presence(st.Partner.IsOnline))
	}
	banner(w, title)
	status(w, st.IsSending, st.Error)

	table := newTable(w, "At", "From", "Message", "Status")
	for _, m := range st.Messages {
		from := m.SenderName
		if m.SenderID == st.UserID {
			from = color.Cyan.Sprint("me")
		}
		table.Append([]string{when(m.Timestamp), from, preview(m.Type, m.Content), string(m.Status)})
	}
	table.Render()
}

func presence(online bool) string {
	if online {
		return color.Green.Sprint("online")
	}
	return color.Gray.Sprint("offline")
}

// preview shortens text content and names other content types.
func preview(t data.MessageType, content string) string {
	if t != "" && t != data.MessageTypeText {
		return fmt.Sprintf("[%s]", t)
	}
	runes := []rune(content)
	if len(runes) > previewLen {
		return string(runes[:previewLen-3]) + "..."
	}
	return content
}

func when(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("02 Jan 15:04")
}
