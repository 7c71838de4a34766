package telegram

import (
	"testing"

	"github.com/gotd/td/tg"
)

// fixtureDialogs собирает типовую выдачу диалогов: личная переписка,
// группа и канал.
func fixtureDialogs() *tg.MessagesDialogs {
	personal := &tg.Message{ID: 5, Message: "привет", Date: 1700000000, PeerID: &tg.PeerUser{UserID: 10}}
	post := &tg.Message{ID: 9, Message: "пост", Date: 1700000100, PeerID: &tg.PeerChannel{ChannelID: 77}}
	post.SetFromID(&tg.PeerChannel{ChannelID: 77})

	return &tg.MessagesDialogs{
		Dialogs: []tg.DialogClass{
			&tg.Dialog{Peer: &tg.PeerUser{UserID: 10}, TopMessage: 5},
			&tg.Dialog{Peer: &tg.PeerChat{ChatID: 5}},
			&tg.Dialog{Peer: &tg.PeerChannel{ChannelID: 77}, TopMessage: 9},
		},
		Messages: []tg.MessageClass{personal, post},
		Chats: []tg.ChatClass{
			&tg.Chat{ID: 5, Title: "Группа"},
			&tg.Channel{ID: 77, Title: "Новости", AccessHash: 555},
		},
		Users: []tg.UserClass{
			&tg.User{ID: 10, FirstName: "Олег", LastName: "Иванов", AccessHash: 111},
		},
	}
}

// TestMarkedPeerID проверяет схему идентификаторов диалогов.
func TestMarkedPeerID(t *testing.T) {
	if got := markedPeerID(&tg.PeerUser{UserID: 10}); got != 10 {
		t.Fatalf("ожидался id 10, получено %d", got)
	}
	if got := markedPeerID(&tg.PeerChat{ChatID: 5}); got != -5 {
		t.Fatalf("ожидался id -5, получено %d", got)
	}
	if got := markedPeerID(&tg.PeerChannel{ChannelID: 77}); got != -1000000000077 {
		t.Fatalf("ожидался id -1000000000077, получено %d", got)
	}
}

// TestBuildChatSummaries проверяет сборку списка чатов из выдачи диалогов.
func TestBuildChatSummaries(t *testing.T) {
	summaries := buildChatSummaries(fixtureDialogs())
	if len(summaries) != 3 {
		t.Fatalf("ожидалось 3 чата, получено %d", len(summaries))
	}

	user := summaries[0]
	if user.ID != 10 || user.Name != "Олег Иванов" || user.Type != "User" {
		t.Fatalf("неверный личный диалог: %+v", user)
	}
	if user.LastMessage == nil || user.LastMessage.ID != 5 || user.LastMessage.Sender != "Олег Иванов" {
		t.Fatalf("неверное последнее сообщение: %+v", user.LastMessage)
	}

	group := summaries[1]
	if group.ID != -5 || group.Name != "Группа" || group.Type != "Chat" {
		t.Fatalf("неверная группа: %+v", group)
	}
	if group.LastMessage != nil {
		t.Fatalf("у группы не должно быть последнего сообщения: %+v", group.LastMessage)
	}

	channel := summaries[2]
	if channel.ID != -1000000000077 || channel.Name != "Новости" || channel.Type != "Channel" {
		t.Fatalf("неверный канал: %+v", channel)
	}
	if channel.LastMessage == nil || channel.LastMessage.Sender != "Новости" || channel.LastMessage.SenderID != -1000000000077 {
		t.Fatalf("неверное последнее сообщение канала: %+v", channel.LastMessage)
	}
}

// TestBuildMessageSummaries проверяет сборку списка сообщений, включая
// признак вложения.
func TestBuildMessageSummaries(t *testing.T) {
	plain := &tg.Message{ID: 1, Message: "текст", Date: 1700000000, PeerID: &tg.PeerUser{UserID: 10}}
	withMedia := &tg.Message{ID: 2, Date: 1700000200, PeerID: &tg.PeerUser{UserID: 10}}
	withMedia.SetMedia(&tg.MessageMediaPhoto{})

	history := &tg.MessagesMessages{
		Messages: []tg.MessageClass{withMedia, plain},
		Users:    []tg.UserClass{&tg.User{ID: 10, Username: "oleg"}},
	}

	summaries := buildMessageSummaries(history)
	if len(summaries) != 2 {
		t.Fatalf("ожидалось 2 сообщения, получено %d", len(summaries))
	}
	if !summaries[0].Media || summaries[0].Text != "" {
		t.Fatalf("неверное сообщение с вложением: %+v", summaries[0])
	}
	if summaries[1].Media || summaries[1].Text != "текст" || summaries[1].Sender != "oleg" {
		t.Fatalf("неверное текстовое сообщение: %+v", summaries[1])
	}
}

// TestSenderName проверяет приоритет выбора имени отправителя.
func TestSenderName(t *testing.T) {
	users := map[int64]*tg.User{
		1: {ID: 1, FirstName: "Анна"},
		2: {ID: 2, Username: "bot"},
		3: {ID: 3},
	}
	chats := map[int64]tg.ChatClass{
		5:  &tg.Chat{ID: 5, Title: "Группа"},
		77: &tg.Channel{ID: 77, Username: "news"},
	}

	cases := []struct {
		peer tg.PeerClass
		want string
	}{
		{&tg.PeerUser{UserID: 1}, "Анна"},
		{&tg.PeerUser{UserID: 2}, "bot"},
		{&tg.PeerUser{UserID: 3}, "Unknown"},
		{&tg.PeerUser{UserID: 99}, "Unknown"},
		{&tg.PeerChat{ChatID: 5}, "Группа"},
		{&tg.PeerChannel{ChannelID: 77}, "news"},
	}
	for _, tc := range cases {
		if got := senderName(tc.peer, users, chats); got != tc.want {
			t.Fatalf("ожидалось %q, получено %q для %+v", tc.want, got, tc.peer)
		}
	}
}

// TestFindInputPeer проверяет подбор InputPeer по id диалога.
func TestFindInputPeer(t *testing.T) {
	dialogs := fixtureDialogs()

	peer := findInputPeer(dialogs, 10)
	u, ok := peer.(*tg.InputPeerUser)
	if !ok || u.UserID != 10 || u.AccessHash != 111 {
		t.Fatalf("неверный peer пользователя: %#v", peer)
	}

	peer = findInputPeer(dialogs, -5)
	c, ok := peer.(*tg.InputPeerChat)
	if !ok || c.ChatID != 5 {
		t.Fatalf("неверный peer группы: %#v", peer)
	}

	peer = findInputPeer(dialogs, -1000000000077)
	ch, ok := peer.(*tg.InputPeerChannel)
	if !ok || ch.ChannelID != 77 || ch.AccessHash != 555 {
		t.Fatalf("неверный peer канала: %#v", peer)
	}

	if peer := findInputPeer(dialogs, 42); peer != nil {
		t.Fatalf("для незнакомого id ожидался nil, получено %#v", peer)
	}
}
