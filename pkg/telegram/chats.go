package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tg_chats/models"

	"github.com/gotd/td/telegram"
	"github.com/gotd/td/tg"
)

// DefaultMessagesLimit — сколько сообщений отдаётся, если лимит не задан.
const DefaultMessagesLimit = 100

// dialogsPageSize — размер выборки диалогов; пагинации нет, список
// материализуется целиком.
const dialogsPageSize = 100

// channelIDOffset повторяет схему идентификаторов Bot API: каналы получают
// id вида -100XXXXXXXXXX, обычные группы — отрицательный id. Так id диалога
// однозначно указывает и на вид сущности.
const channelIDOffset = int64(1000000000000)

// GetChats возвращает список диалогов с кратким описанием последнего
// сообщения каждого.
func (s *Service) GetChats(ctx context.Context, sessionToken string) ([]models.ChatSummary, error) {
	var chats []models.ChatSummary
	_, err := s.withClient(ctx, sessionToken, func(ctx context.Context, client *telegram.Client) error {
		api := tg.NewClient(client)
		res, err := api.MessagesGetDialogs(ctx, &tg.MessagesGetDialogsRequest{
			Limit:      dialogsPageSize,
			OffsetPeer: &tg.InputPeerEmpty{},
		})
		if err != nil {
			return err
		}
		dialogs, ok := res.AsModified()
		if !ok {
			return fmt.Errorf("unexpected dialogs type: %T", res)
		}
		chats = buildChatSummaries(dialogs)
		return nil
	})
	if err != nil {
		return nil, remoteErr("get dialogs", err)
	}
	return chats, nil
}

// GetMessages возвращает до limit последних сообщений чата.
func (s *Service) GetMessages(ctx context.Context, sessionToken string, chatID int64, limit int) ([]models.MessageSummary, error) {
	if limit <= 0 {
		limit = DefaultMessagesLimit
	}
	var messages []models.MessageSummary
	_, err := s.withClient(ctx, sessionToken, func(ctx context.Context, client *telegram.Client) error {
		api := tg.NewClient(client)
		peer, err := resolveInputPeer(ctx, api, chatID)
		if err != nil {
			return err
		}
		res, err := api.MessagesGetHistory(ctx, &tg.MessagesGetHistoryRequest{
			Peer:  peer,
			Limit: limit,
		})
		if err != nil {
			return err
		}
		history, ok := res.AsModified()
		if !ok {
			return fmt.Errorf("unexpected history type: %T", res)
		}
		messages = buildMessageSummaries(history)
		return nil
	})
	if err != nil {
		return nil, remoteErr("get history", err)
	}
	return messages, nil
}

// resolveInputPeer находит peer по id диалога. Для обращения к чату Telegram
// требует access_hash, поэтому сущность ищется среди диалогов текущей сессии.
func resolveInputPeer(ctx context.Context, api *tg.Client, chatID int64) (tg.InputPeerClass, error) {
	res, err := api.MessagesGetDialogs(ctx, &tg.MessagesGetDialogsRequest{
		Limit:      dialogsPageSize,
		OffsetPeer: &tg.InputPeerEmpty{},
	})
	if err != nil {
		return nil, err
	}
	dialogs, ok := res.AsModified()
	if !ok {
		return nil, fmt.Errorf("unexpected dialogs type: %T", res)
	}
	if peer := findInputPeer(dialogs, chatID); peer != nil {
		return peer, nil
	}
	return nil, fmt.Errorf("чат %d не найден среди диалогов", chatID)
}

// findInputPeer подбирает InputPeer по сущностям из выдачи диалогов.
func findInputPeer(dialogs tg.ModifiedMessagesDialogs, chatID int64) tg.InputPeerClass {
	for _, raw := range dialogs.GetUsers() {
		if u, ok := raw.(*tg.User); ok && u.ID == chatID {
			return &tg.InputPeerUser{UserID: u.ID, AccessHash: u.AccessHash}
		}
	}
	for _, raw := range dialogs.GetChats() {
		switch c := raw.(type) {
		case *tg.Chat:
			if markedPeerID(&tg.PeerChat{ChatID: c.ID}) == chatID {
				return &tg.InputPeerChat{ChatID: c.ID}
			}
		case *tg.Channel:
			if markedPeerID(&tg.PeerChannel{ChannelID: c.ID}) == chatID {
				return &tg.InputPeerChannel{ChannelID: c.ID, AccessHash: c.AccessHash}
			}
		}
	}
	return nil
}

// buildChatSummaries собирает список чатов из выдачи диалогов.
func buildChatSummaries(dialogs tg.ModifiedMessagesDialogs) []models.ChatSummary {
	users := indexUsers(dialogs.GetUsers())
	chats := indexChats(dialogs.GetChats())
	last := indexLastMessages(dialogs.GetMessages())

	summaries := make([]models.ChatSummary, 0, len(dialogs.GetDialogs()))
	for _, raw := range dialogs.GetDialogs() {
		d, ok := raw.(*tg.Dialog)
		if !ok {
			continue
		}
		id := markedPeerID(d.Peer)
		name, kind := dialogTitle(d.Peer, users, chats)
		summary := models.ChatSummary{ID: id, Name: name, Type: kind}
		if m := last[id]; m != nil {
			sender := messageSenderPeer(m)
			summary.LastMessage = &models.LastMessage{
				ID:       m.ID,
				Text:     m.Message,
				Date:     time.Unix(int64(m.Date), 0).UTC(),
				SenderID: markedPeerID(sender),
				Sender:   senderName(sender, users, chats),
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// buildMessageSummaries собирает список сообщений из выдачи истории.
func buildMessageSummaries(history tg.ModifiedMessagesMessages) []models.MessageSummary {
	users := indexUsers(history.GetUsers())
	chats := indexChats(history.GetChats())

	summaries := make([]models.MessageSummary, 0, len(history.GetMessages()))
	for _, raw := range history.GetMessages() {
		m, ok := raw.(*tg.Message)
		if !ok {
			continue
		}
		sender := messageSenderPeer(m)
		_, hasMedia := m.GetMedia()
		summaries = append(summaries, models.MessageSummary{
			ID:       m.ID,
			Text:     m.Message,
			Date:     time.Unix(int64(m.Date), 0).UTC(),
			SenderID: markedPeerID(sender),
			Sender:   senderName(sender, users, chats),
			Media:    hasMedia,
		})
	}
	return summaries
}

func indexUsers(list []tg.UserClass) map[int64]*tg.User {
	users := make(map[int64]*tg.User, len(list))
	for _, raw := range list {
		if u, ok := raw.(*tg.User); ok {
			users[u.ID] = u
		}
	}
	return users
}

func indexChats(list []tg.ChatClass) map[int64]tg.ChatClass {
	chats := make(map[int64]tg.ChatClass, len(list))
	for _, raw := range list {
		switch c := raw.(type) {
		case *tg.Chat:
			chats[c.ID] = c
		case *tg.Channel:
			chats[c.ID] = c
		}
	}
	return chats
}

// indexLastMessages раскладывает последние сообщения по id диалога.
// Telegram отдаёт их в том же порядке, что и диалоги, поэтому первая запись
// для peer — это и есть последнее сообщение.
func indexLastMessages(list []tg.MessageClass) map[int64]*tg.Message {
	last := make(map[int64]*tg.Message, len(list))
	for _, raw := range list {
		m, ok := raw.(*tg.Message)
		if !ok {
			continue
		}
		id := markedPeerID(m.PeerID)
		if _, seen := last[id]; !seen {
			last[id] = m
		}
	}
	return last
}

// markedPeerID приводит peer к id диалога: пользователи — положительные,
// группы — отрицательные, каналы — со сдвигом channelIDOffset.
func markedPeerID(peer tg.PeerClass) int64 {
	switch p := peer.(type) {
	case *tg.PeerUser:
		return p.UserID
	case *tg.PeerChat:
		return -p.ChatID
	case *tg.PeerChannel:
		return -(channelIDOffset + p.ChannelID)
	}
	return 0
}

// messageSenderPeer определяет отправителя сообщения. В личных диалогах
// from_id может отсутствовать — тогда отправитель совпадает с peer диалога.
func messageSenderPeer(m *tg.Message) tg.PeerClass {
	if from, ok := m.GetFromID(); ok {
		return from
	}
	return m.PeerID
}

// dialogTitle возвращает название диалога и вид сущности.
func dialogTitle(peer tg.PeerClass, users map[int64]*tg.User, chats map[int64]tg.ChatClass) (string, string) {
	switch p := peer.(type) {
	case *tg.PeerUser:
		if u := users[p.UserID]; u != nil {
			if full := strings.TrimSpace(u.FirstName + " " + u.LastName); full != "" {
				return full, "User"
			}
			if u.Username != "" {
				return u.Username, "User"
			}
		}
		return "Unnamed", "User"
	case *tg.PeerChat:
		if c, ok := chats[p.ChatID].(*tg.Chat); ok && c.Title != "" {
			return c.Title, "Chat"
		}
		return "Unnamed", "Chat"
	case *tg.PeerChannel:
		if c, ok := chats[p.ChannelID].(*tg.Channel); ok && c.Title != "" {
			return c.Title, "Channel"
		}
		return "Unnamed", "Channel"
	}
	return "Unnamed", "Unknown"
}

// senderName определяет отображаемое имя отправителя. Приоритет: имя и
// фамилия, затем название группы или канала, затем username, иначе "Unknown".
func senderName(peer tg.PeerClass, users map[int64]*tg.User, chats map[int64]tg.ChatClass) string {
	switch p := peer.(type) {
	case *tg.PeerUser:
		u := users[p.UserID]
		if u == nil {
			return "Unknown"
		}
		if full := strings.TrimSpace(u.FirstName + " " + u.LastName); full != "" {
			return full
		}
		if u.Username != "" {
			return u.Username
		}
	case *tg.PeerChat:
		if c, ok := chats[p.ChatID].(*tg.Chat); ok && c.Title != "" {
			return c.Title
		}
	case *tg.PeerChannel:
		if c, ok := chats[p.ChannelID].(*tg.Channel); ok {
			if c.Title != "" {
				return c.Title
			}
			if c.Username != "" {
				return c.Username
			}
		}
	}
	return "Unknown"
}
