// Copyright (c) 2022 RoseLoverX

package mtclient

import (
	"github.com/pkg/errors"

	"github.com/roseloverx/mtclient/internal/history"
)

// GetDialogs retrieves the top open conversations and returns them together
// with resolved display names and addressable input peers, one of each per
// dialog.
func (c *Client) GetDialogs(limit int32) ([]*Dialog, []string, []InputPeer, error) {
	request := &MessagesGetDialogs{
		OffsetPeer: &InputPeerEmpty{},
		Limit:      limit,
	}
	if err := c.Invoke(request); err != nil {
		return nil, nil, nil, errors.Wrap(err, "getting dialogs")
	}
	result := request.Result
	if result == nil {
		return nil, nil, nil, errors.New("dialogs request returned no result")
	}

	displays := make([]string, len(result.Dialogs))
	inputs := make([]InputPeer, len(result.Dialogs))
	for i, dialog := range result.Dialogs {
		displays[i], _ = FindDisplayName(dialog.Peer, result.Users, result.Chats)
		input, ok := FindInputPeer(dialog.Peer, result.Users, result.Chats)
		if !ok {
			input = &InputPeerEmpty{}
		}
		inputs[i] = input
	}
	return result.Dialogs, displays, inputs, nil
}

// SendMessageOptions tunes one outgoing message.
type SendMessageOptions struct {
	// ParseEntities runs the configured entity parser over the text
	ParseEntities bool
	// NoWebpage suppresses link previews
	NoWebpage bool
}

// SendMessage sends a text message to the given input peer.
func (c *Client) SendMessage(peer InputPeer, message string, opts *SendMessageOptions) error {
	if opts == nil {
		opts = &SendMessageOptions{}
	}

	var entities []MessageEntity
	if opts.ParseEntities && c.config.EntityParser != nil {
		message, entities = c.config.EntityParser(message)
	}

	return c.Invoke(&MessagesSendMessage{
		Peer:      peer,
		Message:   message,
		RandomID:  GenerateRandomLong(),
		Entities:  entities,
		NoWebpage: opts.NoWebpage,
	})
}

// HistoryOptions are the offsets accepted by GetMessageHistory. The zero
// value retrieves the latest messages.
type HistoryOptions struct {
	Limit      int32
	OffsetID   int32
	OffsetDate int32
	AddOffset  int32
	MaxID      int32
	MinID      int32
}

// GetMessageHistory retrieves the message history for the given input peer
// and returns the total count, the messages and the sender of each message
// (nil when the sender was not part of the response's user table). Retrieved
// messages are persisted into the history store when one is configured.
func (c *Client) GetMessageHistory(peer InputPeer, opts *HistoryOptions) (int32, []*Message, []*UserObj, error) {
	if opts == nil {
		opts = &HistoryOptions{Limit: 20}
	}

	request := &MessagesGetHistory{
		Peer:       peer,
		Limit:      opts.Limit,
		OffsetID:   opts.OffsetID,
		OffsetDate: opts.OffsetDate,
		AddOffset:  opts.AddOffset,
		MaxID:      opts.MaxID,
		MinID:      opts.MinID,
	}
	if err := c.Invoke(request); err != nil {
		return 0, nil, nil, errors.Wrap(err, "getting message history")
	}
	result := request.Result
	if result == nil {
		return 0, nil, nil, errors.New("history request returned no result")
	}

	// a plain messages result carries no count; fall back to what arrived
	total := result.Count
	if total == 0 {
		total = int32(len(result.Messages))
	}

	senders := make([]*UserObj, len(result.Messages))
	for i, msg := range result.Messages {
		for _, user := range result.Users {
			if user.ID == msg.FromID {
				senders[i] = user
				break
			}
		}
	}

	if c.history != nil {
		if err := c.history.SaveMessages(inputPeerID(peer), historyRecords(result.Messages)); err != nil {
			c.Log.Warnf("saving message history: %v", err)
		}
	}

	return total, result.Messages, senders, nil
}

// SendMedia sends any input media (photo, document, ...) to the input peer.
func (c *Client) SendMedia(peer InputPeer, media InputMedia) error {
	return c.Invoke(&MessagesSendMedia{
		Peer:     peer,
		Media:    media,
		RandomID: GenerateRandomLong(),
	})
}

// SendPhoto uploads the photo at filePath and sends it to the input peer.
func (c *Client) SendPhoto(peer InputPeer, filePath, caption string) error {
	file, err := c.UploadFile(filePath, nil)
	if err != nil {
		return err
	}
	return c.SendMedia(peer, &InputMediaUploadedPhoto{File: file, Caption: caption})
}

// SendDocument uploads the file at filePath and sends it as a document,
// with its mime type looked up from the extension table and its file name
// attached as an attribute.
func (c *Client) SendDocument(peer InputPeer, filePath, caption string) error {
	file, err := c.UploadFile(filePath, nil)
	if err != nil {
		return err
	}
	return c.SendMedia(peer, &InputMediaUploadedDocument{
		File:     file,
		MimeType: mimeTypes.MIME(filePath),
		Attributes: []DocumentAttribute{
			&DocumentAttributeFilename{FileName: file.Name},
		},
		Caption: caption,
	})
}

func historyRecords(messages []*Message) []history.Record {
	records := make([]history.Record, len(messages))
	for i, m := range messages {
		records[i] = history.Record{
			ID:      m.ID,
			FromID:  m.FromID,
			Date:    m.Date,
			Message: m.Message,
		}
	}
	return records
}

func inputPeerID(peer InputPeer) int64 {
	switch p := peer.(type) {
	case *InputPeerUser:
		return p.UserID
	case *InputPeerChat:
		return p.ChatID
	case *InputPeerChannel:
		return p.ChannelID
	default:
		return 0
	}
}
