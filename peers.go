// Copyright (c) 2022 RoseLoverX

package mtclient

// Resolution of peer references against the user/chat tables returned
// alongside a request. Lookups are first-match linear scans; the tables are
// small and assumed to hold at most one entry per id. A missing peer is a
// not-found outcome, never an error.

// FindDisplayName searches the display name for peer in both users and
// chats. For users it is "first last" when a last name is present, else the
// first name alone; for chats and channels it is the title.
func FindDisplayName(peer Peer, users []*UserObj, chats []Chat) (string, bool) {
	switch p := peer.(type) {
	case *PeerUser:
		for _, user := range users {
			if user.ID == p.UserID {
				if user.LastName != "" {
					return user.FirstName + " " + user.LastName, true
				}
				return user.FirstName, true
			}
		}

	case *PeerChat:
		for _, chat := range chats {
			if chat.GetID() == p.ChatID {
				return chat.GetTitle(), true
			}
		}

	case *PeerChannel:
		for _, chat := range chats {
			if chat.GetID() == p.ChannelID {
				return chat.GetTitle(), true
			}
		}
	}

	return "", false
}

// FindInputPeer searches peer in both users and chats and returns the
// addressable InputPeer for it, carrying the access hash where the variant
// needs one.
func FindInputPeer(peer Peer, users []*UserObj, chats []Chat) (InputPeer, bool) {
	switch p := peer.(type) {
	case *PeerUser:
		for _, user := range users {
			if user.ID == p.UserID {
				return &InputPeerUser{UserID: user.ID, AccessHash: user.AccessHash}, true
			}
		}

	case *PeerChat:
		for _, chat := range chats {
			if chat.GetID() == p.ChatID {
				return &InputPeerChat{ChatID: chat.GetID()}, true
			}
		}

	case *PeerChannel:
		for _, chat := range chats {
			if chat.GetID() != p.ChannelID {
				continue
			}
			channel, ok := chat.(*Channel)
			if !ok {
				return &InputPeerChannel{ChannelID: chat.GetID()}, true
			}
			return &InputPeerChannel{ChannelID: channel.ID, AccessHash: channel.AccessHash}, true
		}
	}

	return nil, false
}
