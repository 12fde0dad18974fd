// Copyright (c) 2022 RoseLoverX

package mtclient

// The closed subset of the RPC schema this client speaks. Requests carry
// their own typed result, which the sender records on Receive.

// Request is the sealed set of remote procedure calls. Values outside this
// set cannot be invoked; extending the protocol means adding a type here.
type Request interface {
	requestName() string
}

// InvokeWithLayer wraps a query with the protocol layer version the client
// speaks. Always the first request of a connection.
type InvokeWithLayer struct {
	Layer  int32
	Query  Request
	Result *Config
}

func (*InvokeWithLayer) requestName() string { return "invokeWithLayer" }

// InitConnection announces client metadata and wraps the actual query.
type InitConnection struct {
	APIID         int32
	DeviceModel   string
	SystemVersion string
	AppVersion    string
	LangCode      string
	Query         Request
}

func (*InitConnection) requestName() string { return "initConnection" }

type HelpGetConfig struct {
	Result *Config
}

func (*HelpGetConfig) requestName() string { return "help.getConfig" }

type AuthSendCode struct {
	PhoneNumber string
	APIID       int32
	APIHash     string
	Result      *SentCode
}

func (*AuthSendCode) requestName() string { return "auth.sendCode" }

type AuthSignIn struct {
	PhoneNumber   string
	PhoneCodeHash string
	PhoneCode     string
	Result        *Authorization
}

func (*AuthSignIn) requestName() string { return "auth.signIn" }

type UploadSaveFilePart struct {
	FileID   int64
	FilePart int32
	Bytes    []byte
	Result   bool
}

func (*UploadSaveFilePart) requestName() string { return "upload.saveFilePart" }

type UploadGetFile struct {
	Location InputFileLocation
	Offset   int64
	Limit    int32
	Result   *UploadFile
}

func (*UploadGetFile) requestName() string { return "upload.getFile" }

type MessagesGetDialogs struct {
	OffsetDate int32
	OffsetID   int32
	OffsetPeer InputPeer
	Limit      int32
	Result     *Dialogs
}

func (*MessagesGetDialogs) requestName() string { return "messages.getDialogs" }

type MessagesSendMessage struct {
	Peer      InputPeer
	Message   string
	RandomID  int64
	Entities  []MessageEntity
	NoWebpage bool
}

func (*MessagesSendMessage) requestName() string { return "messages.sendMessage" }

type MessagesSendMedia struct {
	Peer     InputPeer
	Media    InputMedia
	RandomID int64
}

func (*MessagesSendMedia) requestName() string { return "messages.sendMedia" }

type MessagesGetHistory struct {
	Peer       InputPeer
	OffsetID   int32
	OffsetDate int32
	AddOffset  int32
	Limit      int32
	MaxID      int32
	MinID      int32
	Result     *MessagesMessages
}

func (*MessagesGetHistory) requestName() string { return "messages.getHistory" }

// results and bare types

type Config struct {
	Date      int32
	TestMode  bool
	ThisDC    int32
	DCOptions []DcOption
	Expires   int32
}

// DcOption is one reachable data center. The set is captured once per
// successful bootstrap and looked up by id on reconnection.
type DcOption struct {
	ID        int32
	IPAddress string
	Port      int32
}

type SentCode struct {
	PhoneRegistered bool
	PhoneCodeHash   string
}

type Authorization struct {
	User *UserObj
}

type UploadFile struct {
	Type  string
	Bytes []byte
}

type Dialogs struct {
	Dialogs []*Dialog
	Users   []*UserObj
	Chats   []Chat
}

type Dialog struct {
	Peer       Peer
	TopMessage int32
}

type MessagesMessages struct {
	Count    int32
	Messages []*Message
	Users    []*UserObj
	Chats    []Chat
}

type Message struct {
	ID      int32
	FromID  int64
	Date    int32
	Message string
	Media   MessageMedia
}

type MessageEntity struct {
	Type   string
	Offset int32
	Length int32
	URL    string
}

// EntityParser turns marked-up text into plain text plus its entities. The
// implementation is an external collaborator; the client only calls it.
type EntityParser func(text string) (string, []MessageEntity)

type UserObj struct {
	ID         int64
	AccessHash int64
	FirstName  string
	LastName   string
	Username   string
	Phone      string
}

// Chat is the sealed union over group chats and channels as they appear in
// the chat tables returned alongside requests.
type Chat interface {
	chat()
	GetID() int64
	GetTitle() string
}

type ChatObj struct {
	ID    int64
	Title string
}

func (*ChatObj) chat()              {}
func (c *ChatObj) GetID() int64     { return c.ID }
func (c *ChatObj) GetTitle() string { return c.Title }

type Channel struct {
	ID         int64
	AccessHash int64
	Title      string
}

func (*Channel) chat()              {}
func (c *Channel) GetID() int64     { return c.ID }
func (c *Channel) GetTitle() string { return c.Title }

// Peer is the lightweight, non-addressable reference to a user/chat/channel
// as it appears embedded in inbound records. Never persisted.
type Peer interface {
	peer()
}

type PeerUser struct {
	UserID int64
}

func (*PeerUser) peer() {}

type PeerChat struct {
	ChatID int64
}

func (*PeerChat) peer() {}

type PeerChannel struct {
	ChannelID int64
}

func (*PeerChannel) peer() {}

// InputPeer is the canonical addressable form of a peer, used when issuing
// outgoing requests. Equality is structural.
type InputPeer interface {
	inputPeer()
}

type InputPeerEmpty struct{}

func (*InputPeerEmpty) inputPeer() {}

type InputPeerUser struct {
	UserID     int64
	AccessHash int64
}

func (*InputPeerUser) inputPeer() {}

type InputPeerChat struct {
	ChatID int64
}

func (*InputPeerChat) inputPeer() {}

type InputPeerChannel struct {
	ChannelID  int64
	AccessHash int64
}

func (*InputPeerChannel) inputPeer() {}

// MessageMedia is the sealed union over media kinds carried on messages.
type MessageMedia interface {
	messageMedia()
}

type MessageMediaPhoto struct {
	Photo   *Photo
	Caption string
}

func (*MessageMediaPhoto) messageMedia() {}

type MessageMediaDocument struct {
	Document *Document
	Caption  string
}

func (*MessageMediaDocument) messageMedia() {}

type MessageMediaContact struct {
	FirstName   string
	LastName    string
	PhoneNumber string
}

func (*MessageMediaContact) messageMedia() {}

type Photo struct {
	ID         int64
	AccessHash int64
	Sizes      []*PhotoSize
}

type PhotoSize struct {
	Type     string
	Location *FileLocation
	Size     int32
}

type FileLocation struct {
	VolumeID int64
	LocalID  int32
	Secret   int64
}

type Document struct {
	ID         int64
	AccessHash int64
	Version    int32
	MimeType   string
	Size       int32
	Attributes []DocumentAttribute
}

// DocumentAttribute is the sealed union over document metadata.
type DocumentAttribute interface {
	documentAttribute()
}

type DocumentAttributeFilename struct {
	FileName string
}

func (*DocumentAttributeFilename) documentAttribute() {}

type DocumentAttributeAudio struct {
	Duration  int32
	Performer string
	Title     string
}

func (*DocumentAttributeAudio) documentAttribute() {}

// InputFileLocation is the sealed union over remote file addresses accepted
// by the chunk-fetch call.
type InputFileLocation interface {
	inputFileLocation()
}

type InputFileLocationObj struct {
	VolumeID int64
	LocalID  int32
	Secret   int64
}

func (*InputFileLocationObj) inputFileLocation() {}

type InputDocumentFileLocation struct {
	ID         int64
	AccessHash int64
	Version    int32
}

func (*InputDocumentFileLocation) inputFileLocation() {}

// InputFile is the handle to a fully uploaded file, referenced by outgoing
// media-sending requests. Immutable once the upload completed.
type InputFile struct {
	ID          int64
	Parts       int32
	Name        string
	MD5Checksum string
}

// InputMedia is the sealed union over sendable media payloads.
type InputMedia interface {
	inputMedia()
}

type InputMediaUploadedPhoto struct {
	File    *InputFile
	Caption string
}

func (*InputMediaUploadedPhoto) inputMedia() {}

type InputMediaUploadedDocument struct {
	File       *InputFile
	MimeType   string
	Attributes []DocumentAttribute
	Caption    string
}

func (*InputMediaUploadedDocument) inputMedia() {}
