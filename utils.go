// Copyright (c) 2024 RoseLoverX

package mtclient

import (
	"crypto/rand"
	"encoding/binary"
	"os"
	"path/filepath"
)

func getStr(val, def string) string {
	if val == "" {
		return def
	}
	return val
}

func workDirectory() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return dir
}

// GenerateRandomLong returns a random 8-byte integer, used as the random id
// on outgoing messages.
func GenerateRandomLong() int64 {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return int64(binary.LittleEndian.Uint64(b))
}

// ensureParentDir creates the destination's parent directory when missing.
// An already-present directory is not an error.
func ensureParentDir(filePath string) error {
	parent := filepath.Dir(filePath)
	if parent == "" || parent == "." {
		return nil
	}
	return os.MkdirAll(parent, 0o755)
}

type mimeTypeManager struct {
	mimeTypes map[string]string
}

func (m *mimeTypeManager) addMime(ext, mime string) {
	m.mimeTypes[ext] = mime
}

// MIME returns the mime type registered for the path's extension.
func (m *mimeTypeManager) MIME(filePath string) string {
	return m.mimeTypes[filepath.Ext(filePath)]
}

// Ext returns the extension registered for the mime type, or "".
func (m *mimeTypeManager) Ext(mime string) string {
	for ext, registered := range m.mimeTypes {
		if registered == mime {
			return ext
		}
	}
	return ""
}

var mimeTypes = &mimeTypeManager{mimeTypes: make(map[string]string)}

func init() {
	mimeTypes.addMime(".png", "image/png")
	mimeTypes.addMime(".jpg", "image/jpeg")
	mimeTypes.addMime(".webp", "image/webp")
	mimeTypes.addMime(".gif", "image/gif")
	mimeTypes.addMime(".bmp", "image/bmp")
	mimeTypes.addMime(".tiff", "image/tiff")

	mimeTypes.addMime(".mp4", "video/mp4")
	mimeTypes.addMime(".mov", "video/quicktime")
	mimeTypes.addMime(".avi", "video/avi")
	mimeTypes.addMime(".mkv", "video/x-matroska")
	mimeTypes.addMime(".webm", "video/webm")

	mimeTypes.addMime(".mp3", "audio/mpeg")
	mimeTypes.addMime(".m4a", "audio/mp4")
	mimeTypes.addMime(".ogg", "audio/ogg")
	mimeTypes.addMime(".flac", "audio/flac")
	mimeTypes.addMime(".wav", "audio/wav")

	mimeTypes.addMime(".pdf", "application/pdf")
	mimeTypes.addMime(".zip", "application/zip")
	mimeTypes.addMime(".txt", "text/plain")
	mimeTypes.addMime(".json", "application/json")
}
