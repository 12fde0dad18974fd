// Copyright (c) 2022 RoseLoverX

package mtclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMimeLookup(t *testing.T) {
	assert.Equal(t, "video/mp4", mimeTypes.MIME("holiday/clip.mp4"))
	assert.Equal(t, "", mimeTypes.MIME("archive.rar"))

	assert.Equal(t, ".mp3", mimeTypes.Ext("audio/mpeg"))
	assert.Equal(t, "", mimeTypes.Ext("application/x-unknown"))
}

func TestGenerateRandomLong(t *testing.T) {
	seen := map[int64]bool{}
	for i := 0; i < 64; i++ {
		seen[GenerateRandomLong()] = true
	}
	assert.Greater(t, len(seen), 60)
}

func TestDocumentFileNamePrecedence(t *testing.T) {
	document := &Document{Attributes: []DocumentAttribute{
		&DocumentAttributeAudio{Performer: "Someone", Title: "Song"},
		&DocumentAttributeFilename{FileName: "song.flac"},
	}}
	assert.Equal(t, "song.flac", documentFileName(document))

	document.Attributes = document.Attributes[:1]
	assert.Equal(t, "Someone - Song", documentFileName(document))

	assert.Equal(t, "", documentFileName(&Document{}))
}
