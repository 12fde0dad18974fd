// Copyright (c) 2022 RoseLoverX

package mtclient_test

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roseloverx/mtclient"
)

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func TestUploadFileSplitsIntoParts(t *testing.T) {
	data := bytes.Repeat([]byte{0x5a}, 150000)
	path := writeTempFile(t, "clip.mp4", data)

	var (
		sizes   []int
		indexes []int32
		ids     []int64
		payload []byte
	)
	env := newTestEnv(t, func(r mtclient.Request) error {
		if part, ok := r.(*mtclient.UploadSaveFilePart); ok {
			sizes = append(sizes, len(part.Bytes))
			indexes = append(indexes, part.FilePart)
			ids = append(ids, part.FileID)
			payload = append(payload, part.Bytes...)
			part.Result = true
			return nil
		}
		return answerConnect(r)
	})
	connect(t, env)

	in, err := env.client.UploadFile(path, &mtclient.UploadOptions{PartSize: 65536})
	require.NoError(t, err)

	assert.Equal(t, []int{65536, 65536, 18928}, sizes)
	assert.Equal(t, []int32{0, 1, 2}, indexes)
	for _, id := range ids {
		assert.Equal(t, in.ID, id)
	}
	assert.Equal(t, data, payload)
	assert.Equal(t, int32(3), in.Parts)
	assert.Equal(t, "clip.mp4", in.Name)
	assert.Equal(t, fmt.Sprintf("%x", md5.Sum(data)), in.MD5Checksum)
}

func TestUploadFileNameOverride(t *testing.T) {
	path := writeTempFile(t, "raw.bin", []byte("payload"))

	env := newTestEnv(t, func(r mtclient.Request) error {
		if part, ok := r.(*mtclient.UploadSaveFilePart); ok {
			part.Result = true
			return nil
		}
		return answerConnect(r)
	})
	connect(t, env)

	in, err := env.client.UploadFile(path, &mtclient.UploadOptions{FileName: "renamed.bin"})
	require.NoError(t, err)
	assert.Equal(t, "renamed.bin", in.Name)
	assert.Equal(t, int32(1), in.Parts)
}

func TestUploadFileEmpty(t *testing.T) {
	path := writeTempFile(t, "empty.bin", nil)

	parts := 0
	env := newTestEnv(t, func(r mtclient.Request) error {
		if part, ok := r.(*mtclient.UploadSaveFilePart); ok {
			parts++
			part.Result = true
			return nil
		}
		return answerConnect(r)
	})
	connect(t, env)

	in, err := env.client.UploadFile(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, parts)
	assert.Equal(t, int32(0), in.Parts)
	assert.Equal(t, fmt.Sprintf("%x", md5.Sum(nil)), in.MD5Checksum)
}

func TestUploadFilePartSizeValidatedBeforeNetwork(t *testing.T) {
	path := writeTempFile(t, "blob.bin", []byte("data"))

	parts := 0
	env := newTestEnv(t, func(r mtclient.Request) error {
		if _, ok := r.(*mtclient.UploadSaveFilePart); ok {
			parts++
		}
		return answerConnect(r)
	})
	connect(t, env)

	_, err := env.client.UploadFile(path, &mtclient.UploadOptions{PartSize: 1000})
	assert.ErrorContains(t, err, "divisible by 1024")
	assert.Equal(t, 0, parts)
}

func TestUploadFileReadFailureIsAnError(t *testing.T) {
	parts := 0
	env := newTestEnv(t, func(r mtclient.Request) error {
		if part, ok := r.(*mtclient.UploadSaveFilePart); ok {
			parts++
			part.Result = true
			return nil
		}
		return answerConnect(r)
	})
	connect(t, env)

	// a directory opens fine but fails on the first read; that must surface
	// as an error, never as a successful zero-part upload
	in, err := env.client.UploadFile(t.TempDir(), nil)
	assert.Error(t, err)
	assert.Nil(t, in)
	assert.Equal(t, 0, parts)
}

func TestUploadFileFailedPartAcknowledgment(t *testing.T) {
	data := bytes.Repeat([]byte{0x01}, 3000)
	path := writeTempFile(t, "blob.bin", data)

	env := newTestEnv(t, func(r mtclient.Request) error {
		if part, ok := r.(*mtclient.UploadSaveFilePart); ok {
			part.Result = part.FilePart == 0
			return nil
		}
		return answerConnect(r)
	})
	connect(t, env)

	_, err := env.client.UploadFile(path, &mtclient.UploadOptions{PartSize: 1024})
	assert.ErrorContains(t, err, "part #1")
}
