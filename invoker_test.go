// Copyright (c) 2022 RoseLoverX

package mtclient_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roseloverx/mtclient"
)

func TestInvokeRejectsNilRequest(t *testing.T) {
	env := newTestEnv(t, answerConnect)
	connect(t, env)

	err := env.client.Invoke(nil)
	assert.ErrorContains(t, err, "only invoke requests")
}

func TestInvokeRequiresConnection(t *testing.T) {
	env := newTestEnv(t, answerConnect)

	err := env.client.Invoke(&mtclient.HelpGetConfig{})
	assert.ErrorContains(t, err, "not connected")
}

func TestInvokeRecordsResult(t *testing.T) {
	env := newTestEnv(t, answerConnect)
	connect(t, env)

	req := &mtclient.InvokeWithLayer{Layer: mtclient.ApiVersion, Query: &mtclient.HelpGetConfig{}}
	assert.NoError(t, env.client.Invoke(req))
	assert.Equal(t, testDCOptions, req.Result.DCOptions)
}

func TestInvokeSurfacesRemoteErrors(t *testing.T) {
	env := newTestEnv(t, func(r mtclient.Request) error {
		if _, ok := r.(*mtclient.UploadGetFile); ok {
			return mtclient.ParseRPCError(400, "LOCATION_INVALID")
		}
		return answerConnect(r)
	})
	connect(t, env)

	loc := &mtclient.InputFileLocationObj{VolumeID: 1, LocalID: 2, Secret: 3}
	err := env.client.Invoke(&mtclient.UploadGetFile{Location: loc, Limit: 1024})
	assert.ErrorContains(t, err, "LOCATION_INVALID")
}
