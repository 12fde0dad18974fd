// Copyright (c) 2022, amarnathcjd

package mtclient

import (
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// UploadOptions tunes one upload.
type UploadOptions struct {
	// PartSize in bytes; must be a whole multiple of 1024. Default 64 KB.
	PartSize int32
	// FileName overrides the name derived from the source path's base name.
	FileName string
}

// UploadFile uploads the file at filePath to the service in ordered,
// fixed-size parts and returns the handle referencing the fully uploaded
// file. The file id is derived from the current time at microsecond
// resolution; rapid concurrent uploads from one account can in principle
// collide.
func (c *Client) UploadFile(filePath string, opts *UploadOptions) (*InputFile, error) {
	if opts == nil {
		opts = &UploadOptions{}
	}
	partSize := opts.PartSize
	if partSize == 0 {
		partSize = DefaultPartSize
	}
	if partSize <= 0 || partSize%1024 != 0 {
		return nil, errors.New("the part size must be evenly divisible by 1024")
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer file.Close()

	var (
		fileID    = time.Now().UnixMicro()
		partIndex = int32(0)
		hasher    = md5.New()
		buffer    = make([]byte, partSize)
	)

	for {
		n, err := io.ReadFull(file, buffer)
		if err == io.EOF {
			// zero bytes read is the normal end-of-file signal
			break
		}
		if err != nil && err != io.ErrUnexpectedEOF {
			return nil, errors.Wrap(err, "reading file")
		}

		part := make([]byte, n)
		copy(part, buffer[:n])

		request := &UploadSaveFilePart{
			FileID:   fileID,
			FilePart: partIndex,
			Bytes:    part,
		}
		if invokeErr := c.Invoke(request); invokeErr != nil {
			return nil, errors.Wrapf(invokeErr, "uploading file part #%d", partIndex)
		}
		if !request.Result {
			return nil, errors.Errorf("could not upload file part #%d", partIndex)
		}

		hasher.Write(part)
		partIndex++

		if err == io.ErrUnexpectedEOF {
			break
		}
	}

	fileName := opts.FileName
	if fileName == "" {
		fileName = filepath.Base(filePath)
	}

	c.Log.Debugf("uploaded %s in %d parts of %d bytes", fileName, partIndex, partSize)

	return &InputFile{
		ID:          fileID,
		Parts:       partIndex,
		Name:        fileName,
		MD5Checksum: fmt.Sprintf("%x", hasher.Sum(nil)),
	}, nil
}
