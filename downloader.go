// Copyright (c) 2022, amarnathcjd

package mtclient

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// DownloadFile pulls the remote file at location into filePath in ordered,
// fixed-size chunks. The transfer ends on the first zero-byte response;
// there is no total-size check, the server's end-of-data signal is trusted.
// The terminating response's declared type is returned as an informational
// hint.
func (c *Client) DownloadFile(location InputFileLocation, filePath string, partSize int32) (string, error) {
	if partSize == 0 {
		partSize = DefaultPartSize
	}
	if partSize <= 0 || partSize%1024 != 0 {
		return "", errors.New("the part size must be evenly divisible by 1024")
	}

	if err := ensureParentDir(filePath); err != nil {
		return "", errors.Wrap(err, "creating parent directory")
	}
	file, err := os.Create(filePath)
	if err != nil {
		return "", errors.Wrap(err, "creating file")
	}
	defer file.Close()

	for offsetIndex := int64(0); ; offsetIndex++ {
		request := &UploadGetFile{
			Location: location,
			Offset:   offsetIndex * int64(partSize),
			Limit:    partSize,
		}
		if err := c.Invoke(request); err != nil {
			return "", errors.Wrapf(err, "fetching chunk at offset %d", request.Offset)
		}
		if request.Result == nil {
			return "", errors.New("chunk fetch returned no result")
		}

		// zero bytes received means the file is over
		if len(request.Result.Bytes) == 0 {
			return request.Result.Type, nil
		}

		if _, err := file.Write(request.Result.Bytes); err != nil {
			return "", errors.Wrap(err, "writing file")
		}
	}
}

// DownloadPhoto downloads the photo's largest size variant into filePath.
// Photos are always compressed into a .jpg by the service, so that is the
// extension appended when addExtension is set.
func (c *Client) DownloadPhoto(media *MessageMediaPhoto, filePath string, addExtension bool) (string, error) {
	if media.Photo == nil || len(media.Photo.Sizes) == 0 {
		return "", errors.New("photo has no size variants")
	}
	largest := media.Photo.Sizes[len(media.Photo.Sizes)-1]
	if largest.Location == nil {
		return "", errors.New("photo size has no file location")
	}

	if addExtension {
		filePath += ".jpg"
	}

	_, err := c.DownloadFile(&InputFileLocationObj{
		VolumeID: largest.Location.VolumeID,
		LocalID:  largest.Location.LocalID,
		Secret:   largest.Location.Secret,
	}, filePath, 0)
	if err != nil {
		return "", err
	}
	return filePath, nil
}

// DownloadDocument downloads the document into filePath. When filePath is
// empty a name is resolved from the document's attributes: an explicit
// filename attribute takes precedence, else a performer/title pair makes one
// up. When addExtension is set and the declared mime type is known, the
// matching extension is appended.
func (c *Client) DownloadDocument(media *MessageMediaDocument, filePath string, addExtension bool) (string, error) {
	document := media.Document
	if document == nil {
		return "", errors.New("media carries no document")
	}

	if filePath == "" {
		filePath = documentFileName(document)
		if filePath == "" {
			c.Log.Warn("could not determine a filename for the document")
			return "", errors.New("no file path given and none could be determined")
		}
	}

	if addExtension {
		if ext := mimeTypes.Ext(document.MimeType); ext != "" {
			filePath += ext
		}
	}

	_, err := c.DownloadFile(&InputDocumentFileLocation{
		ID:         document.ID,
		AccessHash: document.AccessHash,
		Version:    document.Version,
	}, filePath, 0)
	if err != nil {
		return "", err
	}
	return filePath, nil
}

func documentFileName(document *Document) string {
	var name string
	for _, attr := range document.Attributes {
		switch a := attr.(type) {
		case *DocumentAttributeFilename:
			// this attribute has higher preference
			return a.FileName
		case *DocumentAttributeAudio:
			name = fmt.Sprintf("%s - %s", a.Performer, a.Title)
		}
	}
	return name
}

// DownloadMedia downloads any message media (photo, document or contact)
// into filePath, optionally finding its extension automatically.
func (c *Client) DownloadMedia(media MessageMedia, filePath string, addExtension bool) (string, error) {
	switch m := media.(type) {
	case *MessageMediaPhoto:
		return c.DownloadPhoto(m, filePath, addExtension)
	case *MessageMediaDocument:
		return c.DownloadDocument(m, filePath, addExtension)
	case *MessageMediaContact:
		return ExportContact(m, filePath, addExtension)
	default:
		return "", errors.Errorf("unsupported media kind %T", media)
	}
}
