// Copyright (c) 2022, amarnathcjd

package mtclient

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ExportContact writes the contact as a vCard 4.0 record to filePath, the
// only format phones commonly understand. No network interaction. Returns
// the path actually written.
func ExportContact(contact *MessageMediaContact, filePath string, addExtension bool) (string, error) {
	if addExtension {
		filePath += ".vcard"
	}

	if err := ensureParentDir(filePath); err != nil {
		return "", errors.Wrap(err, "creating parent directory")
	}

	formatted := contact.FirstName
	if contact.LastName != "" {
		formatted += " " + contact.LastName
	}

	var card strings.Builder
	card.WriteString("BEGIN:VCARD\n")
	card.WriteString("VERSION:4.0\n")
	card.WriteString("N:" + contact.FirstName + ";" + contact.LastName + ";;;\n")
	card.WriteString("FN:" + formatted + "\n")
	card.WriteString("TEL;TYPE=cell;VALUE=uri:tel:+" + contact.PhoneNumber + "\n")
	card.WriteString("END:VCARD\n")

	if err := os.WriteFile(filePath, []byte(card.String()), 0o644); err != nil {
		return "", errors.Wrap(err, "writing contact file")
	}
	return filePath, nil
}
