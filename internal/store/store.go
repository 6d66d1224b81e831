// Package store holds the contact and quick reply collections the app works on.
package store

import (
	"quickreach/internal/models"

	"github.com/pkg/errors"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

type ContactStore interface {
	// BulkAdd stores every valid, not yet known number and returns how many were added.
	BulkAdd(candidates []string) (int, error)
	List() ([]models.Contact, error)
	Get(id uint) (models.Contact, error)
	MarkSent(id uint) error
}

type QuickReplyStore interface {
	Create(name, text string) (models.QuickReply, error)
	List() ([]models.QuickReply, error)
	Get(id uint) (models.QuickReply, error)
	Update(id uint, patch models.QuickReplyPatch) (models.QuickReply, error)
	// Delete is idempotent: an unknown id is not an error.
	Delete(id uint) error
}

// State is the process-wide application state handed to every handler.
type State struct {
	Contacts     ContactStore
	QuickReplies QuickReplyStore
}

func NewMemoryState() *State {
	return &State{
		Contacts:     NewMemoryContacts(),
		QuickReplies: NewMemoryQuickReplies(),
	}
}

// ValidateNew checks the fields of a quick reply about to be created.
func ValidateNew(name, text string) error {
	if name == "" || text == "" {
		return errors.Wrap(ErrValidation, "name and text are required")
	}
	return nil
}

// ValidatePatch rejects a patch that supplies nothing or blanks a field.
func ValidatePatch(patch models.QuickReplyPatch) error {
	if patch.Empty() {
		return errors.Wrap(ErrValidation, "name or text required")
	}
	if patch.Name != nil && *patch.Name == "" {
		return errors.Wrap(ErrValidation, "name cannot be empty")
	}
	if patch.Text != nil && *patch.Text == "" {
		return errors.Wrap(ErrValidation, "text cannot be empty")
	}
	return nil
}

// ApplyPatch copies the supplied fields of patch onto qr.
func ApplyPatch(qr *models.QuickReply, patch models.QuickReplyPatch) {
	if patch.Name != nil {
		qr.Name = *patch.Name
	}
	if patch.Text != nil {
		qr.Text = *patch.Text
	}
}
