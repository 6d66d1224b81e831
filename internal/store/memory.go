package store

import (
	"sync"

	"quickreach/internal/models"
	"quickreach/internal/numbers"

	"github.com/pkg/errors"
)

type MemoryContacts struct {
	mu       sync.Mutex
	lastID   uint
	contacts []models.Contact
}

func NewMemoryContacts() *MemoryContacts {
	return &MemoryContacts{}
}

func (s *MemoryContacts) BulkAdd(candidates []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, number := range candidates {
		if !numbers.Valid(number) || s.indexOfNumber(number) >= 0 {
			continue
		}
		s.lastID++
		s.contacts = append(s.contacts, models.Contact{ID: s.lastID, Number: number, Status: models.StatusNew})
		added++
	}
	return added, nil
}

func (s *MemoryContacts) List() ([]models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Contact, len(s.contacts))
	copy(out, s.contacts)
	return out, nil
}

func (s *MemoryContacts) Get(id uint) (models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfID(id)
	if i < 0 {
		return models.Contact{}, errors.Wrapf(ErrNotFound, "contact %d", id)
	}
	return s.contacts[i], nil
}

func (s *MemoryContacts) MarkSent(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfID(id)
	if i < 0 {
		return errors.Wrapf(ErrNotFound, "contact %d", id)
	}
	s.contacts[i].Status = models.StatusMessageSent
	return nil
}

func (s *MemoryContacts) indexOfID(id uint) int {
	for i := range s.contacts {
		if s.contacts[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *MemoryContacts) indexOfNumber(number string) int {
	for i := range s.contacts {
		if s.contacts[i].Number == number {
			return i
		}
	}
	return -1
}

type MemoryQuickReplies struct {
	mu      sync.Mutex
	lastID  uint
	replies []models.QuickReply
}

func NewMemoryQuickReplies() *MemoryQuickReplies {
	return &MemoryQuickReplies{}
}

func (s *MemoryQuickReplies) Create(name, text string) (models.QuickReply, error) {
	if err := ValidateNew(name, text); err != nil {
		return models.QuickReply{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	qr := models.QuickReply{ID: s.lastID, Name: name, Text: text}
	s.replies = append(s.replies, qr)
	return qr, nil
}

func (s *MemoryQuickReplies) List() ([]models.QuickReply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.QuickReply, len(s.replies))
	copy(out, s.replies)
	return out, nil
}

func (s *MemoryQuickReplies) Get(id uint) (models.QuickReply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.QuickReply{}, errors.Wrapf(ErrNotFound, "quick reply %d", id)
	}
	return s.replies[i], nil
}

func (s *MemoryQuickReplies) Update(id uint, patch models.QuickReplyPatch) (models.QuickReply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.QuickReply{}, errors.Wrapf(ErrNotFound, "quick reply %d", id)
	}
	if err := ValidatePatch(patch); err != nil {
		return models.QuickReply{}, err
	}

	ApplyPatch(&s.replies[i], patch)
	return s.replies[i], nil
}

func (s *MemoryQuickReplies) Delete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		s.replies = append(s.replies[:i], s.replies[i+1:]...)
	}
	return nil
}

func (s *MemoryQuickReplies) indexOf(id uint) int {
	for i := range s.replies {
		if s.replies[i].ID == id {
			return i
		}
	}
	return -1
}
