package database

import (
	"fmt"
	"sync"

	"quickreach/internal/models"
	"quickreach/internal/numbers"
	"quickreach/internal/store"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to a private in-memory SQLite database and migrates the
// contact and quick reply tables. Nothing is written to disk.
func Open(log *zap.SugaredLogger) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:quickreach-%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open in-memory sqlite")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sql handle")
	}
	// the database lives as long as one connection to it stays open
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := db.AutoMigrate(&models.Contact{}, &models.QuickReply{}); err != nil {
		return nil, errors.Wrap(err, "failed to run auto-migration")
	}

	log.Infow("in-memory sqlite store ready", "dsn", dsn)
	return db, nil
}

// NewState opens a fresh database and returns stores backed by it.
func NewState(log *zap.SugaredLogger) (*store.State, error) {
	db, err := Open(log)
	if err != nil {
		return nil, err
	}
	return &store.State{
		Contacts:     NewContacts(db),
		QuickReplies: NewQuickReplies(db),
	}, nil
}

type Contacts struct {
	mu     sync.Mutex
	db     *gorm.DB
	lastID uint
}

func NewContacts(db *gorm.DB) *Contacts {
	return &Contacts{db: db}
}

func (s *Contacts) BulkAdd(candidates []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, number := range candidates {
			if !numbers.Valid(number) {
				continue
			}

			var count int64
			if err := tx.Model(&models.Contact{}).Where("number = ?", number).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}

			contact := models.Contact{ID: s.lastID + uint(added) + 1, Number: number, Status: models.StatusNew}
			if err := tx.Create(&contact).Error; err != nil {
				return err
			}
			added++
		}
		return nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to import contacts")
	}

	s.lastID += uint(added)
	return added, nil
}

func (s *Contacts) List() ([]models.Contact, error) {
	var contacts []models.Contact
	if err := s.db.Order("id ASC").Find(&contacts).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list contacts")
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}
	return contacts, nil
}

func (s *Contacts) Get(id uint) (models.Contact, error) {
	var contact models.Contact
	err := s.db.First(&contact, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Contact{}, errors.Wrapf(store.ErrNotFound, "contact %d", id)
	}
	if err != nil {
		return models.Contact{}, errors.Wrapf(err, "failed to load contact %d", id)
	}
	return contact, nil
}

func (s *Contacts) MarkSent(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := s.db.Model(&models.Contact{}).Where("id = ?", id).Update("status", models.StatusMessageSent)
	if result.Error != nil {
		return errors.Wrapf(result.Error, "failed to update contact %d", id)
	}
	if result.RowsAffected == 0 {
		return errors.Wrapf(store.ErrNotFound, "contact %d", id)
	}
	return nil
}

type QuickReplies struct {
	mu     sync.Mutex
	db     *gorm.DB
	lastID uint
}

func NewQuickReplies(db *gorm.DB) *QuickReplies {
	return &QuickReplies{db: db}
}

func (s *QuickReplies) Create(name, text string) (models.QuickReply, error) {
	if err := store.ValidateNew(name, text); err != nil {
		return models.QuickReply{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	qr := models.QuickReply{ID: s.lastID + 1, Name: name, Text: text}
	if err := s.db.Create(&qr).Error; err != nil {
		return models.QuickReply{}, errors.Wrap(err, "failed to create quick reply")
	}
	s.lastID = qr.ID
	return qr, nil
}

func (s *QuickReplies) List() ([]models.QuickReply, error) {
	var replies []models.QuickReply
	if err := s.db.Order("id ASC").Find(&replies).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list quick replies")
	}
	if replies == nil {
		replies = []models.QuickReply{}
	}
	return replies, nil
}

func (s *QuickReplies) Get(id uint) (models.QuickReply, error) {
	var qr models.QuickReply
	err := s.db.First(&qr, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.QuickReply{}, errors.Wrapf(store.ErrNotFound, "quick reply %d", id)
	}
	if err != nil {
		return models.QuickReply{}, errors.Wrapf(err, "failed to load quick reply %d", id)
	}
	return qr, nil
}

func (s *QuickReplies) Update(id uint, patch models.QuickReplyPatch) (models.QuickReply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	qr, err := s.Get(id)
	if err != nil {
		return models.QuickReply{}, err
	}
	if err := store.ValidatePatch(patch); err != nil {
		return models.QuickReply{}, err
	}

	store.ApplyPatch(&qr, patch)
	if err := s.db.Save(&qr).Error; err != nil {
		return models.QuickReply{}, errors.Wrapf(err, "failed to update quick reply %d", id)
	}
	return qr, nil
}

func (s *QuickReplies) Delete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Delete(&models.QuickReply{}, id).Error; err != nil {
		return errors.Wrapf(err, "failed to delete quick reply %d", id)
	}
	return nil
}
