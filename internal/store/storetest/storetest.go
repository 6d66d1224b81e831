// Package storetest runs the same behavioural checks against every store backend.
package storetest

import (
	"fmt"
	"sync"
	"testing"

	"quickreach/internal/models"
	"quickreach/internal/store"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestContactStore(t *testing.T, newStore func(t *testing.T) store.ContactStore) {
	t.Run("BulkAddCountsDistinctValidNumbers", func(t *testing.T) {
		s := newStore(t)

		added, err := s.BulkAdd([]string{"9876543210", "1234", "9876543210", "1234567890", "12345678901"})
		require.NoError(t, err)
		assert.Equal(t, 2, added)

		contacts, err := s.List()
		require.NoError(t, err)
		require.Len(t, contacts, 2)
		assert.Equal(t, models.Contact{ID: 1, Number: "9876543210", Status: models.StatusNew}, contacts[0])
		assert.Equal(t, models.Contact{ID: 2, Number: "1234567890", Status: models.StatusNew}, contacts[1])
	})

	t.Run("ReimportAddsNothing", func(t *testing.T) {
		s := newStore(t)

		_, err := s.BulkAdd([]string{"9876543210"})
		require.NoError(t, err)

		added, err := s.BulkAdd([]string{"9876543210"})
		require.NoError(t, err)
		assert.Equal(t, 0, added)

		contacts, err := s.List()
		require.NoError(t, err)
		assert.Len(t, contacts, 1)
	})

	t.Run("RejectsNonDigitCandidates", func(t *testing.T) {
		s := newStore(t)

		added, err := s.BulkAdd([]string{"98765abc10", ""})
		require.NoError(t, err)
		assert.Equal(t, 0, added)
	})

	t.Run("GetAndMarkSent", func(t *testing.T) {
		s := newStore(t)
		_, err := s.BulkAdd([]string{"9024343890"})
		require.NoError(t, err)

		require.NoError(t, s.MarkSent(1))
		c, err := s.Get(1)
		require.NoError(t, err)
		assert.Equal(t, models.StatusMessageSent, c.Status)

		require.NoError(t, s.MarkSent(1))
		c, err = s.Get(1)
		require.NoError(t, err)
		assert.Equal(t, models.StatusMessageSent, c.Status)
	})

	t.Run("UnknownIDIsNotFound", func(t *testing.T) {
		s := newStore(t)

		_, err := s.Get(999)
		assert.True(t, errors.Is(err, store.ErrNotFound))
		assert.True(t, errors.Is(s.MarkSent(999), store.ErrNotFound))
	})

	t.Run("ConcurrentImportsAssignUniqueIDs", func(t *testing.T) {
		s := newStore(t)

		var wg sync.WaitGroup
		for w := 0; w < 8; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				batch := make([]string, 0, 10)
				for i := 0; i < 10; i++ {
					// every worker imports the same overlapping range
					batch = append(batch, fmt.Sprintf("90000000%02d", (w+i)%20))
				}
				_, err := s.BulkAdd(batch)
				assert.NoError(t, err)
			}(w)
		}
		wg.Wait()

		contacts, err := s.List()
		require.NoError(t, err)

		ids := map[uint]bool{}
		nums := map[string]bool{}
		for _, c := range contacts {
			assert.False(t, ids[c.ID], "duplicate id %d", c.ID)
			assert.False(t, nums[c.Number], "duplicate number %s", c.Number)
			ids[c.ID] = true
			nums[c.Number] = true
		}
		assert.Len(t, contacts, 17)
	})
}

func TestQuickReplyStore(t *testing.T, newStore func(t *testing.T) store.QuickReplyStore) {
	t.Run("CreateAssignsIDs", func(t *testing.T) {
		s := newStore(t)

		first, err := s.Create("Hi", "Hello")
		require.NoError(t, err)
		second, err := s.Create("Bye", "Goodbye 🙏\nनमस्ते")
		require.NoError(t, err)

		assert.Equal(t, models.QuickReply{ID: 1, Name: "Hi", Text: "Hello"}, first)
		assert.Equal(t, uint(2), second.ID)

		got, err := s.Get(2)
		require.NoError(t, err)
		assert.Equal(t, "Goodbye 🙏\nनमस्ते", got.Text)
	})

	t.Run("CreateRequiresNameAndText", func(t *testing.T) {
		s := newStore(t)

		_, err := s.Create("", "Hello")
		assert.True(t, errors.Is(err, store.ErrValidation))
		_, err = s.Create("Hi", "")
		assert.True(t, errors.Is(err, store.ErrValidation))

		all, err := s.List()
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("UpdateIsPartial", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Create("Hi", "Hello")
		require.NoError(t, err)

		qr, err := s.Update(1, models.QuickReplyPatch{Name: strPtr("Greeting")})
		require.NoError(t, err)
		assert.Equal(t, models.QuickReply{ID: 1, Name: "Greeting", Text: "Hello"}, qr)

		qr, err = s.Update(1, models.QuickReplyPatch{Text: strPtr("Namaste")})
		require.NoError(t, err)
		assert.Equal(t, models.QuickReply{ID: 1, Name: "Greeting", Text: "Namaste"}, qr)

		got, err := s.Get(1)
		require.NoError(t, err)
		assert.Equal(t, qr, got)
	})

	t.Run("UpdateRejectsEmptyPatch", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Create("Hi", "Hello")
		require.NoError(t, err)

		_, err = s.Update(1, models.QuickReplyPatch{})
		assert.True(t, errors.Is(err, store.ErrValidation))

		_, err = s.Update(1, models.QuickReplyPatch{Name: strPtr("")})
		assert.True(t, errors.Is(err, store.ErrValidation))
	})

	t.Run("UpdateUnknownIDIsNotFound", func(t *testing.T) {
		s := newStore(t)

		_, err := s.Update(42, models.QuickReplyPatch{})
		assert.True(t, errors.Is(err, store.ErrNotFound))
	})

	t.Run("DeleteIsIdempotentAndIDsAreNotReused", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Create("a", "a")
		require.NoError(t, err)
		_, err = s.Create("b", "b")
		require.NoError(t, err)

		require.NoError(t, s.Delete(2))
		require.NoError(t, s.Delete(2))
		require.NoError(t, s.Delete(999))

		_, err = s.Get(2)
		assert.True(t, errors.Is(err, store.ErrNotFound))

		qr, err := s.Create("c", "c")
		require.NoError(t, err)
		assert.Equal(t, uint(3), qr.ID)

		all, err := s.List()
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "a", all[0].Name)
		assert.Equal(t, "c", all[1].Name)
	})
}
