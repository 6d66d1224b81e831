// Package whatsapp builds click-to-chat deep links for stored contacts.
package whatsapp

import (
	"net/url"
	"strings"

	"quickreach/internal/config"
	"quickreach/internal/models"
	"quickreach/internal/store"

	"github.com/pkg/errors"
)

// PhonePlaceholder in a greeting is replaced by the full phone number.
const PhonePlaceholder = "{phone}"

// Builder turns a number and a message into a deep link of the form
// <scheme>://send/?phone=<country code><number>&text=<escaped message>.
type Builder struct {
	Scheme      string
	CountryCode string
	Greeting    string
}

func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{
		Scheme:      cfg.LinkScheme,
		CountryCode: cfg.CountryCode,
		Greeting:    cfg.LinkGreeting,
	}
}

func (b *Builder) Phone(number string) string {
	return b.CountryCode + number
}

// Message is the text the recipient will see, greeting included.
func (b *Builder) Message(number, text string) string {
	if b.Greeting == "" {
		return text
	}
	return strings.ReplaceAll(b.Greeting, PhonePlaceholder, b.Phone(number)) + text
}

func (b *Builder) Build(number, text string) string {
	return b.Scheme + "://send/?phone=" + Escape(b.Phone(number)) + "&text=" + Escape(b.Message(number, text))
}

// Escape percent-encodes every byte of s outside the RFC 3986 unreserved set.
func Escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Linker resolves ids against the stores and produces send links.
type Linker struct {
	Builder      *Builder
	Contacts     store.ContactStore
	QuickReplies store.QuickReplyStore
}

func NewLinker(builder *Builder, state *store.State) *Linker {
	return &Linker{
		Builder:      builder,
		Contacts:     state.Contacts,
		QuickReplies: state.QuickReplies,
	}
}

// BuildSendLink marks the contact as messaged and returns the link for it.
// Nothing changes when either id is unknown.
func (l *Linker) BuildSendLink(contactID, quickReplyID uint) (string, models.Contact, error) {
	contact, err := l.Contacts.Get(contactID)
	if err != nil {
		return "", models.Contact{}, err
	}
	qr, err := l.QuickReplies.Get(quickReplyID)
	if err != nil {
		return "", models.Contact{}, err
	}

	if err := l.Contacts.MarkSent(contact.ID); err != nil {
		return "", models.Contact{}, errors.Wrap(err, "failed to update contact status")
	}
	contact.Status = models.StatusMessageSent

	return l.Builder.Build(contact.Number, qr.Text), contact, nil
}
