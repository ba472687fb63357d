//go:build unit
// +build unit

package news

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewsletterNormalizeLanguages(t *testing.T) {
	n := &Newsletter{
		Slug:      "mozilla-and-you",
		VendorID:  "MOZILLA_AND_YOU",
		Languages: []string{"en-US", " fr", " de ", ""},
	}

	n.NormalizeLanguages()

	assert.Equal(t, []string{"en-US", "fr", "de"}, n.Languages)
}

func TestNewsletterValidate(t *testing.T) {
	n := &Newsletter{
		ID:       uuid.New().String(),
		Slug:     "mozilla-and-you",
		Title:    "Firefox & You",
		VendorID: "MOZILLA_AND_YOU",
	}
	assert.NoError(t, n.Validate())

	missingVendor := &Newsletter{
		ID:   uuid.New().String(),
		Slug: "mozilla-and-you",
	}
	assert.Error(t, missingVendor.Validate())
}

func TestSubscriberNewsletterMembership(t *testing.T) {
	s := &Subscriber{Newsletters: []string{"mozilla-and-you"}}

	assert.True(t, s.Subscribed("mozilla-and-you"))
	assert.False(t, s.Subscribed("firefox-os"))

	s.AddNewsletters([]string{"firefox-os", "mozilla-and-you"})
	assert.Equal(t, []string{"mozilla-and-you", "firefox-os"}, s.Newsletters)

	s.RemoveNewsletters([]string{"mozilla-and-you"})
	assert.Equal(t, []string{"firefox-os"}, s.Newsletters)
}

func TestSubscriberValidate(t *testing.T) {
	s := &Subscriber{
		ID:    uuid.New().String(),
		Email: "dude@example.com",
		Token: uuid.New().String(),
	}
	assert.NoError(t, s.Validate())

	badEmail := &Subscriber{
		ID:    uuid.New().String(),
		Email: "not_an_email",
		Token: uuid.New().String(),
	}
	assert.Error(t, badEmail.Validate())
}
