package services

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutreachMessage(t *testing.T) {
	for _, kind := range []OutreachKind{OutreachBirthday, OutreachVisit, OutreachBaptism} {
		msg, err := OutreachMessage(kind, "Ana")
		require.NoError(t, err)
		assert.Contains(t, msg, "Ana")
		assert.Contains(t, msg, churchName)
	}

	msg, _ := OutreachMessage(OutreachBaptism, "Ana")
	assert.Contains(t, msg, "batismo")

	_, err := OutreachMessage("tithe", "Ana")
	assert.Error(t, err)
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("(69) 99123-4567", "Olá, Ana! Tudo bem?")
	assert.True(t, strings.HasPrefix(link, "https://wa.me/5569991234567?text="))
	assert.NotContains(t, link, "+")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "Olá, Ana! Tudo bem?", u.Query().Get("text"))
}
