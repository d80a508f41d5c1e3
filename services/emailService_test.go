package services

import (
	"errors"
	"testing"
	"time"

	"github.com/ibam-church/membership/models"
	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	sent []*resend.SendEmailRequest
	err  error
}

func (r *recordingSender) Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.sent = append(r.sent, params)
	return &resend.SendEmailResponse{Id: "email-1"}, nil
}

func TestSendRegistrationNotice(t *testing.T) {
	sender := &recordingSender{}
	svc := &EmailService{sender: sender, from: "cadastro@igreja.org", staffTo: "secretaria@igreja.org"}

	err := svc.SendRegistrationNotice(models.Person{
		Name: "Carla <Souza>", Phone: "69991234567", Zone: "Centro", Birth_Date: "2000-12-01",
		Baptism_Contact: boolPtr(true), Wants_Visit: true,
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, []string{"secretaria@igreja.org"}, msg.To)
	assert.Equal(t, "Novo cadastro: Carla <Souza>", msg.Subject)
	assert.Contains(t, msg.Text, "Nascimento: 01/12/2000")
	assert.Contains(t, msg.Text, "Pediu visita: SIM")
	assert.Contains(t, msg.Text, "Quer conversar sobre batismo: SIM")
	assert.NotContains(t, msg.Text, "ministério")
	assert.Contains(t, msg.Html, "Carla &lt;Souza&gt;")
}

func TestSendBirthdayDigest(t *testing.T) {
	sender := &recordingSender{}
	svc := &EmailService{sender: sender, staffTo: "secretaria@igreja.org"}
	day := time.Date(2026, time.May, 20, 8, 0, 0, 0, time.UTC)

	require.NoError(t, svc.SendBirthdayDigest(day, []models.Person{{Name: "Ana", Phone: "69991234567", Birth_Date: "1990-05-20"}}))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Aniversariantes de 20/05", sender.sent[0].Subject)
	assert.Equal(t, "Ana (20/05) - 69991234567 - 36 anos", sender.sent[0].Text)
}

func TestEmailServiceErrors(t *testing.T) {
	var nilService *EmailService
	assert.Error(t, nilService.SendRegistrationNotice(models.Person{}))

	svc := &EmailService{sender: &recordingSender{err: errors.New("rate limited")}}
	assert.Error(t, svc.SendBirthdayDigest(time.Now(), nil))
}
