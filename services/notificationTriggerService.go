package services

import (
	"log"

	"github.com/ibam-church/membership/models"
)

// RegistrationPush builds the staff push for a registration, or reports
// false when the registrant asked for nothing that needs follow-up.
func RegistrationPush(p models.Person) (NotificationPayload, bool) {
	var body string
	switch {
	case p.Wants_Visit && p.WantsBaptismConversation():
		body = p.Name + " pediu uma visita e quer conversar sobre batismo"
	case p.Wants_Visit:
		body = p.Name + " pediu uma visita"
	case p.WantsBaptismConversation():
		body = p.Name + " quer conversar sobre batismo"
	default:
		return NotificationPayload{}, false
	}

	return NotificationPayload{
		Title: "Novo cadastro",
		Body:  body,
		Data: map[string]string{
			"type":     "NEW_REGISTRATION",
			"personId": p.ID,
			"zone":     p.Zone,
		},
	}, true
}

// NotifyStaffOfRegistration emails the secretariat and, for visit or
// baptism requests, pushes to staff devices. Meant to run in its own
// goroutine after the registration is stored.
func NotifyStaffOfRegistration(p models.Person) {
	if es := GetEmailService(); es != nil {
		if err := es.SendRegistrationNotice(p); err != nil {
			log.Printf("Failed to email registration notice for person %s: %v", p.ID, err)
		}
	}

	payload, ok := RegistrationPush(p)
	if !ok {
		return
	}
	if ps := GetPushNotificationService(); ps != nil {
		if err := ps.SendToStaff(payload); err != nil {
			log.Printf("Failed to push registration notice for person %s: %v", p.ID, err)
		}
	}
}
