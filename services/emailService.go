package services

import (
	"fmt"
	"html"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ibam-church/membership/models"
	"github.com/resend/resend-go/v2"
)

type emailSender interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type EmailService struct {
	sender  emailSender
	from    string
	staffTo string
}

var emailService *EmailService

// InitEmailService initializes the staff mailer with Resend
func InitEmailService() {
	apiKey := os.Getenv("RESEND_API_KEY")
	if apiKey == "" {
		log.Println("WARNING: RESEND_API_KEY not set. Email service will not be available.")
		return
	}

	staffTo := os.Getenv("STAFF_NOTIFY_EMAIL")
	if staffTo == "" {
		log.Println("WARNING: STAFF_NOTIFY_EMAIL not set. Email service will not be available.")
		return
	}

	client := resend.NewClient(apiKey)
	emailService = &EmailService{
		sender:  client.Emails,
		from:    os.Getenv("RESEND_FROM_EMAIL"),
		staffTo: staffTo,
	}

	log.Println("Email service initialized successfully with Resend")
}

// GetEmailService returns the singleton email service instance, nil when
// email is not configured.
func GetEmailService() *EmailService {
	return emailService
}

func (s *EmailService) send(subject, htmlBody, textBody string) error {
	if s == nil || s.sender == nil {
		return fmt.Errorf("email service not initialized")
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{s.staffTo},
		Subject: subject,
		Html:    htmlBody,
		Text:    textBody,
	}

	sent, err := s.sender.Send(params)
	if err != nil {
		log.Printf("Failed to send %q to %s: %v", subject, s.staffTo, err)
		return fmt.Errorf("failed to send email: %v", err)
	}

	log.Printf("Successfully sent %q to %s. Email ID: %s", subject, s.staffTo, sent.Id)
	return nil
}

// SendRegistrationNotice tells the secretariat a new person registered.
func (s *EmailService) SendRegistrationNotice(p models.Person) error {
	subject := fmt.Sprintf("Novo cadastro: %s", p.Name)
	lines := registrationNoticeLines(p)
	return s.send(subject, htmlList("Novo cadastro recebido", lines), strings.Join(lines, "\n"))
}

// SendBirthdayDigest lists the people whose birthday is on day.
func (s *EmailService) SendBirthdayDigest(day time.Time, people []models.Person) error {
	subject := fmt.Sprintf("Aniversariantes de %02d/%02d", day.Day(), int(day.Month()))
	lines := birthdayDigestLines(day, people)
	return s.send(subject, htmlList(subject, lines), strings.Join(lines, "\n"))
}

func registrationNoticeLines(p models.Person) []string {
	lines := []string{
		"Nome: " + p.Name,
		"WhatsApp: " + p.Phone,
		"Zona: " + p.Zone,
		"Nascimento: " + p.Birth_Date.BR(),
	}
	if p.Wants_Visit {
		lines = append(lines, "Pediu visita: SIM")
	}
	if p.WantsBaptismConversation() {
		lines = append(lines, "Quer conversar sobre batismo: SIM")
	}
	if p.Wants_Ministry {
		lines = append(lines, "Quer servir em um ministério: SIM")
	}
	if p.Wants_Cell {
		lines = append(lines, "Quer entrar em uma célula: SIM")
	}
	return lines
}

func birthdayDigestLines(day time.Time, people []models.Person) []string {
	if len(people) == 0 {
		return []string{"Nenhum aniversariante hoje."}
	}
	lines := make([]string, 0, len(people))
	for _, p := range people {
		line := fmt.Sprintf("%s (%s) - %s", p.Name, p.Birth_Date.DayMonth(), p.Phone)
		if age := p.Birth_Date.AgeOn(day); age > 0 {
			line += fmt.Sprintf(" - %d anos", age)
		}
		lines = append(lines, line)
	}
	return lines
}

func htmlList(title string, lines []string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><body style=\"font-family: Arial, sans-serif; color: #333;\">")
	b.WriteString("<h2>" + html.EscapeString(title) + "</h2><ul>")
	for _, l := range lines {
		b.WriteString("<li>" + html.EscapeString(l) + "</li>")
	}
	b.WriteString("</ul></body></html>")
	return b.String()
}
