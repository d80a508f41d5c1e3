package services

import (
	"fmt"
	"net/url"
	"strings"
)

const churchName = "Igreja Batista do Amor"

type OutreachKind string

const (
	OutreachBirthday OutreachKind = "birthday"
	OutreachVisit    OutreachKind = "visit"
	OutreachBaptism  OutreachKind = "baptism"
)

// OutreachMessage returns the text staff send to a registrant.
func OutreachMessage(kind OutreachKind, name string) (string, error) {
	switch kind {
	case OutreachBirthday:
		return fmt.Sprintf("🎉 Feliz aniversário, %s! 🎉\n\nA %s agradece a Deus pela sua vida. "+
			"Que o Senhor te conceda um novo ciclo cheio de saúde, alegria, propósito e presença dEle.\n\n"+
			"Conte com a gente. 🙏✨", name, churchName), nil
	case OutreachVisit:
		return fmt.Sprintf("Olá, %s! Paz do Senhor! 🙏\n\nAqui é da %s. "+
			"Vimos que você tem interesse em receber uma visita pastoral.\n"+
			"Qual melhor dia e horário para você? 😊", name, churchName), nil
	case OutreachBaptism:
		return fmt.Sprintf("Olá, %s! Paz do Senhor! 🙏\n\nAqui é da %s. "+
			"Vimos que você tem interesse em conversar sobre o batismo.\n"+
			"Podemos marcar um momento pra te explicar direitinho e tirar dúvidas? 😊", name, churchName), nil
	}
	return "", fmt.Errorf("unknown outreach kind %q", kind)
}

// WhatsAppLink builds a wa.me link for a Brazilian number with the text prefilled.
func WhatsAppLink(phone, text string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return "https://wa.me/55" + DigitsOnly(phone) + "?text=" + escaped
}
