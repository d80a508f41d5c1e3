package forms

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/ibam-church/membership/models"
	"github.com/ibam-church/membership/services"
)

const (
	MsgSuccess        = "✅ Cadastro enviado com sucesso!"
	MsgGenericFailure = "Erro ao enviar. Tente novamente."
)

var (
	// ErrTransient means the intake endpoint could not be reached. Nothing
	// is retried; the registrant submits again.
	ErrTransient = errors.New("intake endpoint unreachable")
	// ErrRejected means the intake endpoint answered ok=false.
	ErrRejected = errors.New("registration rejected")
)

// Submitter delivers a payload to the intake endpoint. A non-nil error
// means no answer was received.
type Submitter interface {
	Submit(ctx context.Context, payload models.RegistrationPayload) (models.RegistrationResponse, error)
}

// Outcome is what the registrant sees after pressing submit.
type Outcome struct {
	OK      bool   `json:"ok"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message"`
	// Kind is the intake error kind when the endpoint rejected the payload.
	Kind string `json:"-"`
}

// Submit validates, sends and, on success, resets the questionnaire. On
// any failure the answers are kept so the registrant can fix and resend.
// Server diagnostic detail is never put in the outcome.
func (q *Questionnaire) Submit(ctx context.Context, s Submitter) (Outcome, error) {
	if verr := q.Validate(); verr != nil {
		return Outcome{Message: verr.Message}, verr
	}

	resp, err := s.Submit(ctx, q.Submission())
	if err != nil {
		log.Printf("Registration submit failed: %v", err)
		return Outcome{Message: MsgGenericFailure}, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	if !resp.OK {
		// only validation rejections carry a message meant for the registrant
		msg := MsgGenericFailure
		if resp.Kind == string(services.ValidationError) && resp.Error != "" {
			msg = resp.Error
		}
		return Outcome{Message: msg, Kind: resp.Kind}, fmt.Errorf("%w: %s", ErrRejected, resp.Code)
	}

	q.Reset()
	return Outcome{OK: true, ID: resp.ID, Message: MsgSuccess}, nil
}

// InProcessSubmitter hands the payload straight to the registration
// service. OnRegistered, when set, runs after a successful write.
type InProcessSubmitter struct {
	Service      *services.RegistrationService
	OnRegistered func(models.Person)
}

func (s InProcessSubmitter) Submit(ctx context.Context, payload models.RegistrationPayload) (models.RegistrationResponse, error) {
	person, ierr := s.Service.Register(ctx, payload)
	if ierr != nil {
		return ierr.Response(), nil
	}
	if s.OnRegistered != nil {
		s.OnRegistered(person)
	}
	return models.RegistrationResponse{OK: true, ID: person.ID}, nil
}

// HTTPSubmitter posts the payload to a remote intake endpoint.
type HTTPSubmitter struct {
	client   *resty.Client
	endpoint string
}

func NewHTTPSubmitter(endpoint string) *HTTPSubmitter {
	client := resty.New().
		SetTimeout(30*time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &HTTPSubmitter{client: client, endpoint: endpoint}
}

func (h *HTTPSubmitter) Submit(ctx context.Context, payload models.RegistrationPayload) (models.RegistrationResponse, error) {
	var out models.RegistrationResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&out).
		SetError(&out).
		Post(h.endpoint)
	if err != nil {
		return models.RegistrationResponse{}, fmt.Errorf("failed to call intake endpoint: %w", err)
	}

	// A 2xx without ok, or an error status without a JSON body, is not an
	// answer from the intake service.
	if resp.IsSuccess() && !out.OK {
		return models.RegistrationResponse{}, fmt.Errorf("unexpected intake response (status %d)", resp.StatusCode())
	}
	if resp.IsError() && out.Error == "" {
		return models.RegistrationResponse{}, fmt.Errorf("intake endpoint returned status %d", resp.StatusCode())
	}
	if resp.StatusCode() >= http.StatusInternalServerError {
		out.Kind = string(services.PersistenceError)
	}
	return out, nil
}
