package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ibam-church/membership/forms"
	"github.com/ibam-church/membership/initializers"
	"github.com/ibam-church/membership/models"
	"github.com/ibam-church/membership/services"
)

func registrationService() *services.RegistrationService {
	return services.NewRegistrationService(services.NewRegistrationStore(initializers.DB))
}

func notifyStaff(p models.Person) {
	go services.NotifyStaffOfRegistration(p)
}

// PublicRegister is the intake endpoint. It trusts nothing the client
// checked and answers {ok, id} or {ok:false, error, detail, kind, code}.
func PublicRegister(c *gin.Context) {
	var payload models.RegistrationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, models.RegistrationResponse{
			OK:     false,
			Error:  "JSON inválido",
			Detail: err.Error(),
			Kind:   string(services.ValidationError),
			Code:   "invalid_json",
		})
		return
	}

	person, ierr := registrationService().Register(c.Request.Context(), payload)
	if ierr != nil {
		status := http.StatusBadRequest
		if ierr.Kind == services.PersistenceError {
			status = http.StatusInternalServerError
		}
		c.JSON(status, ierr.Response())
		return
	}

	log.Printf("Registered person %s", person.ID)
	notifyStaff(person)

	c.JSON(http.StatusOK, models.RegistrationResponse{OK: true, ID: person.ID})
}

// Register takes the raw questionnaire answers, replays them through the
// questionnaire and submits in process. Only registrant-facing messages
// are returned.
func Register(c *gin.Context) {
	var answers forms.Answers
	if err := c.ShouldBindJSON(&answers); err != nil {
		c.JSON(http.StatusBadRequest, forms.Outcome{Message: forms.MsgGenericFailure})
		return
	}

	q := forms.FromAnswers(answers)
	submitter := forms.InProcessSubmitter{
		Service:      registrationService(),
		OnRegistered: notifyStaff,
	}

	out, err := q.Submit(c.Request.Context(), submitter)
	if err == nil {
		c.JSON(http.StatusOK, out)
		return
	}

	var verr *forms.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, out)
	case errors.Is(err, forms.ErrRejected) && out.Kind == string(services.ValidationError):
		c.JSON(http.StatusBadRequest, out)
	default:
		c.JSON(http.StatusInternalServerError, out)
	}
}

func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"ok": false, "error": "Method not allowed"})
}
