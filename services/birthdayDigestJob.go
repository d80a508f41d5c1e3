package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ibam-church/membership/models"
	"github.com/robfig/cron/v3"
)

const DefaultBirthdayDigestSchedule = "0 8 * * *"

type digestSender func(day time.Time, people []models.Person) error

// BirthdayDigestJob mails the staff the list of the day's birthdays.
type BirthdayDigestJob struct {
	cache *DirectoryCache
	send  digestSender
	now   func() time.Time
}

func NewBirthdayDigestJob(cache *DirectoryCache, email *EmailService) *BirthdayDigestJob {
	return &BirthdayDigestJob{
		cache: cache,
		send:  email.SendBirthdayDigest,
		now:   time.Now,
	}
}

// Run refreshes the directory so the digest sees registrations made since
// the last admin visit, then sends the digest. Days without birthdays are
// skipped.
func (j *BirthdayDigestJob) Run() {
	if err := j.run(context.Background()); err != nil {
		log.Printf("Birthday digest failed: %v", err)
	}
}

func (j *BirthdayDigestJob) run(ctx context.Context) error {
	m, err := j.cache.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh directory: %w", err)
	}

	today := j.now()
	people := m.BirthdaysOn(today)
	if len(people) == 0 {
		log.Printf("No birthdays on %s, digest skipped", today.Format(models.DateLayout))
		return nil
	}

	if err := j.send(today, people); err != nil {
		return err
	}
	log.Printf("Birthday digest sent with %d people", len(people))
	return nil
}

// StartScheduler registers the digest under schedule (standard five-field
// cron syntax) and starts the cron runner. The caller stops it on shutdown.
func StartScheduler(schedule string, job *BirthdayDigestJob) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(time.Local))
	if _, err := c.AddJob(schedule, job); err != nil {
		return nil, fmt.Errorf("failed to register birthday digest job: %w", err)
	}
	c.Start()
	log.Printf("Birthday digest scheduled with %q", schedule)
	return c, nil
}
