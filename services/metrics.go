package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeCreated          = "created"
	outcomeValidationError  = "validation_error"
	outcomePersistenceError = "persistence_error"
)

var (
	registrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "membership_registrations_total",
		Help: "Public registrations by outcome",
	}, []string{"outcome"})

	registrationRollbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "membership_registration_rollbacks_total",
		Help: "Person rows deleted after a failed ministry or cell insert",
	})

	snapshotRefreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "membership_snapshot_refreshes_total",
		Help: "Directory snapshot reloads by result",
	}, []string{"result"})
)
