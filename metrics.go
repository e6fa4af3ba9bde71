package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pageTurns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "savingsdeck_page_turns_total",
			Help: "Page turns accepted by the deck",
		},
		[]string{"direction"},
	)

	recordsSaved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "savingsdeck_records_saved_total",
			Help: "Restaurant records appended to storage",
		},
	)

	reportsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "savingsdeck_reports_generated_total",
			Help: "Savings reports built, by outcome",
		},
		[]string{"outcome"},
	)

	sharesOpened = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "savingsdeck_share_links_total",
			Help: "Share links opened after a report download",
		},
	)
)
