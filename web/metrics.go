package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch outcomes
const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
	outcomeBlocked = "blocked"
)

var imageFetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "satview_image_fetch_total",
	Help: "Imagery fetch attempts by outcome.",
}, []string{"outcome"})
