package queue

import "nextcut/internal/models"

// DefaultServiceMinutes is charged for entries with no or an unknown service.
const DefaultServiceMinutes = 20

var serviceMinutes = map[models.ServiceType]int{
	models.ServiceHaircut:      20,
	models.ServiceBeard:        5,
	models.ServiceHaircutBeard: 25,
}

// ServiceMinutes is the expected chair time for one service.
func ServiceMinutes(s models.ServiceType) int {
	if m, ok := serviceMinutes[s]; ok {
		return m
	}
	return DefaultServiceMinutes
}

// EstimateWait sums the chair time of entries, normally the ones ahead of a
// customer. It is a static estimate in minutes.
func EstimateWait(entries []models.QueueEntry) int {
	total := 0
	for _, e := range entries {
		total += ServiceMinutes(e.Service)
	}
	return total
}
