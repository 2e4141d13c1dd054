// Package seed fills a store with demo incident reports.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"incidentdesk/internal/incident"
	"incidentdesk/pkg/types"
)

// Demo data marks every patient name with this prefix.
const PatientPrefix = "[demo] "

var demoPatients = []string{
	"Ana Oliveira",
	"Carlos Souza",
	"Maria Lima",
	"José Pereira",
	"Francisca Alves",
	"Antônio Ribeiro",
	"Juliana Costa",
	"Paulo Martins",
	"Luiza Fernandes",
	"Raimundo Gomes",
}

var demoSuggestions = []string{
	"Reforçar a fixação das linhas antes do início da sessão.",
	"Revisar o protocolo de punção com a equipe do turno.",
	"Instalar barras de apoio no acesso à balança.",
	"Conferir a prescrição com dupla checagem antes do preparo.",
	"Orientar o paciente sobre restrição hídrica entre as sessões.",
}

type weightedStatus struct {
	Status types.ActionStatus
	Weight int
}

var weightedStatuses = []weightedStatus{
	{Status: types.ActionStatusPending, Weight: 50},
	{Status: types.ActionStatusInProgress, Weight: 30},
	{Status: types.ActionStatusDone, Weight: 20},
}

// SeedIncidents creates count demo reports dated within the 120 days before
// now. Some of them carry a suggestion and about half of those get a saved
// corrective action.
func SeedIncidents(ctx context.Context, svc *incident.Service, rng *rand.Rand, count int, now time.Time) (int, error) {
	if count <= 0 {
		return 0, nil
	}

	tax := svc.Taxonomy()
	sectors := tax.Sectors()
	phases := tax.Phases()
	roster := tax.Responsible()

	labels := make([]string, 0)
	for _, c := range tax.Categories() {
		labels = append(labels, c.Labels...)
	}

	created := 0
	for i := 0; i < count; i++ {
		form := &types.IncidentForm{
			PatientName: PatientPrefix + demoPatients[rng.Intn(len(demoPatients))],
			PatientAge:  18 + rng.Intn(70),
			Sector:      sectors[rng.Intn(len(sectors))],
			Phase:       phases[rng.Intn(len(phases))],
			Responsible: roster[rng.Intn(len(roster))],
			OccurredOn:  now.AddDate(0, 0, -rng.Intn(120)).Format(types.DateLayout),
			Categories:  pickLabels(rng, labels, 1+rng.Intn(3)),
		}
		if rng.Intn(100) < 40 {
			form.Suggestion = demoSuggestions[rng.Intn(len(demoSuggestions))]
		}

		report, err := svc.Create(ctx, form)
		if err != nil {
			return created, fmt.Errorf("failed to create demo incident %d: %w", i+1, err)
		}
		created++

		if !report.HasSuggestion() || rng.Intn(2) == 0 {
			continue
		}

		_, err = svc.SaveAction(ctx, report.ID, &types.ActionForm{
			Status: pickWeightedStatus(rng),
			Owner:  roster[rng.Intn(len(roster))],
			DueOn:  now.AddDate(0, 0, rng.Intn(30)).Format(types.DateLayout),
		})
		if err != nil {
			return created, fmt.Errorf("failed to create action for demo incident %d: %w", report.ID, err)
		}
	}

	return created, nil
}

func pickLabels(rng *rand.Rand, labels []string, n int) []string {
	if n > len(labels) {
		n = len(labels)
	}

	picked := make([]string, 0, n)
	for _, idx := range rng.Perm(len(labels))[:n] {
		picked = append(picked, labels[idx])
	}
	return picked
}

func pickWeightedStatus(rng *rand.Rand) types.ActionStatus {
	total := 0
	for _, item := range weightedStatuses {
		total += item.Weight
	}

	roll := rng.Intn(total)
	running := 0
	for _, item := range weightedStatuses {
		running += item.Weight
		if roll < running {
			return item.Status
		}
	}

	return types.ActionStatusPending
}
