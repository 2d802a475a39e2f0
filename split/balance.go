// Package split holds the derived computations for a session: per-participant
// net balances and the greedy settlement plan that zeroes them. Everything in
// here is pure; callers re-run it in full whenever the session changes.
package split

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/warikan-app/split-api/models"
)

// Balance is one participant's net position: positive means they are owed
// money, negative means they owe.
type Balance struct {
	ParticipantID string  `json:"participantId"`
	Name          string  `json:"name"`
	Net           float64 `json:"net"`
}

// ComputeBalances maps participants and payments to per-participant nets.
// Returns nil when there are no participants or no payments, so callers can
// tell "nothing to show" apart from "everyone is even".
//
// A payment's amount string that fails to parse counts as zero. A payment
// with no explicit beneficiaries is split across all current participants;
// that fallback is resolved here, not at creation time, so adding a
// participant later changes the effective split of old payments.
func ComputeBalances(participants []models.Participant, payments []models.Payment) []Balance {
	if len(participants) == 0 || len(payments) == 0 {
		return nil
	}

	paid := make(map[string]float64, len(participants))
	owed := make(map[string]float64, len(participants))
	for _, p := range participants {
		paid[p.ID] = 0
		owed[p.ID] = 0
	}

	allIDs := make([]string, len(participants))
	for i, p := range participants {
		allIDs[i] = p.ID
	}

	for _, pay := range payments {
		amt, err := strconv.ParseFloat(pay.Amount, 64)
		if err != nil || math.IsNaN(amt) || math.IsInf(amt, 0) {
			amt = 0
		}
		paid[pay.PayerID] += amt

		targets := pay.ParticipantIDs
		if len(targets) == 0 {
			targets = allIDs
		}
		if len(targets) == 0 {
			continue
		}
		share := amt / float64(len(targets))
		for _, id := range targets {
			owed[id] += share
		}
	}

	balances := make([]Balance, len(participants))
	for i, p := range participants {
		balances[i] = Balance{
			ParticipantID: p.ID,
			Name:          DisplayName(p, i),
			Net:           round2(paid[p.ID] - owed[p.ID]),
		}
	}
	return balances
}

// DisplayName resolves a participant's name, falling back to the positional
// placeholder when the name is blank. idx is the zero-based position.
func DisplayName(p models.Participant, idx int) string {
	if name := strings.TrimSpace(p.Name); name != "" {
		return name
	}
	return fmt.Sprintf("Person %d", idx+1)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
