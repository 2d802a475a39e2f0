package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warikan-app/split-api/models"
)

func TestMatchSettlements(t *testing.T) {
	t.Run("one_creditor_two_debtors", func(t *testing.T) {
		balances := []Balance{
			{ParticipantID: "p1", Name: "A", Net: 60},
			{ParticipantID: "p2", Name: "B", Net: -30},
			{ParticipantID: "p3", Name: "C", Net: -30},
		}

		settlements := MatchSettlements(balances)

		require.Len(t, settlements, 2)
		assert.Equal(t, Settlement{From: "B", To: "A", Amount: 30}, settlements[0])
		assert.Equal(t, Settlement{From: "C", To: "A", Amount: 30}, settlements[1])
	})

	t.Run("single_pair", func(t *testing.T) {
		balances := []Balance{
			{ParticipantID: "p1", Name: "P1", Net: 50},
			{ParticipantID: "p2", Name: "P2", Net: -50},
		}

		settlements := MatchSettlements(balances)

		require.Len(t, settlements, 1)
		assert.Equal(t, Settlement{From: "P2", To: "P1", Amount: 50}, settlements[0])
	})

	t.Run("all_even_yields_nothing", func(t *testing.T) {
		balances := []Balance{
			{ParticipantID: "p1", Name: "A", Net: 0},
			{ParticipantID: "p2", Name: "B", Net: 0},
		}
		assert.Empty(t, MatchSettlements(balances))
	})

	t.Run("settlements_drain_every_balance", func(t *testing.T) {
		balances := []Balance{
			{Name: "A", Net: 17.5},
			{Name: "B", Net: 42.25},
			{Name: "C", Net: -10},
			{Name: "D", Net: -29.75},
			{Name: "E", Net: -20},
		}

		settlements := MatchSettlements(balances)

		adjusted := map[string]float64{}
		for _, b := range balances {
			adjusted[b.Name] = b.Net
		}
		for _, s := range settlements {
			adjusted[s.From] += s.Amount
			adjusted[s.To] -= s.Amount
		}
		for name, net := range adjusted {
			assert.InDelta(t, 0, net, 0.005, "residual balance for %s", name)
		}
		assert.LessOrEqual(t, len(settlements), len(balances)-1)
	})

	t.Run("deterministic_for_same_input", func(t *testing.T) {
		balances := []Balance{
			{Name: "A", Net: 25},
			{Name: "B", Net: -25},
			{Name: "C", Net: 25},
			{Name: "D", Net: -25},
		}

		first := MatchSettlements(balances)
		second := MatchSettlements(balances)

		assert.Equal(t, first, second)
		// Equal magnitudes keep participant order: A before C, B before D.
		require.Len(t, first, 2)
		assert.Equal(t, "B", first[0].From)
		assert.Equal(t, "A", first[0].To)
	})

	t.Run("end_to_end_from_payments", func(t *testing.T) {
		ps := []models.Participant{
			{ID: "p1", Name: "A"}, {ID: "p2", Name: "B"}, {ID: "p3", Name: "C"},
		}
		pays := []models.Payment{
			{ID: "pay1", PayerID: "p1", Amount: "90", ParticipantIDs: []string{"p1", "p2", "p3"}},
		}

		settlements := MatchSettlements(ComputeBalances(ps, pays))

		require.Len(t, settlements, 2)
		assert.Equal(t, Settlement{From: "B", To: "A", Amount: 30}, settlements[0])
		assert.Equal(t, Settlement{From: "C", To: "A", Amount: 30}, settlements[1])
	})
}

func TestSettlementKey(t *testing.T) {
	s := Settlement{From: "B", To: "A", Amount: 30}
	assert.Equal(t, "B-A-30.00", s.Key())

	// The key survives recomputation of an identical settlement list, which
	// is what lets done-checkboxes stick.
	assert.Equal(t, s.Key(), Settlement{From: "B", To: "A", Amount: 30.0}.Key())
}
