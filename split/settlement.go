package split

import (
	"fmt"
	"math"
	"sort"
)

// Settlement is one suggested transfer. From and To are display names, which
// is what the composite key is built from.
type Settlement struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// Key returns the composite identifier used to track completion checkboxes
// across recomputation of the settlement list.
func (s Settlement) Key() string {
	return fmt.Sprintf("%s-%s-%.2f", s.From, s.To, s.Amount)
}

type balEntry struct {
	name   string
	amount float64
}

// MatchSettlements produces an ordered list of transfers that drains every
// balance to zero, greedily matching the largest debtor against the largest
// creditor. At most len(balances)-1 transfers are produced.
//
// The sort is stable, so ties between equal magnitudes keep the input's
// participant order; given the same balance vector the output is identical
// run to run.
func MatchSettlements(balances []Balance) []Settlement {
	var creditors, debtors []balEntry
	for _, b := range balances {
		switch {
		case b.Net > 0:
			creditors = append(creditors, balEntry{name: b.Name, amount: b.Net})
		case b.Net < 0:
			debtors = append(debtors, balEntry{name: b.Name, amount: -b.Net})
		}
	}
	sort.SliceStable(creditors, func(i, j int) bool { return creditors[i].amount > creditors[j].amount })
	sort.SliceStable(debtors, func(i, j int) bool { return debtors[i].amount > debtors[j].amount })

	var settlements []Settlement
	for len(creditors) > 0 && len(debtors) > 0 {
		creditor := &creditors[0]
		debtor := &debtors[0]
		amount := math.Min(creditor.amount, debtor.amount)
		settlements = append(settlements, Settlement{
			From:   debtor.name,
			To:     creditor.name,
			Amount: round2(amount),
		})
		creditor.amount -= amount
		debtor.amount -= amount
		if creditor.amount == 0 {
			creditors = creditors[1:]
		}
		if debtor.amount == 0 {
			debtors = debtors[1:]
		}
	}
	return settlements
}
