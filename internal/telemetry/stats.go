package telemetry

// Stats summarizes the action log for balance tuning.
type Stats struct {
	Entries         int          `json:"entries"`
	Weeks           int          `json:"weeks"`
	CountsByKind    map[Kind]int `json:"counts_by_kind"`
	EventsPerWeek   float64      `json:"events_per_week"`
	ChurnPerWeek    float64      `json:"churn_per_week"`
	PurchasesTotal  int          `json:"purchases_total"`
	PromotionsTotal int          `json:"promotions_total"`
}

// CalculateStats computes rate stats over the given entries.
func CalculateStats(entries []Entry) Stats {
	st := Stats{CountsByKind: map[Kind]int{}}
	minWeek, maxWeek := 0, 0
	for _, e := range entries {
		st.Entries++
		st.CountsByKind[e.Kind]++
		if minWeek == 0 || e.Week < minWeek {
			minWeek = e.Week
		}
		if e.Week > maxWeek {
			maxWeek = e.Week
		}
	}
	if st.Entries == 0 {
		return st
	}
	st.Weeks = maxWeek - minWeek + 1
	weeks := float64(st.Weeks)
	st.EventsPerWeek = float64(st.CountsByKind[KindEvent]) / weeks
	st.ChurnPerWeek = float64(st.CountsByKind[KindClientLost]) / weeks
	st.PurchasesTotal = st.CountsByKind[KindPurchase]
	st.PromotionsTotal = st.CountsByKind[KindPromotion]
	return st
}
