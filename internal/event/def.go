package event

import (
	"fmt"
	"math/rand"

	"github.com/dustin/go-humanize"

	"github.com/kfiggins/pest-control-empire/internal/client"
	"github.com/kfiggins/pest-control-empire/internal/sim"
)

// ID identifies an event definition.
type ID string

const (
	NewClientOpportunity ID = "new_client_opportunity"
	EquipmentDeal        ID = "equipment_deal"
	ReferralBonus        ID = "referral_bonus"
	PestSurge            ID = "pest_surge"
	EquipmentBreakdown   ID = "equipment_breakdown"
	CompetitorPoaching   ID = "competitor_poaching"
	EmployeeSick         ID = "employee_sick"
	RegulationFine       ID = "regulation_fine"
	BusinessLoanOffer    ID = "business_loan_offer"
)

// Kind tags an event as good, bad, or neither for the player.
type Kind string

const (
	Positive Kind = "positive"
	Negative Kind = "negative"
	Neutral  Kind = "neutral"
)

// Outcome is what an effect reports back. Discount and SickEmployee are
// side channels the engine and manager act on for exactly one turn.
type Outcome struct {
	OK           bool
	Message      string
	Discount     float64
	SickEmployee string
}

// Def is one entry in the event catalog. Effects mutate state directly and
// must leave it consistent on every path.
type Def struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Kind        Kind   `json:"kind"`
	BaseChance  float64

	MinWeek           int
	RequiresClients   bool
	RequiresEmployees bool
	RequiresTrucks    bool
	Seasonal          bool

	Effect func(st *sim.State, rng *rand.Rand) Outcome `json:"-"`
}

// Catalog lists every event in declaration order. Candidate evaluation
// iterates this order and keeps the first hit, so order is load-bearing.
var Catalog = []Def{
	{
		ID:          NewClientOpportunity,
		Name:        "New Client Opportunity",
		Description: "A potential client heard about your excellent service and wants to sign up!",
		Kind:        Positive,
		BaseChance:  0.15,
		Effect: func(st *sim.State, rng *rand.Rand) Outcome {
			c := client.NewRandom(rng, "")
			st.Clients = append(st.Clients, c)
			st.Stats.ClientsAcquired++
			return Outcome{
				OK:      true,
				Message: fmt.Sprintf("%s (%s) joined as a new client!", c.Name, c.Archetype.Info().Name),
			}
		},
	},
	{
		ID:          EquipmentDeal,
		Name:        "Equipment Sale",
		Description: "A supplier is offering a 30% discount on equipment this week!",
		Kind:        Positive,
		BaseChance:  0.10,
		Effect: func(st *sim.State, rng *rand.Rand) Outcome {
			return Outcome{
				OK:       true,
				Message:  "Equipment prices reduced by 30% this week!",
				Discount: 0.3,
			}
		},
	},
	{
		ID:              ReferralBonus,
		Name:            "Referral Bonus",
		Description:     "A satisfied customer referred you to others, earning you a bonus payment!",
		Kind:            Positive,
		BaseChance:      0.12,
		MinWeek:         5,
		RequiresClients: true,
		Effect: func(st *sim.State, rng *rand.Rand) Outcome {
			bonus := rng.Intn(300) + 200
			st.Money += bonus
			return Outcome{
				OK:      true,
				Message: fmt.Sprintf("Received referral bonus of %s!", money(bonus)),
			}
		},
	},
	{
		ID:          PestSurge,
		Name:        "Pest Surge",
		Description: "A sudden infestation outbreak has increased demand across the city!",
		Kind:        Negative,
		BaseChance:  0.08,
		Seasonal:    true,
		Effect: func(st *sim.State, rng *rand.Rand) Outcome {
			affected := 0
			for _, c := range st.Clients {
				if !st.ClientServiced(c.ID) {
					c.Adjust(-15)
					affected++
				}
			}
			return Outcome{
				OK:      true,
				Message: fmt.Sprintf("Pest surge! %d unserviced clients are extremely unhappy.", affected),
			}
		},
	},
	{
		ID:             EquipmentBreakdown,
		Name:           "Equipment Breakdown",
		Description:    "One of your trucks needs emergency repairs!",
		Kind:           Negative,
		BaseChance:     0.10,
		RequiresTrucks: true,
		Effect: func(st *sim.State, rng *rand.Rand) Outcome {
			if len(st.Trucks) == 0 {
				return Outcome{}
			}
			truck := st.Trucks[rng.Intn(len(st.Trucks))]
			repair := rng.Intn(400) + 400
			st.Money -= repair
			truck.Degrade(20)
			return Outcome{
				OK:      true,
				Message: fmt.Sprintf("Truck %s broke down! Repair cost: %s", truck.ID, money(repair)),
			}
		},
	},
	{
		ID:              CompetitorPoaching,
		Name:            "Competitor Poaching",
		Description:     "A competitor is trying to steal your clients with aggressive marketing!",
		Kind:            Negative,
		BaseChance:      0.08,
		MinWeek:         8,
		RequiresClients: true,
		Effect: func(st *sim.State, rng *rand.Rand) Outcome {
			if len(st.Clients) == 0 {
				return Outcome{}
			}
			n := rng.Intn(3) + 1
			if n > len(st.Clients) {
				n = len(st.Clients)
			}
			hit := map[string]bool{}
			for i := 0; i < n; i++ {
				c := st.Clients[rng.Intn(len(st.Clients))]
				if hit[c.ID] {
					continue
				}
				c.Adjust(-20)
				hit[c.ID] = true
			}
			return Outcome{
				OK:      true,
				Message: fmt.Sprintf("Competitor targeted %d of your clients! Satisfaction decreased.", len(hit)),
			}
		},
	},
	{
		ID:                EmployeeSick,
		Name:              "Employee Sick Day",
		Description:       "One of your employees is sick and cannot work this week!",
		Kind:              Negative,
		BaseChance:        0.12,
		RequiresEmployees: true,
		Effect: func(st *sim.State, rng *rand.Rand) Outcome {
			if len(st.Employees) == 0 {
				return Outcome{}
			}
			e := st.Employees[rng.Intn(len(st.Employees))]
			n := len(e.AssignedClients)
			e.Suspend()
			return Outcome{
				OK:           true,
				Message:      fmt.Sprintf("%s is sick! %d clients won't be serviced this week.", e.Name, n),
				SickEmployee: e.ID,
			}
		},
	},
	{
		ID:          RegulationFine,
		Name:        "Regulatory Fine",
		Description: "A compliance inspection found minor violations. Pay the fine!",
		Kind:        Negative,
		BaseChance:  0.06,
		MinWeek:     10,
		Effect: func(st *sim.State, rng *rand.Rand) Outcome {
			fine := rng.Intn(1000) + 500
			st.Money -= fine
			return Outcome{
				OK:      true,
				Message: fmt.Sprintf("Regulatory fine: %s", money(fine)),
			}
		},
	},
	{
		ID:          BusinessLoanOffer,
		Name:        "Business Loan Offer",
		Description: "A bank is offering you a business loan. Accept for immediate cash but pay interest later.",
		Kind:        Neutral,
		BaseChance:  0.05,
		MinWeek:     6,
		Effect: func(st *sim.State, rng *rand.Rand) Outcome {
			const loan = 2000
			st.Money += loan
			return Outcome{
				OK:      true,
				Message: fmt.Sprintf("Accepted business loan of %s", money(loan)),
			}
		},
	},
}

func money(amount int) string {
	return "$" + humanize.Comma(int64(amount))
}
