package game

import (
	"sort"

	"github.com/kfiggins/pest-control-empire/internal/catalog"
	"github.com/kfiggins/pest-control-empire/internal/client"
	"github.com/kfiggins/pest-control-empire/internal/employee"
	"github.com/kfiggins/pest-control-empire/internal/telemetry"
)

// runAutomation is the first turn phase. Each feature needs both the owned
// capability and the player toggle; neither bypasses affordability or
// prerequisite checks.
func (e *Engine) runAutomation(fx catalog.UpgradeEffects) {
	st := e.st
	a := st.Automation

	if fx.AutoHire && a.AutoHire {
		e.autoHire()
	}
	if fx.AutoPromote && a.AutoPromote {
		e.autoPromote()
	}
	if fx.AutoAssign && a.AutoAssign {
		e.autoAssign(fx.SmartMatching)
	}
}

// autoHire brings in one candidate when clients are going unserviced, nobody
// has spare capacity, and cash clears the hire cost plus the buffer.
func (e *Engine) autoHire() {
	st := e.st
	if len(st.UnservicedClients()) == 0 {
		return
	}
	for _, emp := range st.Employees {
		if emp.CanAssign() {
			return
		}
	}

	tier := employee.RandomTier(e.rng)
	cost := tier.Info().HireCost + e.bal.TruckCost
	if st.Money < cost+st.Automation.HireCashBuffer {
		return
	}

	emp := employee.New(newID(), employee.RandomName(e.rng), tier)
	truck := employee.NewTruck(newID(), emp.ID)
	emp.TruckID = truck.ID
	st.Money -= cost
	st.Employees = append(st.Employees, emp)
	st.Trucks = append(st.Trucks, truck)
	e.record(telemetry.KindAutomation, "Auto-hired %s (%s) with truck - Cost: %s", emp.Name, tier.Info().Name, FormatMoney(cost))
}

// autoPromote promotes every eligible employee the budget allows, buffer
// included.
func (e *Engine) autoPromote() {
	st := e.st
	for _, emp := range st.Employees {
		p := emp.PromotionInfo()
		if p == nil || !p.CanPromote {
			continue
		}
		if st.Money < p.Cost+st.Automation.PromoteCashBuffer {
			continue
		}
		cost := p.Cost
		if emp.Promote() {
			st.Money -= cost
			e.record(telemetry.KindAutomation, "Auto-promoted %s to %s", emp.Name, emp.Tier.Info().Name)
		}
	}
}

// autoAssign routes unserviced clients to employees with capacity. Plain
// dispatch is first-fit in state order; smart matching pairs the fastest
// decaying clients with the highest tiers first.
func (e *Engine) autoAssign(smart bool) {
	st := e.st
	clients := st.UnservicedClients()
	if len(clients) == 0 {
		return
	}

	workers := make([]*employee.Employee, 0, len(st.Employees))
	for _, emp := range st.Employees {
		if emp.CanAssign() {
			workers = append(workers, emp)
		}
	}
	if len(workers) == 0 {
		return
	}

	if smart {
		sort.SliceStable(clients, func(i, j int) bool {
			return clients[i].SatisfactionDecay > clients[j].SatisfactionDecay
		})
		sort.SliceStable(workers, func(i, j int) bool {
			return workers[i].Tier > workers[j].Tier
		})
	}

	for _, c := range clients {
		e.assignFirstFit(workers, c)
	}
}

func (e *Engine) assignFirstFit(workers []*employee.Employee, c *client.Client) {
	for _, emp := range workers {
		if emp.Assign(c.ID) {
			e.record(telemetry.KindAutomation, "Auto-assigned %s to %s (%d/%d)", emp.Name, c.Name, len(emp.AssignedClients), emp.MaxClients)
			return
		}
	}
}
