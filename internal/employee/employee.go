package employee

import (
	"github.com/kfiggins/pest-control-empire/internal/catalog"
	"github.com/kfiggins/pest-control-empire/internal/client"
	"github.com/kfiggins/pest-control-empire/internal/economy"
)

// Employee is one technician. Salary and MaxClients are copied from the tier
// at hire/promotion time so saves stay stable across balance changes.
type Employee struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Tier       catalog.Tier `json:"tier"`
	Salary     int          `json:"salary"`
	MaxClients int          `json:"max_clients"`
	TruckID    string       `json:"truck_id"`

	AssignedClients    []string `json:"assigned_clients"`
	WeeksEmployed      int      `json:"weeks_employed"`
	TotalJobsCompleted int      `json:"total_jobs_completed"`
	XP                 int      `json:"xp"`

	// Sick employees keep their roster in SickAssignments until the next
	// turn's event cleanup hands it back.
	Sick            bool     `json:"sick,omitempty"`
	SickAssignments []string `json:"sick_assignments,omitempty"`
}

// New creates an employee at the given tier with no assignments.
func New(id, name string, tier catalog.Tier) *Employee {
	info := tier.Info()
	return &Employee{
		ID:         id,
		Name:       name,
		Tier:       tier,
		Salary:     info.WeeklySalary,
		MaxClients: info.MaxClients,
	}
}

// CanAssign reports whether the employee can take one more client.
func (e *Employee) CanAssign() bool {
	return !e.Sick && len(e.AssignedClients) < e.MaxClients
}

func (e *Employee) IsAssigned(clientID string) bool {
	for _, id := range e.AssignedClients {
		if id == clientID {
			return true
		}
	}
	return false
}

// Assign adds the client to the roster. Returns false without mutating when
// at capacity, sick, or already assigned.
func (e *Employee) Assign(clientID string) bool {
	if !e.CanAssign() || e.IsAssigned(clientID) {
		return false
	}
	e.AssignedClients = append(e.AssignedClients, clientID)
	return true
}

func (e *Employee) Unassign(clientID string) bool {
	for i, id := range e.AssignedClients {
		if id == clientID {
			e.AssignedClients = append(e.AssignedClients[:i], e.AssignedClients[i+1:]...)
			return true
		}
	}
	return false
}

// Suspend parks the roster for a sick day. No-op if already sick.
func (e *Employee) Suspend() {
	if e.Sick {
		return
	}
	e.Sick = true
	e.SickAssignments = e.AssignedClients
	e.AssignedClients = nil
}

// Recover hands the parked roster back.
func (e *Employee) Recover() {
	if !e.Sick {
		return
	}
	e.Sick = false
	e.AssignedClients = e.SickAssignments
	e.SickAssignments = nil
}

// ServiceClient restores the client's satisfaction and credits the job.
// The gain is the tier's base bonus plus flat equipment/upgrade bonuses plus
// archetype synergies, and is returned for log lines.
func (e *Employee) ServiceClient(c *client.Client, eq economy.EquipmentBonuses, fx catalog.UpgradeEffects, xpPerJob int) int {
	gain := e.Tier.Info().ServiceBonus + eq.Satisfaction + fx.SatisfactionBonus

	switch c.Archetype {
	case catalog.SpeedFocused:
		if e.Tier >= catalog.Experienced {
			gain += 5
		}
		gain += fx.SpeedClientBonus
	case catalog.EcoFocused:
		if e.Tier == catalog.Expert {
			gain += 5
		}
		gain += eq.Eco + fx.EcoClientBonus
	}

	c.Adjust(gain)
	c.ServicedThisWeek = true
	e.TotalJobsCompleted++
	e.XP += xpPerJob
	return gain
}

// PromotionInfo describes the step to the next tier.
type PromotionInfo struct {
	NextTier   catalog.Tier `json:"next_tier"`
	XPRequired int          `json:"xp_required"`
	Cost       int          `json:"cost"`
	CanPromote bool         `json:"can_promote"`
}

// PromotionInfo returns nil at the top tier.
func (e *Employee) PromotionInfo() *PromotionInfo {
	next, ok := e.Tier.Next()
	if !ok {
		return nil
	}
	info := next.Info()
	return &PromotionInfo{
		NextTier:   next,
		XPRequired: info.PromotionXP,
		Cost:       info.PromotionCost,
		CanPromote: e.XP >= info.PromotionXP,
	}
}

// Promote advances one tier and re-derives salary and capacity. XP does not
// carry over. Returns false at the top tier or short of the XP requirement.
func (e *Employee) Promote() bool {
	p := e.PromotionInfo()
	if p == nil || !p.CanPromote {
		return false
	}
	e.Tier = p.NextTier
	info := p.NextTier.Info()
	e.Salary = info.WeeklySalary
	e.MaxClients = info.MaxClients
	e.XP = 0
	return true
}
