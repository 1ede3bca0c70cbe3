package sim

import (
	"github.com/kfiggins/pest-control-empire/internal/catalog"
	"github.com/kfiggins/pest-control-empire/internal/client"
	"github.com/kfiggins/pest-control-empire/internal/employee"
)

// GameOverReason tags why a run ended.
type GameOverReason string

const (
	ReasonBankruptcy GameOverReason = "bankruptcy"
	ReasonVictory    GameOverReason = "victory"
)

// Stats holds lifetime counters. TotalProfit is kept in sync with the other
// two rather than derived on read so saves are self-contained.
type Stats struct {
	TotalRevenue    int `json:"total_revenue"`
	TotalExpenses   int `json:"total_expenses"`
	TotalProfit     int `json:"total_profit"`
	ClientsAcquired int `json:"clients_acquired"`
	ClientsLost     int `json:"clients_lost"`
	TotalJobs       int `json:"total_jobs"`
}

// AutomationSettings are player toggles. Capabilities come from owned
// upgrades; a toggle without the capability does nothing.
type AutomationSettings struct {
	AutoAssign  bool `json:"auto_assign"`
	AutoHire    bool `json:"auto_hire"`
	AutoPromote bool `json:"auto_promote"`

	HireCashBuffer    int `json:"hire_cash_buffer"`
	PromoteCashBuffer int `json:"promote_cash_buffer"`
}

// State is the root aggregate. The engine is its single writer; everyone
// else sees clones.
type State struct {
	Week  int `json:"week"`
	Money int `json:"money"`

	Clients   []*client.Client     `json:"clients"`
	Employees []*employee.Employee `json:"employees"`
	Trucks    []*employee.Truck    `json:"trucks"`

	OwnedEquipment []catalog.EquipmentID `json:"owned_equipment"`
	OwnedUpgrades  []catalog.UpgradeID   `json:"owned_upgrades"`

	WeeklyRevenue  int `json:"weekly_revenue"`
	WeeklyExpenses int `json:"weekly_expenses"`

	Stats      Stats              `json:"stats"`
	Automation AutomationSettings `json:"automation"`

	GameOver       bool           `json:"game_over"`
	GameOverReason GameOverReason `json:"game_over_reason,omitempty"`
}

func (s *State) FindClient(id string) *client.Client {
	for _, c := range s.Clients {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (s *State) FindEmployee(id string) *employee.Employee {
	for _, e := range s.Employees {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func (s *State) FindTruck(id string) *employee.Truck {
	for _, t := range s.Trucks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// ClientServiced reports whether any employee currently lists the client.
func (s *State) ClientServiced(clientID string) bool {
	for _, e := range s.Employees {
		if e.IsAssigned(clientID) {
			return true
		}
	}
	return false
}

// RemoveClient drops the client and severs every assignment reference,
// parked sick rosters included.
func (s *State) RemoveClient(id string) bool {
	idx := -1
	for i, c := range s.Clients {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	s.Clients = append(s.Clients[:idx], s.Clients[idx+1:]...)
	for _, e := range s.Employees {
		e.Unassign(id)
		e.SickAssignments = without(e.SickAssignments, id)
	}
	return true
}

func without(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func (s *State) OwnsEquipment(id catalog.EquipmentID) bool {
	for _, o := range s.OwnedEquipment {
		if o == id {
			return true
		}
	}
	return false
}

func (s *State) OwnsUpgrade(id catalog.UpgradeID) bool {
	for _, o := range s.OwnedUpgrades {
		if o == id {
			return true
		}
	}
	return false
}

// UnservicedClients lists clients no employee is assigned to, in state order.
func (s *State) UnservicedClients() []*client.Client {
	out := []*client.Client{}
	for _, c := range s.Clients {
		if !s.ClientServiced(c.ID) {
			out = append(out, c)
		}
	}
	return out
}

// Clone deep-copies the aggregate for read-only snapshots.
func (s *State) Clone() *State {
	cp := *s

	cp.Clients = make([]*client.Client, len(s.Clients))
	for i, c := range s.Clients {
		cc := *c
		cc.Demands = append([]string(nil), c.Demands...)
		cp.Clients[i] = &cc
	}

	cp.Employees = make([]*employee.Employee, len(s.Employees))
	for i, e := range s.Employees {
		ec := *e
		ec.AssignedClients = append([]string(nil), e.AssignedClients...)
		ec.SickAssignments = append([]string(nil), e.SickAssignments...)
		cp.Employees[i] = &ec
	}

	cp.Trucks = make([]*employee.Truck, len(s.Trucks))
	for i, t := range s.Trucks {
		tc := *t
		cp.Trucks[i] = &tc
	}

	cp.OwnedEquipment = append([]catalog.EquipmentID(nil), s.OwnedEquipment...)
	cp.OwnedUpgrades = append([]catalog.UpgradeID(nil), s.OwnedUpgrades...)
	return &cp
}
