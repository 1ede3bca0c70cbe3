package game

import (
	"github.com/kfiggins/pest-control-empire/internal/client"
	"github.com/kfiggins/pest-control-empire/internal/economy"
	"github.com/kfiggins/pest-control-empire/internal/event"
	"github.com/kfiggins/pest-control-empire/internal/sim"
	"github.com/kfiggins/pest-control-empire/internal/telemetry"
)

// TurnResult summarizes one executed week.
type TurnResult struct {
	Week           int                `json:"week"`
	Revenue        int                `json:"revenue"`
	Expenses       int                `json:"expenses"`
	NetProfit      int                `json:"net_profit"`
	JobsCompleted  int                `json:"jobs_completed"`
	Referrals      int                `json:"referrals"`
	ClientsLost    int                `json:"clients_lost"`
	Event          *event.Active      `json:"event,omitempty"`
	GameOver       bool               `json:"game_over"`
	GameOverReason sim.GameOverReason `json:"game_over_reason,omitempty"`
}

// ExecuteTurn runs the weekly pipeline. The phase order is a correctness
// invariant: automation, jobs, referrals, revenue, expenses, events, state
// update, then week advance.
func (e *Engine) ExecuteTurn() (*TurnResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.st
	if st.GameOver {
		return nil, ErrGameOver
	}

	st.WeeklyRevenue = 0
	st.WeeklyExpenses = 0
	res := &TurnResult{Week: st.Week}

	eq := economy.EquipmentBonusesFor(st.OwnedEquipment)
	fx := economy.UpgradeEffectsFor(st.OwnedUpgrades)

	e.runAutomation(fx)

	// Jobs: every employee works the full roster. Weeks employed ticks once
	// per employee regardless of assignment count.
	for _, emp := range st.Employees {
		emp.WeeksEmployed++
		for _, clientID := range emp.AssignedClients {
			c := st.FindClient(clientID)
			if c == nil {
				continue
			}
			emp.ServiceClient(c, eq, fx, e.bal.XPPerJob)
			res.JobsCompleted++
			st.Stats.TotalJobs++
		}
	}

	// Referrals: happy clients bring in free ones. New arrivals join this
	// week's revenue pass but were not serviced, so they pay nothing yet.
	var referred []*client.Client
	for _, c := range st.Clients {
		if c.Satisfaction >= e.bal.ReferralCutoff && e.rng.Float64() < e.bal.ReferralChance {
			nc := client.NewRandom(e.rng, "")
			referred = append(referred, nc)
			e.record(telemetry.KindClientAcquired, "%s referred a new client: %s!", c.Name, nc.Name)
		}
	}
	st.Clients = append(st.Clients, referred...)
	st.Stats.ClientsAcquired += len(referred)
	res.Referrals = len(referred)

	// Revenue.
	for _, c := range st.Clients {
		serviced := st.ClientServiced(c.ID)
		rev := c.Revenue(serviced, fx.RevenueBonus)
		st.WeeklyRevenue += rev
		c.TotalRevenue += rev
		c.WeeksAsClient++
	}

	// Expenses.
	salaries := 0
	for _, emp := range st.Employees {
		salaries += emp.Salary
	}
	st.WeeklyExpenses += salaries
	if salaries > 0 {
		e.record(telemetry.KindFinance, "Employee salaries: %s for %d employees", FormatMoney(salaries), len(st.Employees))
	}
	if st.Week >= e.bal.OverheadStartWeek {
		st.WeeklyExpenses += e.bal.WeeklyOverhead
		e.record(telemetry.KindFinance, "Business overhead: %s (rent, insurance, utilities)", FormatMoney(e.bal.WeeklyOverhead))
	}

	// Events: expire last week's effects first, then roll.
	e.events.Cleanup(st)
	def := e.events.Check(st, func(chance float64) bool {
		return e.rng.Float64() < chance
	})
	if active := e.events.Trigger(st, def, e.rng); active != nil {
		res.Event = active
		e.record(telemetry.KindEvent, "EVENT: %s", active.Message)
	}

	// State update: satisfaction moves, churn, money, terminal checks.
	var churned []string
	for _, c := range st.Clients {
		before := c.Status()
		c.EndWeek(e.bal.ServiceRestore)
		if after := c.Status(); after != before {
			e.record(telemetry.KindSystem, "%s is now %s (satisfaction %d)", c.Name, after, c.Satisfaction)
		}
		if c.ShouldChurn(e.bal.ChurnThreshold) {
			churned = append(churned, c.ID)
			e.record(telemetry.KindClientLost, "Lost client: %s (satisfaction too low)", c.Name)
		}
	}
	for _, id := range churned {
		st.RemoveClient(id)
	}
	st.Stats.ClientsLost += len(churned)
	res.ClientsLost = len(churned)

	net := st.WeeklyRevenue - st.WeeklyExpenses
	st.Money += net
	st.Stats.TotalRevenue += st.WeeklyRevenue
	st.Stats.TotalExpenses += st.WeeklyExpenses
	st.Stats.TotalProfit = st.Stats.TotalRevenue - st.Stats.TotalExpenses

	res.Revenue = st.WeeklyRevenue
	res.Expenses = st.WeeklyExpenses
	res.NetProfit = net

	if st.Money < 0 {
		st.GameOver = true
		st.GameOverReason = sim.ReasonBankruptcy
		e.record(telemetry.KindGameOver, "GAME OVER: bankruptcy in week %d", st.Week)
	} else if net >= e.bal.VictoryWeeklyProfit &&
		len(st.Clients) >= e.bal.VictoryClients &&
		len(st.Employees) >= e.bal.VictoryEmployees {
		st.GameOver = true
		st.GameOverReason = sim.ReasonVictory
		e.record(telemetry.KindGameOver, "VICTORY: pest control empire built in week %d", st.Week)
	}

	e.record(telemetry.KindTurn, "Week %d complete. Net: %s", st.Week, FormatMoney(net))

	// The week advances even on the terminal turn; the next call is refused.
	st.Week++

	res.GameOver = st.GameOver
	res.GameOverReason = st.GameOverReason

	e.autosave()
	return res, nil
}
