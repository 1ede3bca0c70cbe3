package game

import (
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kfiggins/pest-control-empire/internal/catalog"
	"github.com/kfiggins/pest-control-empire/internal/config"
	"github.com/kfiggins/pest-control-empire/internal/event"
	"github.com/kfiggins/pest-control-empire/internal/save"
	"github.com/kfiggins/pest-control-empire/internal/telemetry"
)

// quietBalance disables the random phases so money assertions are exact.
func quietBalance() config.Balance {
	b := config.Default()
	b.EventChanceMultiplier = 0
	b.ReferralChance = 0
	return b
}

func newTestEngine(t *testing.T, bal config.Balance) *Engine {
	t.Helper()
	e := New(bal, 1, nil, telemetry.NewLog(200), log.New(io.Discard, "", 0))
	e.NewGame()
	return e
}

func TestNewGameInitialState(t *testing.T) {
	e := newTestEngine(t, quietBalance())
	st := e.State()

	assert.Equal(t, 1, st.Week)
	assert.Equal(t, 2000, st.Money)
	assert.Empty(t, st.Clients)
	require.Len(t, st.Employees, 1)
	owner := st.Employees[0]
	assert.Equal(t, "You (Owner)", owner.Name)
	assert.Equal(t, catalog.Junior, owner.Tier)
	require.Len(t, st.Trucks, 1)
	assert.Equal(t, owner.TruckID, st.Trucks[0].ID)
	assert.Equal(t, owner.ID, st.Trucks[0].EmployeeID)
	assert.False(t, st.GameOver)
}

func TestFirstTurnWithNoClients(t *testing.T) {
	e := newTestEngine(t, quietBalance())

	res, err := e.ExecuteTurn()
	require.NoError(t, err)

	assert.Equal(t, 1, res.Week)
	assert.Zero(t, res.Revenue)
	assert.Equal(t, 600, res.Expenses, "owner salary only, overhead starts later")
	assert.Equal(t, -600, res.NetProfit)

	st := e.State()
	assert.Equal(t, 2, st.Week)
	assert.Equal(t, 1400, st.Money)
	assert.Equal(t, 1, st.Employees[0].WeeksEmployed)
}

func TestOverheadStartsAtConfiguredWeek(t *testing.T) {
	e := newTestEngine(t, quietBalance())
	e.st.Week = 5

	res, err := e.ExecuteTurn()
	require.NoError(t, err)
	assert.Equal(t, 900, res.Expenses, "salary 600 + overhead 300")
}

func TestTurnServicesAssignedClients(t *testing.T) {
	bal := quietBalance()
	bal.StartingCash = 10000
	e := newTestEngine(t, bal)

	c, err := e.AcquireClient(catalog.Residential)
	require.NoError(t, err)
	owner := e.State().Employees[0]
	require.NoError(t, e.AssignEmployee(owner.ID, c.ID))

	res, err := e.ExecuteTurn()
	require.NoError(t, err)

	assert.Equal(t, 1, res.JobsCompleted)
	assert.Equal(t, 360, res.Revenue, "satisfaction 100 pays the premium band")

	st := e.State()
	got := st.FindClient(c.ID)
	require.NotNil(t, got)
	assert.Equal(t, 100, got.Satisfaction, "service gain and restore clamp at 100")
	assert.Equal(t, 360, got.TotalRevenue)
	assert.Equal(t, 1, got.WeeksAsClient)
	assert.Equal(t, 3, st.Employees[0].XP)
	assert.Equal(t, 1, st.Stats.TotalJobs)
}

func TestUnservicedClientPaysNothingAndDecays(t *testing.T) {
	bal := quietBalance()
	bal.StartingCash = 10000
	e := newTestEngine(t, bal)

	c, err := e.AcquireClient(catalog.Residential)
	require.NoError(t, err)

	res, err := e.ExecuteTurn()
	require.NoError(t, err)

	assert.Zero(t, res.Revenue)
	got := e.State().FindClient(c.ID)
	require.NotNil(t, got)
	assert.Equal(t, 94, got.Satisfaction, "double decay for neglect")
}

func TestChurnBoundaryAfterUpdate(t *testing.T) {
	bal := quietBalance()
	bal.StartingCash = 10000
	e := newTestEngine(t, bal)

	keep, err := e.AcquireClient(catalog.Residential)
	require.NoError(t, err)
	lose, err := e.AcquireClient(catalog.Residential)
	require.NoError(t, err)

	// Unserviced residential drops 6: 26 lands on 20 and stays, 25 lands on
	// 19 and churns.
	e.st.FindClient(keep.ID).Satisfaction = 26
	e.st.FindClient(lose.ID).Satisfaction = 25

	res, err := e.ExecuteTurn()
	require.NoError(t, err)

	assert.Equal(t, 1, res.ClientsLost)
	st := e.State()
	assert.NotNil(t, st.FindClient(keep.ID))
	assert.Nil(t, st.FindClient(lose.ID))
	assert.Equal(t, 1, st.Stats.ClientsLost)
}

func TestAcquisitionCostsStrictlyIncrease(t *testing.T) {
	bal := quietBalance()
	bal.StartingCash = 100000
	e := newTestEngine(t, bal)

	assert.Equal(t, 200, e.AcquisitionCost(catalog.Residential))

	prev := 0
	for i := 0; i < 5; i++ {
		cost := e.AcquisitionCost(catalog.Residential)
		assert.Greater(t, cost, prev)
		before := e.State().Money
		_, err := e.AcquireClient(catalog.Residential)
		require.NoError(t, err)
		assert.Equal(t, before-cost, e.State().Money)
		prev = cost
	}
	// floor(200 * 1.3^5) = 742
	assert.Equal(t, 742, e.AcquisitionCost(catalog.Residential))
}

func TestAcquireClientRejectsWhenBroke(t *testing.T) {
	bal := quietBalance()
	bal.StartingCash = 100
	e := newTestEngine(t, bal)

	_, err := e.AcquireClient(catalog.Commercial)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Empty(t, e.State().Clients)
	assert.Equal(t, 100, e.State().Money)
}

func TestHireEmployeeIncludesTruck(t *testing.T) {
	bal := quietBalance()
	bal.StartingCash = 10000
	e := newTestEngine(t, bal)

	emp, err := e.HireEmployee(catalog.Experienced, true)
	require.NoError(t, err)

	st := e.State()
	assert.Equal(t, 10000-1800-1000, st.Money)
	require.Len(t, st.Employees, 2)
	require.Len(t, st.Trucks, 2)
	tr := st.FindTruck(emp.TruckID)
	require.NotNil(t, tr)
	assert.Equal(t, emp.ID, tr.EmployeeID)

	_, err = e.HireEmployee(catalog.Expert, true)
	require.NoError(t, err)
	_, err = e.HireEmployee(catalog.Expert, true)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestAssignmentCommandErrors(t *testing.T) {
	bal := quietBalance()
	bal.StartingCash = 10000
	e := newTestEngine(t, bal)

	owner := e.State().Employees[0]
	var clientIDs []string
	for i := 0; i < 4; i++ {
		c, err := e.AcquireClient(catalog.Residential)
		require.NoError(t, err)
		clientIDs = append(clientIDs, c.ID)
	}

	assert.ErrorIs(t, e.AssignEmployee("nope", clientIDs[0]), ErrNotFound)
	assert.ErrorIs(t, e.AssignEmployee(owner.ID, "nope"), ErrNotFound)

	for i := 0; i < 3; i++ {
		require.NoError(t, e.AssignEmployee(owner.ID, clientIDs[i]))
	}
	assert.ErrorIs(t, e.AssignEmployee(owner.ID, clientIDs[0]), ErrAlreadyAssigned)
	assert.ErrorIs(t, e.AssignEmployee(owner.ID, clientIDs[3]), ErrAtCapacity)
	assert.Len(t, e.State().Employees[0].AssignedClients, 3)

	require.NoError(t, e.UnassignEmployee(owner.ID, clientIDs[0]))
	assert.ErrorIs(t, e.UnassignEmployee(owner.ID, clientIDs[0]), ErrNotAssigned)
}

func TestPurchaseEquipmentGates(t *testing.T) {
	bal := quietBalance()
	bal.StartingCash = 10000
	e := newTestEngine(t, bal)

	assert.ErrorIs(t, e.PurchaseEquipment(catalog.AdvancedSprayer), ErrPrerequisites)
	assert.Empty(t, e.State().OwnedEquipment)

	require.NoError(t, e.PurchaseEquipment(catalog.BasicSprayer))
	assert.Equal(t, 9500, e.State().Money)
	assert.ErrorIs(t, e.PurchaseEquipment(catalog.BasicSprayer), ErrPrerequisites)

	e.st.Money = 100
	assert.ErrorIs(t, e.PurchaseEquipment(catalog.AdvancedSprayer), ErrInsufficientFunds)
	assert.Equal(t, []catalog.EquipmentID{catalog.BasicSprayer}, e.State().OwnedEquipment)
}

func TestPurchaseEquipmentAppliesEventDiscount(t *testing.T) {
	bal := quietBalance()
	bal.StartingCash = 10000
	e := newTestEngine(t, bal)

	var deal *event.Def
	for i := range event.Catalog {
		if event.Catalog[i].ID == event.EquipmentDeal {
			deal = &event.Catalog[i]
		}
	}
	require.NotNil(t, deal)
	require.NotNil(t, e.events.Trigger(e.st, deal, e.rng))

	require.NoError(t, e.PurchaseEquipment(catalog.BasicSprayer))
	assert.Equal(t, 10000-350, e.State().Money, "30% off the $500 sprayer")
}

func TestPurchaseUpgradeChain(t *testing.T) {
	bal := quietBalance()
	bal.StartingCash = 20000
	e := newTestEngine(t, bal)

	assert.ErrorIs(t, e.PurchaseUpgrade(catalog.Ops2), ErrPrerequisites)
	require.NoError(t, e.PurchaseUpgrade(catalog.Ops1))
	require.NoError(t, e.PurchaseUpgrade(catalog.Ops2))
	assert.Equal(t, 20000-2000-4500, e.State().Money)
}

func TestPromoteEmployeeCommand(t *testing.T) {
	bal := quietBalance()
	bal.StartingCash = 10000
	e := newTestEngine(t, bal)

	owner := e.State().Employees[0]
	assert.ErrorIs(t, e.PromoteEmployee(owner.ID), ErrNotPromotable)

	e.st.Employees[0].XP = 60

	e.st.Money = 100
	assert.ErrorIs(t, e.PromoteEmployee(owner.ID), ErrInsufficientFunds)

	e.st.Money = 5000
	require.NoError(t, e.PromoteEmployee(owner.ID))
	emp := e.State().Employees[0]
	assert.Equal(t, catalog.Experienced, emp.Tier)
	assert.Equal(t, 900, emp.Salary)
	assert.Equal(t, 0, emp.XP)
	assert.Equal(t, 5000-900, e.State().Money)
}

func TestBankruptcyEndsTheGame(t *testing.T) {
	bal := quietBalance()
	bal.StartingCash = 500
	e := newTestEngine(t, bal)

	res, err := e.ExecuteTurn()
	require.NoError(t, err)

	assert.True(t, res.GameOver)
	assert.Equal(t, "bankruptcy", string(res.GameOverReason))

	st := e.State()
	assert.True(t, st.GameOver)
	assert.Equal(t, 2, st.Week, "terminal turn still advances the week")

	_, err = e.ExecuteTurn()
	assert.ErrorIs(t, err, ErrGameOver)
	assert.Equal(t, 2, e.State().Week, "refused turn does not advance")

	_, err = e.AcquireClient(catalog.Residential)
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestVictoryNeedsAllThreeConditions(t *testing.T) {
	run := func(clients int) *TurnResult {
		bal := quietBalance()
		bal.StartingCash = 100000
		bal.VictoryWeeklyProfit = 300
		bal.VictoryClients = 2
		bal.VictoryEmployees = 1
		e := newTestEngine(t, bal)

		owner := e.st.Employees[0]
		for i := 0; i < clients; i++ {
			c, err := e.AcquireClient(catalog.Commercial)
			require.NoError(t, err)
			require.NoError(t, e.AssignEmployee(owner.ID, c.ID))
		}
		res, err := e.ExecuteTurn()
		require.NoError(t, err)
		return res
	}

	// Two serviced commercial clients: revenue 1920, expenses 600.
	res := run(2)
	assert.True(t, res.GameOver)
	assert.Equal(t, "victory", string(res.GameOverReason))

	// One client clears the profit bar (960 - 600 = 360) but not the count.
	res = run(1)
	assert.False(t, res.GameOver)
}

func TestEngineSaveAndResume(t *testing.T) {
	store, err := save.NewFileStore(t.TempDir())
	require.NoError(t, err)

	bal := quietBalance()
	bal.StartingCash = 10000
	e := New(bal, 1, store, telemetry.NewLog(200), log.New(io.Discard, "", 0))
	e.NewGame()

	_, err = e.AcquireClient(catalog.Residential)
	require.NoError(t, err)
	_, err = e.ExecuteTurn()
	require.NoError(t, err)

	// Turns autosave, so a second engine resumes where this one stopped.
	e2 := New(bal, 2, store, telemetry.NewLog(200), log.New(io.Discard, "", 0))
	require.NoError(t, e2.InitOrLoad())

	st := e2.State()
	assert.Equal(t, 2, st.Week)
	assert.Len(t, st.Clients, 1)
	assert.Len(t, st.Employees, 1)
}

func TestInitOrLoadWithoutSaveStartsFresh(t *testing.T) {
	store, err := save.NewFileStore(t.TempDir())
	require.NoError(t, err)

	e := New(quietBalance(), 1, store, telemetry.NewLog(200), log.New(io.Discard, "", 0))
	require.NoError(t, e.InitOrLoad())

	assert.Equal(t, 1, e.State().Week)
}

func TestInitOrLoadDiscardsCorruptSave(t *testing.T) {
	store, err := save.NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.ErrorIs(t, store.Import([]byte("garbage")), save.ErrBadPayload)

	e := New(quietBalance(), 1, store, telemetry.NewLog(200), log.New(io.Discard, "", 0))
	require.NoError(t, e.InitOrLoad())
	assert.Equal(t, 1, e.State().Week)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$2,000", FormatMoney(2000))
	assert.Equal(t, "$0", FormatMoney(0))
	assert.Equal(t, "-$1,300", FormatMoney(-1300))
}
