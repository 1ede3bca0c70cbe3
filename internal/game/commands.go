package game

import (
	"fmt"
	"math"

	"github.com/kfiggins/pest-control-empire/internal/catalog"
	"github.com/kfiggins/pest-control-empire/internal/client"
	"github.com/kfiggins/pest-control-empire/internal/economy"
	"github.com/kfiggins/pest-control-empire/internal/employee"
	"github.com/kfiggins/pest-control-empire/internal/telemetry"
)

// AcquisitionCost is the price of the next client of the archetype. Each
// acquisition so far raises it exponentially, which pushes the player toward
// referrals for growth.
func (e *Engine) AcquisitionCost(a catalog.Archetype) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.acquisitionCostLocked(a)
}

func (e *Engine) acquisitionCostLocked(a catalog.Archetype) int {
	base := float64(a.Info().AcquisitionCost)
	mult := math.Pow(e.bal.AcquisitionRate, float64(e.st.Stats.ClientsAcquired))
	return int(math.Floor(base * mult))
}

// AcquireClient buys a new client. An invalid or empty archetype draws one
// at random.
func (e *Engine) AcquireClient(a catalog.Archetype) (*client.Client, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.st.GameOver {
		return nil, ErrGameOver
	}
	c := client.NewRandom(e.rng, a)
	cost := e.acquisitionCostLocked(c.Archetype)
	if e.st.Money < cost {
		e.record(telemetry.KindClientAcquired, "Cannot acquire %s - insufficient funds (need %s)", c.Name, FormatMoney(cost))
		return nil, fmt.Errorf("%w: need %s", ErrInsufficientFunds, FormatMoney(cost))
	}
	e.st.Money -= cost
	e.st.Clients = append(e.st.Clients, c)
	e.st.Stats.ClientsAcquired++
	e.record(telemetry.KindClientAcquired, "Acquired client: %s (%s) - Cost: %s", c.Name, c.Archetype.Info().Name, FormatMoney(cost))
	return c, nil
}

// HireEmployee hires a technician and their truck. An invalid tier draws a
// weighted random candidate.
func (e *Engine) HireEmployee(tier catalog.Tier, haveTier bool) (*employee.Employee, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.st.GameOver {
		return nil, ErrGameOver
	}
	if !haveTier || !tier.Valid() {
		tier = employee.RandomTier(e.rng)
	}
	cost := tier.Info().HireCost + e.bal.TruckCost
	if e.st.Money < cost {
		e.record(telemetry.KindHire, "Cannot hire - insufficient funds (need %s)", FormatMoney(cost))
		return nil, fmt.Errorf("%w: need %s", ErrInsufficientFunds, FormatMoney(cost))
	}

	emp := employee.New(newID(), employee.RandomName(e.rng), tier)
	truck := employee.NewTruck(newID(), emp.ID)
	emp.TruckID = truck.ID
	e.st.Money -= cost
	e.st.Employees = append(e.st.Employees, emp)
	e.st.Trucks = append(e.st.Trucks, truck)
	e.record(telemetry.KindHire, "Hired %s (%s) with truck - Cost: %s", emp.Name, tier.Info().Name, FormatMoney(cost))
	return emp, nil
}

// AssignEmployee adds the client to the employee's roster.
func (e *Engine) AssignEmployee(employeeID, clientID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.st.GameOver {
		return ErrGameOver
	}
	emp := e.st.FindEmployee(employeeID)
	c := e.st.FindClient(clientID)
	if emp == nil || c == nil {
		return ErrNotFound
	}
	if emp.IsAssigned(clientID) {
		e.record(telemetry.KindAssign, "%s is already assigned to %s", emp.Name, c.Name)
		return ErrAlreadyAssigned
	}
	if !emp.CanAssign() {
		e.record(telemetry.KindAssign, "%s is at full capacity (%d clients)", emp.Name, emp.MaxClients)
		return ErrAtCapacity
	}
	emp.Assign(clientID)
	e.record(telemetry.KindAssign, "Assigned %s to %s (%d/%d)", emp.Name, c.Name, len(emp.AssignedClients), emp.MaxClients)
	return nil
}

// UnassignEmployee removes the client from the employee's roster.
func (e *Engine) UnassignEmployee(employeeID, clientID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.st.GameOver {
		return ErrGameOver
	}
	emp := e.st.FindEmployee(employeeID)
	if emp == nil {
		return ErrNotFound
	}
	if !emp.Unassign(clientID) {
		return ErrNotAssigned
	}
	if c := e.st.FindClient(clientID); c != nil {
		e.record(telemetry.KindUnassign, "Unassigned %s from %s (%d/%d)", emp.Name, c.Name, len(emp.AssignedClients), emp.MaxClients)
	}
	return nil
}

// PurchaseEquipment buys one item, with the active event discount applied
// when a supplier sale is running.
func (e *Engine) PurchaseEquipment(id catalog.EquipmentID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.st.GameOver {
		return ErrGameOver
	}
	item, ok := catalog.EquipmentByID(id)
	if !ok {
		return ErrNotFound
	}
	if !economy.CanPurchaseEquipment(id, e.st.OwnedEquipment) {
		e.record(telemetry.KindPurchase, "Cannot purchase %s - prerequisites not met or already owned", item.Name)
		return ErrPrerequisites
	}
	cost := item.Cost
	if d := e.events.Discount(); d > 0 {
		cost = int(math.Floor(float64(cost) * (1 - d)))
	}
	if e.st.Money < cost {
		e.record(telemetry.KindPurchase, "Cannot purchase %s - insufficient funds (need %s)", item.Name, FormatMoney(cost))
		return fmt.Errorf("%w: need %s", ErrInsufficientFunds, FormatMoney(cost))
	}
	e.st.Money -= cost
	e.st.OwnedEquipment = append(e.st.OwnedEquipment, id)
	e.record(telemetry.KindPurchase, "Purchased %s - Cost: %s", item.Name, FormatMoney(cost))
	return nil
}

// PurchaseUpgrade buys one upgrade. Event discounts apply to equipment only.
func (e *Engine) PurchaseUpgrade(id catalog.UpgradeID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.st.GameOver {
		return ErrGameOver
	}
	up, ok := catalog.UpgradeByID(id)
	if !ok {
		return ErrNotFound
	}
	if !economy.CanPurchaseUpgrade(id, e.st.OwnedUpgrades) {
		e.record(telemetry.KindPurchase, "Cannot purchase %s - prerequisites not met or already owned", up.Name)
		return ErrPrerequisites
	}
	if e.st.Money < up.Cost {
		e.record(telemetry.KindPurchase, "Cannot purchase %s - insufficient funds (need %s)", up.Name, FormatMoney(up.Cost))
		return fmt.Errorf("%w: need %s", ErrInsufficientFunds, FormatMoney(up.Cost))
	}
	e.st.Money -= up.Cost
	e.st.OwnedUpgrades = append(e.st.OwnedUpgrades, id)
	e.record(telemetry.KindPurchase, "Purchased %s - Cost: %s", up.Name, FormatMoney(up.Cost))
	return nil
}

// PromoteEmployee advances the employee one tier, paying the promotion cost.
func (e *Engine) PromoteEmployee(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.st.GameOver {
		return ErrGameOver
	}
	emp := e.st.FindEmployee(id)
	if emp == nil {
		return ErrNotFound
	}
	p := emp.PromotionInfo()
	if p == nil || !p.CanPromote {
		e.record(telemetry.KindPromotion, "%s is not eligible for promotion", emp.Name)
		return ErrNotPromotable
	}
	if e.st.Money < p.Cost {
		e.record(telemetry.KindPromotion, "Cannot promote %s - insufficient funds (need %s)", emp.Name, FormatMoney(p.Cost))
		return fmt.Errorf("%w: need %s", ErrInsufficientFunds, FormatMoney(p.Cost))
	}
	e.st.Money -= p.Cost
	emp.Promote()
	e.record(telemetry.KindPromotion, "Promoted %s to %s - Cost: %s", emp.Name, emp.Tier.Info().Name, FormatMoney(p.Cost))
	return nil
}
