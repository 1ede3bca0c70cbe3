package employee

// Truck is the service vehicle bought with every hire. Condition degrades
// through breakdown events and never drops below 50.
type Truck struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Condition  int    `json:"condition"`
}

func NewTruck(id, employeeID string) *Truck {
	return &Truck{ID: id, EmployeeID: employeeID, Condition: 100}
}

// Degrade lowers condition by amount, floored at 50.
func (t *Truck) Degrade(amount int) {
	t.Condition -= amount
	if t.Condition < 50 {
		t.Condition = 50
	}
}
