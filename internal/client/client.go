package client

import (
	"math"

	"github.com/kfiggins/pest-control-empire/internal/catalog"
)

// Client is one serviced account. Archetype data is copied at creation so a
// saved game stays stable across balance changes.
type Client struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Archetype         catalog.Archetype `json:"archetype"`
	BaseRevenue       int               `json:"base_revenue"`
	SatisfactionDecay int               `json:"satisfaction_decay"`
	Demands           []string          `json:"demands"`

	Satisfaction     int  `json:"satisfaction"`
	WeeksAsClient    int  `json:"weeks_as_client"`
	ServicedThisWeek bool `json:"serviced_this_week"`
	TotalRevenue     int  `json:"total_revenue"`
}

// New creates a client at full satisfaction.
func New(id, name string, a catalog.Archetype) *Client {
	info := a.Info()
	return &Client{
		ID:                id,
		Name:              name,
		Archetype:         a,
		BaseRevenue:       info.BaseRevenue,
		SatisfactionDecay: info.SatisfactionDecay,
		Demands:           append([]string(nil), info.Demands...),
		Satisfaction:      100,
	}
}

// Revenue is the weekly payment. Unserviced clients pay nothing. Otherwise
// base revenue is scaled by the satisfaction band, floored, then scaled by
// owned revenue upgrades and floored again.
func (c *Client) Revenue(serviced bool, upgradeBonus float64) int {
	if !serviced {
		return 0
	}
	mult := 1.0
	switch {
	case c.Satisfaction >= 80:
		mult = 1.2
	case c.Satisfaction < 50:
		mult = 0.7
	}
	rev := int(math.Floor(float64(c.BaseRevenue) * mult))
	if upgradeBonus > 0 {
		rev = int(math.Floor(float64(rev) * (1 + upgradeBonus)))
	}
	return rev
}

// Adjust moves satisfaction by delta and clamps to [0, 100].
func (c *Client) Adjust(delta int) {
	c.Satisfaction += delta
	if c.Satisfaction > 100 {
		c.Satisfaction = 100
	}
	if c.Satisfaction < 0 {
		c.Satisfaction = 0
	}
}

// EndWeek applies the weekly satisfaction movement. A serviced client
// recovers; a neglected one decays at double rate.
func (c *Client) EndWeek(restore int) {
	if c.ServicedThisWeek {
		c.Adjust(restore)
		c.ServicedThisWeek = false
	} else {
		c.Adjust(-2 * c.SatisfactionDecay)
	}
}

// ShouldChurn reports whether the client leaves this week.
func (c *Client) ShouldChurn(threshold int) bool {
	return c.Satisfaction < threshold
}

// Status is the display band for a satisfaction score.
func (c *Client) Status() string {
	switch {
	case c.Satisfaction >= 80:
		return "Excellent"
	case c.Satisfaction >= 60:
		return "Good"
	case c.Satisfaction >= 40:
		return "Fair"
	case c.Satisfaction >= 20:
		return "Poor"
	default:
		return "Critical"
	}
}
