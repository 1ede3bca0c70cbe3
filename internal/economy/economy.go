package economy

import "github.com/kfiggins/pest-control-empire/internal/catalog"

// EquipmentBonuses is the summed contribution of every owned item.
type EquipmentBonuses struct {
	Satisfaction int `json:"satisfaction"`
	Speed        int `json:"speed"`
	Eco          int `json:"eco"`
}

func ownsEquipment(owned []catalog.EquipmentID, id catalog.EquipmentID) bool {
	for _, o := range owned {
		if o == id {
			return true
		}
	}
	return false
}

func ownsUpgrade(owned []catalog.UpgradeID, id catalog.UpgradeID) bool {
	for _, o := range owned {
		if o == id {
			return true
		}
	}
	return false
}

// CanPurchaseEquipment reports whether the item is unowned and its
// prerequisite, if any, is owned. Unknown ids are never purchasable.
func CanPurchaseEquipment(id catalog.EquipmentID, owned []catalog.EquipmentID) bool {
	e, ok := catalog.EquipmentByID(id)
	if !ok || ownsEquipment(owned, id) {
		return false
	}
	return e.Requires == "" || ownsEquipment(owned, e.Requires)
}

func CanPurchaseUpgrade(id catalog.UpgradeID, owned []catalog.UpgradeID) bool {
	u, ok := catalog.UpgradeByID(id)
	if !ok || ownsUpgrade(owned, id) {
		return false
	}
	return u.Requires == "" || ownsUpgrade(owned, u.Requires)
}

// EquipmentBonusesFor recomputes the aggregate from scratch. Owned sets
// change rarely, so there is no caching to invalidate.
func EquipmentBonusesFor(owned []catalog.EquipmentID) EquipmentBonuses {
	var b EquipmentBonuses
	for _, id := range owned {
		e, ok := catalog.EquipmentByID(id)
		if !ok {
			continue
		}
		b.Satisfaction += e.SatisfactionBonus
		b.Speed += e.SpeedBonus
		b.Eco += e.EcoBonus
	}
	return b
}

// UpgradeEffectsFor sums numeric effects and ORs capability flags across
// owned upgrades.
func UpgradeEffectsFor(owned []catalog.UpgradeID) catalog.UpgradeEffects {
	var fx catalog.UpgradeEffects
	for _, id := range owned {
		u, ok := catalog.UpgradeByID(id)
		if !ok {
			continue
		}
		fx.JobSpeed += u.Effects.JobSpeed
		fx.SatisfactionBonus += u.Effects.SatisfactionBonus
		fx.RevenueBonus += u.Effects.RevenueBonus
		fx.EcoClientBonus += u.Effects.EcoClientBonus
		fx.SpeedClientBonus += u.Effects.SpeedClientBonus

		fx.AutoAssign = fx.AutoAssign || u.Effects.AutoAssign
		fx.SmartMatching = fx.SmartMatching || u.Effects.SmartMatching
		fx.AutoPromote = fx.AutoPromote || u.Effects.AutoPromote
		fx.AutoHire = fx.AutoHire || u.Effects.AutoHire
	}
	return fx
}
