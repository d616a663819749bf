package game

// ItemKind distinguishes pickups.
type ItemKind uint8

const (
	ItemHealthPack ItemKind = iota
	ItemUpgradePoints
	ItemWeapon
)

func (k ItemKind) String() string {
	switch k {
	case ItemHealthPack:
		return "healthPack"
	case ItemUpgradePoints:
		return "upgradePoints"
	case ItemWeapon:
		return "weapon"
	default:
		return "unknown"
	}
}

// Item is a stationary pickup removed once collected.
type Item struct {
	ID       uint64
	Kind     ItemKind
	WeaponID string // ItemWeapon only
	Body
}

// Name identifies the item for renderers and event payloads.
func (it *Item) Name() string {
	if it.Kind == ItemWeapon {
		return it.WeaponID
	}
	return it.Kind.String()
}

// Apply hands the item to the character.
func (it *Item) Apply(c *Character) {
	switch it.Kind {
	case ItemHealthPack:
		c.Heal(HealthPackAmount)
	case ItemUpgradePoints:
		c.UpgradePoints++
	case ItemWeapon:
		if w, ok := NewWeapon(it.WeaponID); ok {
			c.AddWeapon(w)
		}
	}
}
