// Package sheet holds the character-sheet data the combat engine reads.
// Sheets are owned by the rest of the companion tool; combat never writes
// them, it only snapshots base values and layers combat-scoped overrides
// on top.
package sheet

// Weapon describes a single attack option on a character sheet
type Weapon struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	DiceCount int    `json:"dice_count"`
	// LoadTime is the weapon's turn speed. Lower is faster and earns the
	// wielder extra rounds in the attack sequence.
	LoadTime int    `json:"load_time"`
	Damage   int    `json:"damage"`
	Effect   string `json:"effect,omitempty"`
}

// Mode is one of a character's alternate stat/ability sets. Most
// characters have a single mode; some expose two.
type Mode struct {
	Key         string    `json:"key"`
	Name        string    `json:"name"`
	Weapons     []*Weapon `json:"weapons"`
	DefenseDice int       `json:"defense_dice"`
}

// Character is the slice of a character sheet the combat engine consumes
type Character struct {
	ID         string           `json:"id"`
	OwnerID    string           `json:"owner_id"`
	RoomID     string           `json:"room_id"`
	Name       string           `json:"name"`
	Modes      map[string]*Mode `json:"modes"`
	ActiveMode string           `json:"active_mode"`
}

// ModeOrDefault returns the named mode, falling back to the sheet's
// active mode when key is empty or unknown.
func (c *Character) ModeOrDefault(key string) *Mode {
	if key != "" {
		if m, ok := c.Modes[key]; ok {
			return m
		}
	}
	return c.Modes[c.ActiveMode]
}

// WeaponByKey returns the weapon with the given key in the given mode, or
// nil if the mode does not carry it.
func (c *Character) WeaponByKey(modeKey, weaponKey string) *Weapon {
	mode := c.ModeOrDefault(modeKey)
	if mode == nil {
		return nil
	}
	for _, w := range mode.Weapons {
		if w.Key == weaponKey {
			return w
		}
	}
	return nil
}

// BaseDefenseDice returns the defense dice count for the given mode,
// falling back to the active mode.
func (c *Character) BaseDefenseDice(modeKey string) int {
	mode := c.ModeOrDefault(modeKey)
	if mode == nil {
		return 0
	}
	return mode.DefenseDice
}
