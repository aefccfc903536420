package config

import (
	"fmt"
	"strings"
)

var validSlots = map[string]bool{"head": true, "rightArm": true, "leftArm": true, "legs": true}

var validCategories = map[string]bool{"melee": true, "ranged": true, "scan": true, "support": true, "none": true, "": true}
var validTraits = map[string]bool{"normal": true, "aim": true, "strike": true, "berserk": true, "": true}

// Validate performs cross-entry checks. Dangling part or medal references in a
// loadout are not errors: the roster builder substitutes inert defaults.
func (b *Bundle) Validate() error {
	if b.Parts != nil {
		seen := make(map[string]struct{}, len(b.Parts.Parts))
		for _, p := range b.Parts.Parts {
			if strings.TrimSpace(p.ID) == "" {
				return fmt.Errorf("part entry missing 'id'")
			}
			if _, dup := seen[p.ID]; dup {
				return fmt.Errorf("duplicate part id '%s'", p.ID)
			}
			seen[p.ID] = struct{}{}
			if !validSlots[p.Slot] {
				return fmt.Errorf("part '%s': unknown slot '%s'", p.ID, p.Slot)
			}
			if !validCategories[p.Category] {
				return fmt.Errorf("part '%s': unknown category '%s'", p.ID, p.Category)
			}
			if !validTraits[p.Trait] {
				return fmt.Errorf("part '%s': unknown trait '%s'", p.ID, p.Trait)
			}
			if p.HP < 0 || p.Charge < 0 || p.Cooldown < 0 {
				return fmt.Errorf("part '%s': negative hp/charge/cooldown", p.ID)
			}
		}
	}
	if b.Medals != nil {
		seen := make(map[string]struct{}, len(b.Medals.Medals))
		for _, m := range b.Medals.Medals {
			if strings.TrimSpace(m.ID) == "" {
				return fmt.Errorf("medal entry missing 'id'")
			}
			if _, dup := seen[m.ID]; dup {
				return fmt.Errorf("duplicate medal id '%s'", m.ID)
			}
			seen[m.ID] = struct{}{}
		}
	}
	if b.Teams == nil || len(b.Teams.Teams) < 2 {
		return fmt.Errorf("at least two teams are required")
	}
	teamIDs := map[string]struct{}{}
	robotIDs := map[string]struct{}{}
	for _, t := range b.Teams.Teams {
		if strings.TrimSpace(t.ID) == "" {
			return fmt.Errorf("team entry missing 'id'")
		}
		if _, dup := teamIDs[t.ID]; dup {
			return fmt.Errorf("duplicate team id '%s'", t.ID)
		}
		teamIDs[t.ID] = struct{}{}
		if len(t.Members) == 0 {
			return fmt.Errorf("team '%s' has no members", t.ID)
		}
		if t.BaseSpeed < 0 || t.SpeedJitter < 0 {
			return fmt.Errorf("team '%s': negative speed", t.ID)
		}
		leaders := 0
		for _, m := range t.Members {
			if strings.TrimSpace(m.ID) == "" {
				return fmt.Errorf("team '%s': member missing 'id'", t.ID)
			}
			if _, dup := robotIDs[m.ID]; dup {
				return fmt.Errorf("duplicate robot id '%s'", m.ID)
			}
			robotIDs[m.ID] = struct{}{}
			if m.Leader {
				leaders++
			}
		}
		if leaders != 1 {
			return fmt.Errorf("team '%s' must have exactly one leader, has %d", t.ID, leaders)
		}
	}
	return nil
}
