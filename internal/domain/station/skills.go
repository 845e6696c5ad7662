package station

import "github.com/Farini/SkyNation-sub005/internal/domain/catalog"

// SkillModel answers who is willing to work and how skilled they are.
type SkillModel interface {
	Willing(p Person) bool
	SkillLevel(p Person, s catalog.Skill) int
}

// RosterSkills reads the answers straight off the person.
type RosterSkills struct{}

func (RosterSkills) Willing(p Person) bool {
	return p.Alive() && !p.Busy
}

func (RosterSkills) SkillLevel(p Person, s catalog.Skill) int {
	return p.Skills[s]
}
