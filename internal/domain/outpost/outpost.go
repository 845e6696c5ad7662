package outpost

import (
	"github.com/Farini/SkyNation-sub005/internal/domain/catalog"
)

type Posdex int

type Outpost struct {
	ID            string              `json:"id"`
	Type          catalog.OutpostType `json:"type"`
	Level         int                 `json:"level"`
	Posdex        Posdex              `json:"posdex"`
	GuildID       string              `json:"guild_id,omitempty"`
	ProducedTotal int                 `json:"produced_total"`
	LastMilestone int                 `json:"last_milestone"`
}

type Job struct {
	Level       int                        `json:"level"`
	Ingredients map[catalog.Ingredient]int `json:"ingredients"`
	Skills      map[catalog.Skill]int      `json:"skills"`
}

// Supply is what the station can offer a job: stored ingredients and crew skill.
type Supply interface {
	Available(ing catalog.Ingredient) int
	Take(ing catalog.Ingredient, amount int) bool
	SkillPoints(skill catalog.Skill) int
}

func (o Outpost) MaxLevel(cat catalog.Catalog) int {
	spec, _ := cat.Outpost(o.Type)
	return spec.MaxLevel
}

// NextJob returns the job that advances the current level. There is none once
// the outpost sits at its max level.
func (o Outpost) NextJob(cat catalog.Catalog) (Job, bool) {
	spec, ok := cat.Outpost(o.Type)
	if !ok || o.Level >= spec.MaxLevel {
		return Job{}, false
	}
	job := Job{
		Level:       o.Level,
		Ingredients: make(map[catalog.Ingredient]int, len(spec.JobIngredients)),
		Skills:      make(map[catalog.Skill]int, len(spec.JobSkills)),
	}
	for ing, req := range spec.JobIngredients {
		if n := req.At(o.Level); n > 0 {
			job.Ingredients[ing] = n
		}
	}
	for sk, req := range spec.JobSkills {
		if n := req.At(o.Level); n > 0 {
			job.Skills[sk] = n
		}
	}
	return job, true
}

func (o Outpost) Energy(cat catalog.Catalog) int {
	spec, ok := cat.Outpost(o.Type)
	if !ok || (spec.EnergyBase == 0 && spec.EnergyMult == 0) {
		return 0
	}
	return spec.EnergyBase + spec.EnergyMult*fib(o.Level+1)
}

// Produce is a pure function of type and level.
func (o Outpost) Produce(cat catalog.Catalog) map[catalog.Ingredient]int {
	spec, ok := cat.Outpost(o.Type)
	out := map[catalog.Ingredient]int{}
	if !ok {
		return out
	}
	for _, row := range spec.Yields {
		if n := row.At(o.Level); n > 0 {
			out[row.Ingredient] += n
		}
	}
	return out
}

// Fulfill consumes the job's ingredients and raises the level by one when the
// supply covers every requirement. Nothing is taken otherwise.
func (o *Outpost) Fulfill(job Job, supply Supply) bool {
	if job.Level != o.Level {
		return false
	}
	for ing, n := range job.Ingredients {
		if supply.Available(ing) < n {
			return false
		}
	}
	for sk, n := range job.Skills {
		if supply.SkillPoints(sk) < n {
			return false
		}
	}
	for _, ing := range catalog.Ingredients() {
		if n, ok := job.Ingredients[ing]; ok {
			supply.Take(ing, n)
		}
	}
	o.Level++
	return true
}

// RecordProduction adds n produced units and returns how many milestones of
// size step were crossed.
func (o *Outpost) RecordProduction(n, step int) int {
	if n <= 0 {
		return 0
	}
	o.ProducedTotal += n
	if step <= 0 {
		return 0
	}
	reached := o.ProducedTotal / step
	crossed := reached - o.LastMilestone/step
	if crossed > 0 {
		o.LastMilestone = reached * step
	}
	return crossed
}

func fib(n int) int {
	if n <= 0 {
		return 0
	}
	a, b := 1, 1
	for i := 2; i < n; i++ {
		a, b = b, a+b
	}
	return b
}
