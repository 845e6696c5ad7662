package station

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/Farini/SkyNation-sub005/internal/domain/bio"
	"github.com/Farini/SkyNation-sub005/internal/domain/catalog"
	"github.com/Farini/SkyNation-sub005/internal/domain/outpost"
	"github.com/Farini/SkyNation-sub005/internal/domain/peripheral"
	"github.com/Farini/SkyNation-sub005/internal/domain/resource"
)

// Accountant replays elapsed time on a station in whole ticks.
type Accountant struct {
	Catalog catalog.Catalog
	Skills  SkillModel
	Guilds  outpost.GuildDirectory
}

func NewAccountant(cat catalog.Catalog, guilds outpost.GuildDirectory) Accountant {
	return Accountant{Catalog: cat, Skills: RosterSkills{}, Guilds: guilds}
}

// Run catches the station up to now. With recursive unset it performs at most
// one tick; otherwise it ticks until less than a tick remains or the per-pass
// cap is hit. The station is only ever observed between whole ticks, so a
// cancelled pass leaves a consistent state and returns ctx.Err() together with
// the report of the ticks it completed.
func (a Accountant) Run(ctx context.Context, st *Station, now time.Time, recursive bool) (Report, error) {
	if st == nil {
		return Report{}, &ConfigError{Detail: "no station given"}
	}
	if err := st.Validate(a.Catalog); err != nil {
		return Report{StationID: st.ID}, err
	}
	tick := a.Catalog.Tuning.TickDuration
	limit := 1
	if recursive {
		limit = a.Catalog.Tuning.MaxTicksPerPass
	}
	skills := a.Skills
	if skills == nil {
		skills = RosterSkills{}
	}

	report := Report{StationID: st.ID}
	book := newLogbook()
	var ar *arena
	var runErr error
	for report.Ticks < limit {
		if due, _ := st.Clock.Due(now, tick); due == 0 {
			break
		}
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		if ar == nil {
			if st.Produce == nil {
				st.Produce = map[catalog.DNAOption]int{}
			}
			ar = newArena(st, a.Catalog, skills)
		}
		a.tick(ar, book, &report)
		report.Ticks++
	}

	due, rem := st.Clock.Due(now, tick)
	report.LastAccounted = st.Clock.LastAccounted
	report.Remaining = time.Duration(due)*tick + rem
	report.MoreRemaining = due > 0
	if report.Ticks > 0 {
		report.Events = append(report.Events, Event{
			Type:       EventAccountingSettled,
			OccurredAt: st.Clock.LastAccounted,
			Tick:       st.TickCount,
			Message:    fmt.Sprintf("accounted %d ticks", report.Ticks),
			Payload: map[string]any{
				"ticks":          report.Ticks,
				"starved":        report.Starved,
				"more_remaining": report.MoreRemaining,
				"remaining_ms":   report.Remaining.Milliseconds(),
			},
		})
	}
	if runErr != nil {
		book.add(fmt.Sprintf("accounting interrupted after %d ticks", report.Ticks))
	}
	report.Log = book.lines()
	return report, runErr
}

// IsInterrupted reports whether a Run error only means the pass stopped early.
func IsInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func (a Accountant) tick(ar *arena, book *logbook, report *Report) {
	st := ar.st
	n := st.TickCount + 1
	at := st.Clock.LastAccounted.Add(a.Catalog.Tuning.TickDuration)
	rng := tickRNG(st.Seed, n)
	emit := func(typ, msg string, payload map[string]any) {
		report.Events = append(report.Events, Event{Type: typ, OccurredAt: at, Tick: n, Message: msg, Payload: payload})
	}

	a.collectEnergy(ar)
	a.deliverProduction(ar, book, emit)
	a.runPeripherals(ar, book, report)
	report.Starved += ar.lifeSupport(book)
	a.checkJobs(ar, emit)
	a.stepBioBoxes(ar, n, rng, book, emit)
	a.rollBreakage(ar, rng, emit)

	st.Clock.advance(a.Catalog.Tuning.TickDuration)
	st.TickCount = n
}

type emitFunc func(typ, msg string, payload map[string]any)

func (a Accountant) collectEnergy(ar *arena) {
	income := ar.st.SolarPanels * a.Catalog.Tuning.SolarOutputPerPanel
	for _, o := range ar.st.Outposts {
		income += o.Energy(a.Catalog)
	}
	resource.FillAll(ar.batteries, income)
}

func (a Accountant) deliverProduction(ar *arena, book *logbook, emit emitFunc) {
	for i := range ar.st.Outposts {
		o := &ar.st.Outposts[i]
		yields := o.Produce(a.Catalog)
		produced := 0
		for _, ing := range catalog.Ingredients() {
			amount, ok := yields[ing]
			if !ok {
				continue
			}
			produced += amount
			if lost := ar.deliver(ing, amount); lost > 0 {
				book.add(fmt.Sprintf("no room for %s from outpost %s", ing, o.ID))
			}
		}
		a.recordProduction(o, produced, emit)
	}
}

func (a Accountant) recordProduction(o *outpost.Outpost, n int, emit emitFunc) {
	if crossed := o.RecordProduction(n, a.Catalog.Tuning.ProductionMilestone); crossed > 0 {
		emit(EventProductionMilestone,
			fmt.Sprintf("%s outpost %s passed %d units", o.Type, o.ID, o.LastMilestone),
			map[string]any{
				"outpost_id":     o.ID,
				"outpost_type":   string(o.Type),
				"produced_total": o.ProducedTotal,
				"milestone":      o.LastMilestone,
				"crossed":        crossed,
			})
	}
}

func (a Accountant) runPeripherals(ar *arena, book *logbook, report *Report) {
	proc := peripheral.NewProcessor(a.Catalog)
	env := ar.env()
	for i := range ar.st.Peripherals {
		out := proc.Process(&ar.st.Peripherals[i], env)
		switch out.Status {
		case peripheral.StatusStarved:
			report.Starved++
			book.add(out.Note)
		case peripheral.StatusBroken:
			book.add(out.Note)
		}
	}
}

func (a Accountant) checkJobs(ar *arena, emit emitFunc) {
	for i := range ar.st.Outposts {
		o := &ar.st.Outposts[i]
		job, ok := o.NextJob(a.Catalog)
		if !ok || !o.Fulfill(job, ar) {
			continue
		}
		emit(EventOutpostLevelUp,
			fmt.Sprintf("%s outpost %s of %s reached level %d", o.Type, o.ID, outpost.DisplayGuild(a.Guilds, o.GuildID), o.Level),
			map[string]any{
				"outpost_id":   o.ID,
				"outpost_type": string(o.Type),
				"level":        o.Level,
				"guild_id":     o.GuildID,
			})
	}
}

func (a Accountant) stepBioBoxes(ar *arena, n int64, rng *rand.Rand, book *logbook, emit emitFunc) {
	engine := bio.NewEngine(a.Catalog)
	for i := range ar.st.BioBoxes {
		b := &ar.st.BioBoxes[i]
		if b.RoundDue(n, a.Catalog.Tuning.BioRoundTicks) {
			b.Restart(b.Generations)
			b.RoundStartTick = n
			book.add(fmt.Sprintf("biobox %s opened a new round of %d generations", b.ID, b.Generations))
		}
		res := engine.Step(b, rng)
		if res.Collected > 0 {
			ar.st.Produce[b.Option] += res.Collected
		}
		switch {
		case res.GenerationComplete:
			emit(EventBioGenerationDone, res.Note, map[string]any{
				"biobox_id":   b.ID,
				"generations": b.Generations,
				"fitness":     bio.FitnessRatio(b.Population, b.PerfectDNA),
			})
		case res.Yielded > 0:
			emit(EventBioYield, res.Note, map[string]any{
				"biobox_id": b.ID,
				"option":    string(b.Option),
				"amount":    res.Yielded,
			})
		case res.Note != "":
			book.add(res.Note)
		}
	}
}

func (a Accountant) rollBreakage(ar *arena, rng *rand.Rand, emit emitFunc) {
	for i := range ar.st.Peripherals {
		p := &ar.st.Peripherals[i]
		if !peripheral.RollBreak(p, rng, a.Catalog) {
			continue
		}
		emit(EventPeripheralBroken,
			fmt.Sprintf("%s %s broke down", p.Type, p.ID),
			map[string]any{"peripheral_id": p.ID, "module_id": p.ModuleID, "type": string(p.Type)})
	}
}
