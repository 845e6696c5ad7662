package resource

// Holder is anything backed by a Level. Tank, StorageBox and Battery satisfy
// it through their embedded Level when addressed by pointer.
type Holder interface {
	level() *Level
}

// FillAll spreads amount across holders in order and returns the leftover.
func FillAll[H Holder](holders []H, amount int) int {
	if amount <= 0 {
		return 0
	}
	for _, h := range holders {
		amount = h.level().FillUp(amount)
		if amount == 0 {
			return 0
		}
	}
	return amount
}

func Total[H Holder](holders []H) int {
	total := 0
	for _, h := range holders {
		total += h.level().Current
	}
	return total
}

func HeadroomAll[H Holder](holders []H) int {
	total := 0
	for _, h := range holders {
		total += h.level().Headroom()
	}
	return total
}

// ConsumeAll draws amount from holders in order. Either the whole amount is
// taken or nothing changes.
func ConsumeAll[H Holder](holders []H, amount int) bool {
	if amount < 0 || Total(holders) < amount {
		return false
	}
	for _, h := range holders {
		l := h.level()
		take := l.Current
		if take > amount {
			take = amount
		}
		l.Current -= take
		amount -= take
		if amount == 0 {
			break
		}
	}
	return true
}
