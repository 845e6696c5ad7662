package ports

type AccountingMetrics interface {
	RecordPass(ticks, starved int, moreRemaining bool)
	RecordConflict()
	RecordFailure()
}
