package aggregate

// Canonical event types of the consolidated dataset. Anything else counts
// toward the period totals but not the breakdown bars.
const (
	EventFlood      = "INUNDACION"
	EventFlashFlood = "CRECIENTE SUBITA"
	EventStorm      = "TEMPORAL"
	EventTorrential = "AVENIDA TORRENCIAL"
)

// Summary feeds the KPI cards for one period.
type Summary struct {
	Events         int `json:"e"`
	Persons        int `json:"p"`
	Deaths         int `json:"m"`
	Municipalities int `json:"mu"`
}

// Breakdown counts the four canonical event types for one period.
type Breakdown struct {
	Floods      int `json:"IN"`
	FlashFloods int `json:"CS"`
	Storms      int `json:"TE"`
	Torrential  int `json:"AT"`
}

type statsAcc struct {
	summary   Summary
	breakdown Breakdown
	codes     map[string]struct{}
}

// Stats computes, for every year and month combination that has data, the
// global summary and the per-type breakdown. Both share the "year_month"
// key space with Rollup so every dashboard panel updates from one key.
func Stats(records []Record) (map[string]Summary, map[string]Breakdown) {
	accs := make(map[string]*statsAcc)

	for _, r := range records {
		keys := map[string]struct{}{
			Key(r.Year, r.Month): {},
			Key(r.Year, 0):       {},
			Key(0, r.Month):      {},
			Key(0, 0):            {},
		}

		for k := range keys {
			acc := accs[k]
			if acc == nil {
				acc = &statsAcc{codes: make(map[string]struct{})}
				accs[k] = acc
			}

			acc.summary.Events++
			acc.summary.Persons += r.Persons
			acc.summary.Deaths += r.Deaths
			acc.codes[r.Code] = struct{}{}

			switch r.Event {
			case EventFlood:
				acc.breakdown.Floods++
			case EventFlashFlood:
				acc.breakdown.FlashFloods++
			case EventStorm:
				acc.breakdown.Storms++
			case EventTorrential:
				acc.breakdown.Torrential++
			}
		}
	}

	summaries := make(map[string]Summary, len(accs))
	breakdowns := make(map[string]Breakdown, len(accs))

	for k, acc := range accs {
		acc.summary.Municipalities = len(acc.codes)
		summaries[k] = acc.summary
		breakdowns[k] = acc.breakdown
	}

	return summaries, breakdowns
}
