package reports

import "slices"

// PremisesSummary totals bedspace occupancy for one premises.
type PremisesSummary struct {
	ProbationRegion string
	PDU             string
	PremisesName    string
	Bedspaces       int
	OnlineDays      int
	TotalBookedDays int
	VoidDays        int
}

// OccupancyRate is booked days over online days, 0 with no online days.
func (s PremisesSummary) OccupancyRate() float64 {
	if s.OnlineDays == 0 {
		return 0
	}
	return float64(s.TotalBookedDays) / float64(s.OnlineDays)
}

// SummarisePremises groups bedspace occupancy rows by premises. Rows of other
// report types are ignored. The result is in location order and its last
// return value totals every premises.
func SummarisePremises(rows []Row) ([]PremisesSummary, PremisesSummary) {
	type premisesKey struct {
		region, pdu, premises string
	}
	index := make(map[premisesKey]int)
	var summaries []PremisesSummary
	var total PremisesSummary

	for _, row := range rows {
		occupancyRow, ok := row.(OccupancyRow)
		if !ok {
			continue
		}
		key := premisesKey{occupancyRow.ProbationRegion, occupancyRow.PDU, occupancyRow.PremisesName}
		i, seen := index[key]
		if !seen {
			i = len(summaries)
			index[key] = i
			summaries = append(summaries, PremisesSummary{
				ProbationRegion: key.region,
				PDU:             key.pdu,
				PremisesName:    key.premises,
			})
		}
		for _, s := range []*PremisesSummary{&summaries[i], &total} {
			s.Bedspaces++
			s.OnlineDays += occupancyRow.OnlineDays
			s.TotalBookedDays += occupancyRow.TotalBookedDays
			s.VoidDays += occupancyRow.VoidDays
		}
	}

	slices.SortStableFunc(summaries, func(a, b PremisesSummary) int {
		return compareLocation(
			Location{ProbationRegion: a.ProbationRegion, PDU: a.PDU, PremisesName: a.PremisesName},
			Location{ProbationRegion: b.ProbationRegion, PDU: b.PDU, PremisesName: b.PremisesName},
		)
	})
	return summaries, total
}
