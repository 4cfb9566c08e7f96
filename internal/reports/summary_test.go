package reports

import "testing"

func occupancyRow(region, premises, bed string, booked, online, void int) OccupancyRow {
	return OccupancyRow{
		Location: Location{ProbationRegion: region, PDU: "PDU", PremisesName: premises, BedName: bed},
		Occupancy: Occupancy{
			TotalBookedDays: booked,
			OnlineDays:      online,
			VoidDays:        void,
		},
	}
}

func TestSummarisePremises(t *testing.T) {
	rows := []Row{
		occupancyRow("Yorkshire", "Hope House", "Room 2", 10, 31, 0),
		occupancyRow("Kent", "Oak Lodge", "Room 1", 31, 31, 0),
		occupancyRow("Yorkshire", "Hope House", "Room 1", 6, 31, 3),
		GapRow{GapDays: 4},
	}

	summaries, total := SummarisePremises(rows)
	if len(summaries) != 2 {
		t.Fatalf("summaries = %+v", summaries)
	}
	if summaries[0].PremisesName != "Oak Lodge" || summaries[0].OccupancyRate() != 1 {
		t.Fatalf("first summary = %+v", summaries[0])
	}
	hope := summaries[1]
	if hope.Bedspaces != 2 || hope.TotalBookedDays != 16 || hope.OnlineDays != 62 || hope.VoidDays != 3 {
		t.Fatalf("hope house = %+v", hope)
	}
	if total.Bedspaces != 3 || total.TotalBookedDays != 47 || total.OnlineDays != 93 {
		t.Fatalf("total = %+v", total)
	}
}

func TestSummarisePremises_Empty(t *testing.T) {
	summaries, total := SummarisePremises(nil)
	if len(summaries) != 0 || total.Bedspaces != 0 {
		t.Fatalf("summaries %+v total %+v", summaries, total)
	}
	if total.OccupancyRate() != 0 {
		t.Fatalf("rate = %v", total.OccupancyRate())
	}
}
