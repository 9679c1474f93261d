package schedule

import "sort"

// PackLanes assigns lanes to positioned appointments so that appointments
// overlapping within a column are drawn side by side instead of on top of one
// another.
//
// Within each column, appointments are grouped into clusters of transitively
// overlapping appointments. Each cluster is greedily packed into the fewest
// lanes (an appointment takes the lowest lane that is free at its start) and
// every member of the cluster is told the cluster's lane count. Appointments
// overlapping nothing keep lane 0 of 1.
//
// Offsets and heights are not changed. The input is not modified; the result
// has the same order.
func PackLanes(in []PositionedAppointment) []PositionedAppointment {
	positioned := make([]PositionedAppointment, len(in))
	copy(positioned, in)

	byColumn := make(map[int][]int)
	for i := range positioned {
		c := positioned[i].Column
		byColumn[c] = append(byColumn[c], i)
	}

	for _, indices := range byColumn {
		sort.SliceStable(indices, func(a, b int) bool {
			return positioned[indices[a]].StartMinute < positioned[indices[b]].StartMinute
		})
		packColumn(positioned, indices)
	}
	return positioned
}

// packColumn packs the appointments at the given indices, which must be in
// order of start.
func packColumn(positioned []PositionedAppointment, indices []int) {
	var cluster []int
	var laneEnds []int
	clusterEnd := -1

	flush := func() {
		for _, i := range cluster {
			positioned[i].Lanes = len(laneEnds)
		}
		cluster = cluster[:0]
		laneEnds = laneEnds[:0]
	}

	for _, i := range indices {
		p := &positioned[i]
		if p.StartMinute >= clusterEnd {
			flush()
		}

		lane := -1
		for l, end := range laneEnds {
			if end <= p.StartMinute {
				lane = l
				break
			}
		}
		if lane == -1 {
			laneEnds = append(laneEnds, p.EndMinute)
			lane = len(laneEnds) - 1
		} else {
			laneEnds[lane] = p.EndMinute
		}
		p.Lane = lane

		cluster = append(cluster, i)
		if p.EndMinute > clusterEnd {
			clusterEnd = p.EndMinute
		}
	}
	flush()
}
