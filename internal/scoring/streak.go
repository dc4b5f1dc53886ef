package scoring

// StreakMilestones are the first streak lengths worth celebrating. Past the
// last one every multiple of MilestoneStep counts.
var StreakMilestones = []int{5, 10, 15, 20}

// MilestoneStep is the spacing of milestones beyond the fixed list.
const MilestoneStep = 5

// NextStreakMilestone returns the next milestone above the current streak.
func NextStreakMilestone(current int) int {
	for _, m := range StreakMilestones {
		if m > current {
			return m
		}
	}
	return ((current / MilestoneStep) + 1) * MilestoneStep
}

// IsMilestone reports whether a streak of n has just reached a milestone.
func IsMilestone(n int) bool {
	if n <= 0 {
		return false
	}
	return NextStreakMilestone(n-1) == n
}
