package agenda

const msPerHour = 60 * 60 * 1000

// representativeHour quantizes a manual position into the hour used to
// interleave automatic timed items around pinned ones. The mapping is
// fixed legacy behavior: changing it changes observable drag ordering.
func representativeHour(pos int) int {
	switch pos {
	case 0:
		return 3
	case 1:
		return 9
	case 2:
		return 15
	default:
		return 21
	}
}

// Less is the within-bucket ordering for every bucket except
// completed.
func Less(a, b Item) bool {
	return compare(a, b) < 0
}

// compare returns <0 when a sorts before b.
//
// Both manual: by pinned position. Both automatic: timed before
// untimed, timed by time-of-day then priority, untimed by priority.
// Mixed: an untimed automatic item sorts after every manual item; a
// timed one is slotted by comparing its hour-of-day against the manual
// item's representative hour, with the manual item winning exact-hour
// ties so it stays where the user put it.
func compare(a, b Item) int {
	aManual := a.Task.ManualPosition != nil
	bManual := b.Task.ManualPosition != nil

	switch {
	case aManual && bManual:
		return *a.Task.ManualPosition - *b.Task.ManualPosition

	case !aManual && !bManual:
		aTime, bTime := a.Task.DueTime, b.Task.DueTime
		if aTime != nil && bTime != nil {
			if d := *aTime - *bTime; d != 0 {
				return d
			}
			return a.Task.Priority - b.Task.Priority
		}
		if aTime != nil {
			return -1
		}
		if bTime != nil {
			return 1
		}
		return a.Task.Priority - b.Task.Priority
	}

	auto, manual := a, b
	autoIsA := true
	if aManual {
		auto, manual = b, a
		autoIsA = false
	}

	if auto.Task.DueTime == nil {
		if autoIsA {
			return 1
		}
		return -1
	}

	autoHour := *auto.Task.DueTime / msPerHour
	res := autoHour - representativeHour(*manual.Task.ManualPosition)
	if res == 0 {
		res = 1 // manual item stays anchored
	}
	if autoIsA {
		return res
	}
	return -res
}

// CompletedLess orders the completed bucket: most recently completed
// first, items without a completion instant last.
func CompletedLess(a, b Item) bool {
	return completedCompare(a, b) < 0
}

func completedCompare(a, b Item) int {
	aAt, bAt := a.Task.CompletedAt, b.Task.CompletedAt
	switch {
	case aAt == nil && bAt == nil:
		return 0
	case aAt == nil:
		return 1
	case bAt == nil:
		return -1
	case aAt.After(*bAt):
		return -1
	case bAt.After(*aAt):
		return 1
	}
	return 0
}
