package event

// Season is derived from the week number, 13-week bands over a 52-week year.
type Season string

const (
	Spring Season = "spring"
	Summer Season = "summer"
	Fall   Season = "fall"
	Winter Season = "winter"
)

func SeasonOf(week int) Season {
	switch w := week % 52; {
	case w >= 1 && w <= 13:
		return Spring
	case w >= 14 && w <= 26:
		return Summer
	case w >= 27 && w <= 39:
		return Fall
	default:
		return Winter
	}
}

// surgeSeason reports whether weather-sensitive events get their seasonal
// multiplier this week.
func surgeSeason(week int) bool {
	s := SeasonOf(week)
	return s == Summer || s == Fall
}
