package digest

import (
	"fmt"
	"time"
)

// Mode is the digest run type, decided from the local wall clock.
type Mode int

const (
	ModeNone Mode = iota
	ModeMorning
	ModeMidday
	ModeEvening
)

func (m Mode) String() string {
	switch m {
	case ModeMorning:
		return "morning"
	case ModeMidday:
		return "midday"
	case ModeEvening:
		return "evening"
	default:
		return "none"
	}
}

// ResolveMode maps the current local time to a digest mode.
// 07:xx is morning, 12:xx is midday, 18:xx is evening; any other hour
// means no digest is scheduled and the run must be a no-op.
func ResolveMode(now time.Time) Mode {
	switch now.Hour() {
	case 7:
		return ModeMorning
	case 12:
		return ModeMidday
	case 18:
		return ModeEvening
	default:
		return ModeNone
	}
}

// Window returns the "new since X" look-back window for a mode.
// Morning covers today from midnight, midday covers everything new since
// the 07:00 morning digest, evening everything new since 17:00.
// The end of the window is always now.
func Window(mode Mode, now time.Time) (start, end time.Time) {
	y, m, d := now.Date()
	loc := now.Location()

	switch mode {
	case ModeMidday:
		start = time.Date(y, m, d, 7, 0, 0, 0, loc)
	case ModeEvening:
		start = time.Date(y, m, d, 17, 0, 0, 0, loc)
	default:
		start = time.Date(y, m, d, 0, 0, 0, 0, loc)
	}
	return start, now
}

// Titles holds the mail subject and report header texts for one run.
type Titles struct {
	Subject  string
	Header   string
	Subtitle string
}

// TitlesFor builds the Lithuanian subject/header/subtitle set for a mode.
func TitlesFor(mode Mode, dateStr string) Titles {
	switch mode {
	case ModeMidday:
		return Titles{
			Subject:  fmt.Sprintf("[Vidurdienio atnaujinimas] LRT naujienos — %s", dateStr),
			Header:   fmt.Sprintf("LRT vidurdienio naujienų atnaujinimas — %s", dateStr),
			Subtitle: "Naujos naujienos nuo 07:00 (ryto santraukos).",
		}
	case ModeEvening:
		return Titles{
			Subject:  fmt.Sprintf("[Vakaro apžvalga] LRT naujienos — %s", dateStr),
			Header:   fmt.Sprintf("LRT vakaro naujienų apžvalga — %s", dateStr),
			Subtitle: "Naujos naujienos nuo 17:00 (vidurdienio atnaujinimo).",
		}
	default:
		return Titles{
			Subject:  fmt.Sprintf("[Ryto santrauka] LRT naujienos — %s", dateStr),
			Header:   fmt.Sprintf("LRT ryto naujienų santrauka — %s", dateStr),
			Subtitle: "Svarbiausios šios dienos naujienos (nuo 00:00).",
		}
	}
}
