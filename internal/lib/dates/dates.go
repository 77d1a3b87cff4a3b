package dates

import (
	"errors"
	"strings"
	"time"

	"FarmBot/entity"
)

var ErrUnrecognized = errors.New("unrecognized date")

// accepted numeric layouts, tried in order
var layouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
}

// Parse turns free-form user input into a calendar date. The Arabic and
// English words for today and yesterday are understood before the
// numeric layouts are tried.
func Parse(text string) (entity.Date, error) {
	return ParseAt(text, time.Now())
}

func ParseAt(text string, now time.Time) (entity.Date, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	switch s {
	case "today", "اليوم":
		return entity.NewDate(now), nil
	case "yesterday", "أمس", "امس":
		return entity.NewDate(now.AddDate(0, 0, -1)), nil
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, strings.TrimSpace(text)); err == nil {
			return entity.NewDate(t), nil
		}
	}
	return entity.Date{}, ErrUnrecognized
}
