package domain

import (
	"sort"
	"time"
)

// BookingGroups read-time projection of a booking set into the three
// presentation groups. The completed status is never written by the system:
// a confirmed booking whose date has elapsed classifies as past without a
// persisted transition
type BookingGroups struct {
	Upcoming  []*Booking
	Past      []*Booking
	Cancelled []*Booking
}

// ClassifyBookings splits bookings into upcoming/past/cancelled relative to now:
//   - upcoming: confirmed and the date is today or later, ascending by start
//   - past: not cancelled and (the date has elapsed or status is completed),
//     descending by start
//   - cancelled: status is cancelled
func ClassifyBookings(bookings []*Booking, now time.Time) BookingGroups {
	groups := BookingGroups{
		Upcoming:  make([]*Booking, 0),
		Past:      make([]*Booking, 0),
		Cancelled: make([]*Booking, 0),
	}

	today := truncateToDay(now)

	for _, b := range bookings {
		switch {
		case b.IsCancelled():
			groups.Cancelled = append(groups.Cancelled, b)
		case b.Status == StatusConfirmed && !truncateToDay(b.BookingDate).Before(today):
			groups.Upcoming = append(groups.Upcoming, b)
		case truncateToDay(b.BookingDate).Before(today) || b.Status == StatusCompleted:
			groups.Past = append(groups.Past, b)
		}
	}

	sort.SliceStable(groups.Upcoming, func(i, j int) bool {
		return groups.Upcoming[i].StartDateTime().Before(groups.Upcoming[j].StartDateTime())
	})
	sort.SliceStable(groups.Past, func(i, j int) bool {
		return groups.Past[i].StartDateTime().After(groups.Past[j].StartDateTime())
	})
	sort.SliceStable(groups.Cancelled, func(i, j int) bool {
		return groups.Cancelled[i].StartDateTime().After(groups.Cancelled[j].StartDateTime())
	})

	return groups
}

// truncateToDay обнуляет время, оставляя только дату
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
