package availability

import (
	"errors"
	"fmt"
	"time"

	reservationModel "rentwheels/internal/domains/reservation/model"
	"rentwheels/shared/timezone"
)

var ErrInvalidRange = errors.New("end date is before start date")

const (
	ReturnsToday    = "Returns today"
	ReturnsTomorrow = "Returns tomorrow"
	OverdueReturn   = "Overdue return"
)

// Transition is a reservation whose rental period has ended and whose car
// should be released.
type Transition struct {
	ReservationID string
	CarID         string
	CarName       string
}

// ComputeCost prices a rental at pricePerDay for every calendar day between
// start and end, charging at least one day.
func ComputeCost(pricePerDay float64, start, end time.Time) (float64, error) {
	days := timezone.DaysBetween(start, end)
	if days < 0 {
		return 0, ErrInvalidRange
	}

	return pricePerDay * float64(max(1, days)), nil
}

// ReturnInfo describes when a rental ending on end comes back, seen from today.
func ReturnInfo(end, today time.Time) string {
	days := timezone.DaysBetween(today, end)

	switch {
	case days < 0:
		return OverdueReturn
	case days == 0:
		return ReturnsToday
	case days == 1:
		return ReturnsTomorrow
	default:
		return fmt.Sprintf("Returns in %d days", days)
	}
}

// Reconcile lists the transitions due today: every Upcoming reservation whose
// end date is today or earlier. Completed reservations are ignored, so running
// it again over the same data yields nothing new once applied.
func Reconcile(reservations []reservationModel.Reservation, today time.Time) []Transition {
	transitions := []Transition{}

	for _, reservation := range reservations {
		if !reservation.IsUpcoming() {
			continue
		}

		if timezone.DaysBetween(reservation.EndDate, today) < 0 {
			continue
		}

		transitions = append(transitions, Transition{
			ReservationID: reservation.ID,
			CarID:         reservation.CarID,
			CarName:       reservation.CarName,
		})
	}

	return transitions
}
