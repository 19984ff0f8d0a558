package apply_early_checkin_fee

import (
	"fmt"
	"math"
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// EarlyHours часы раннего заезда, округлённые вверх.
// Окно отсчитывается в день планового заезда: раньше earliest - ErrTooEarly,
// начиная с grace - ErrWithinGrace.
func EarlyHours(arrivedAt, plannedCheckIn time.Time, settings *domain.HotelSettings) (int, error) {
	day := domain.DateOf(plannedCheckIn, settings.Location)
	floor := settings.EarliestEarlyCheckIn.On(day)
	grace := settings.EarlyCheckInGrace.On(day)

	if arrivedAt.Before(floor) {
		return 0, fmt.Errorf("%w: arrival %s is before %s", ErrTooEarly,
			arrivedAt.In(settings.Location).Format(domain.DateTimeFormat), floor.Format(domain.DateTimeFormat))
	}
	if !arrivedAt.Before(grace) {
		return 0, ErrWithinGrace
	}

	return int(math.Ceil(grace.Sub(arrivedAt).Hours())), nil
}
