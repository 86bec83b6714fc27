package services

import "github.com/doctorsportal/portal-api/internal/models"

// DefaultBookingDate is used when the caller omits the date query parameter.
const DefaultBookingDate = "May 15, 2022"

// AvailableSlots removes every booked slot from each service's catalog. The
// bookings must already be filtered to the target date; they are indexed by
// treatment name first so the subtraction is linear in services, bookings and
// slots. Slot order is preserved and all other service fields are untouched.
func AvailableSlots(services []models.Service, bookings []models.Booking) []models.Service {
	bookedByTreatment := make(map[string]map[string]struct{}, len(bookings))
	for _, b := range bookings {
		set, ok := bookedByTreatment[b.Treatment]
		if !ok {
			set = make(map[string]struct{})
			bookedByTreatment[b.Treatment] = set
		}
		set[b.Slot] = struct{}{}
	}

	for i := range services {
		booked, ok := bookedByTreatment[services[i].Name]
		if !ok {
			continue
		}
		open := make([]string, 0, len(services[i].Slots))
		for _, slot := range services[i].Slots {
			if _, taken := booked[slot]; !taken {
				open = append(open, slot)
			}
		}
		services[i].Slots = open
	}
	return services
}
