package enums

import "fmt"

// AppointmentStatus tracks the lifecycle state of a scheduled appointment.
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

var validAppointmentStatuses = []AppointmentStatus{
	AppointmentStatusScheduled,
	AppointmentStatusCompleted,
	AppointmentStatusCancelled,
}

// String implements fmt.Stringer.
func (s AppointmentStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is known.
func (s AppointmentStatus) IsValid() bool {
	for _, candidate := range validAppointmentStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseAppointmentStatus converts raw input into an AppointmentStatus.
func ParseAppointmentStatus(value string) (AppointmentStatus, error) {
	for _, candidate := range validAppointmentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid appointment status %q", value)
}

// ServiceType describes what a workshop appointment is booked for.
type ServiceType string

const (
	ServiceTypeModification ServiceType = "modification"
	ServiceTypeConsultation ServiceType = "consultation"
	ServiceTypeMaintenance  ServiceType = "maintenance"
	ServiceTypeRepair       ServiceType = "repair"
	ServiceTypeInspection   ServiceType = "inspection"
	ServiceTypeOther        ServiceType = "other"
)

var validServiceTypes = []ServiceType{
	ServiceTypeModification,
	ServiceTypeConsultation,
	ServiceTypeMaintenance,
	ServiceTypeRepair,
	ServiceTypeInspection,
	ServiceTypeOther,
}

// String implements fmt.Stringer.
func (s ServiceType) String() string {
	return string(s)
}

// IsValid reports whether the value is known.
func (s ServiceType) IsValid() bool {
	for _, candidate := range validServiceTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseServiceType converts raw input into a ServiceType.
func ParseServiceType(value string) (ServiceType, error) {
	for _, candidate := range validServiceTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid service type %q", value)
}
