package domain

import "time"

// CaptainStatus represents whether a captain is taking rides.
type CaptainStatus string

const (
	CaptainStatusActive   CaptainStatus = "active"
	CaptainStatusInactive CaptainStatus = "inactive"
)

// VehicleType is the kind of vehicle a captain drives.
type VehicleType string

const (
	VehicleTypeCar        VehicleType = "car"
	VehicleTypeMotorcycle VehicleType = "motorcycle"
	VehicleTypeAuto       VehicleType = "auto"
)

// Valid reports whether t is one of the supported vehicle types.
func (t VehicleType) Valid() bool {
	switch t {
	case VehicleTypeCar, VehicleTypeMotorcycle, VehicleTypeAuto:
		return true
	}
	return false
}

// Vehicle describes the vehicle registered with a captain.
type Vehicle struct {
	Color    string
	Plate    string
	Capacity int
	Type     VehicleType
}

// Captain represents a driver account.
type Captain struct {
	ID        string
	FullName  FullName
	Email     string
	Password  string
	Status    CaptainStatus
	Vehicle   Vehicle
	CreatedAt time.Time
}
