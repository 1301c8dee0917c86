// Package signup implements the captain signup flow used by client applications:
// form state, the registration request and what happens after the server answers.
package signup

import "sync"

// FullName is the nested name block of a registration payload.
type FullName struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

// VehiclePayload is the vehicle block of a registration payload.
// Capacity is sent exactly as typed; the server parses it.
type VehiclePayload struct {
	Color       string `json:"color"`
	Plate       string `json:"plate"`
	Capacity    string `json:"capacity"`
	VehicleType string `json:"vehicleType"`
}

// Payload is the JSON body of POST /captains/register.
type Payload struct {
	FullName FullName       `json:"fullname"`
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Vehicle  VehiclePayload `json:"vehicle"`
}

// FormErrors is the error state shown next to the form.
// The server answers with either a single message or a message per field path
// (for example "email" or "vehicle.plate"); whichever it sent is kept.
type FormErrors struct {
	Message string
	Fields  map[string]string
}

// Empty reports whether there is nothing to show.
func (e FormErrors) Empty() bool {
	return e.Message == "" && len(e.Fields) == 0
}

// Field returns the error for a field path, if any.
func (e FormErrors) Field(path string) string {
	return e.Fields[path]
}

// Form holds the captain signup inputs. The zero value is an empty form.
type Form struct {
	mu sync.RWMutex

	firstName       string
	lastName        string
	email           string
	password        string
	vehicleColor    string
	vehiclePlate    string
	vehicleCapacity string
	vehicleType     string

	errors FormErrors
}

func (f *Form) set(field *string, value string) {
	f.mu.Lock()
	*field = value
	f.mu.Unlock()
}

// SetFirstName sets the captain's first name.
func (f *Form) SetFirstName(v string) { f.set(&f.firstName, v) }

// SetLastName sets the captain's last name.
func (f *Form) SetLastName(v string) { f.set(&f.lastName, v) }

// SetEmail sets the account email.
func (f *Form) SetEmail(v string) { f.set(&f.email, v) }

// SetPassword sets the account password.
func (f *Form) SetPassword(v string) { f.set(&f.password, v) }

// SetVehicleColor sets the vehicle color.
func (f *Form) SetVehicleColor(v string) { f.set(&f.vehicleColor, v) }

// SetVehiclePlate sets the vehicle plate.
func (f *Form) SetVehiclePlate(v string) { f.set(&f.vehiclePlate, v) }

// SetVehicleCapacity sets the vehicle capacity as typed.
func (f *Form) SetVehicleCapacity(v string) { f.set(&f.vehicleCapacity, v) }

// SetVehicleType sets the vehicle type: car, motorcycle or auto.
func (f *Form) SetVehicleType(v string) { f.set(&f.vehicleType, v) }

// Payload assembles the registration body from the current inputs.
// Nothing is validated or trimmed.
func (f *Form) Payload() Payload {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return Payload{
		FullName: FullName{
			FirstName: f.firstName,
			LastName:  f.lastName,
		},
		Email:    f.email,
		Password: f.password,
		Vehicle: VehiclePayload{
			Color:       f.vehicleColor,
			Plate:       f.vehiclePlate,
			Capacity:    f.vehicleCapacity,
			VehicleType: f.vehicleType,
		},
	}
}

// Errors returns the current error state.
func (f *Form) Errors() FormErrors {
	f.mu.RLock()
	defer f.mu.RUnlock()

	fields := make(map[string]string, len(f.errors.Fields))
	for k, v := range f.errors.Fields {
		fields[k] = v
	}
	return FormErrors{Message: f.errors.Message, Fields: fields}
}

func (f *Form) setErrors(e FormErrors) {
	f.mu.Lock()
	f.errors = e
	f.mu.Unlock()
}

// Reset clears every input. The error state is left alone.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.firstName = ""
	f.lastName = ""
	f.email = ""
	f.password = ""
	f.vehicleColor = ""
	f.vehiclePlate = ""
	f.vehicleCapacity = ""
	f.vehicleType = ""
}
