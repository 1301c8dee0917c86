package service

import "errors"

var (
	// ErrInvalidCredentials is returned when email or password do not match an account.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUserExists is returned when registering an email that already has a user.
	ErrUserExists = errors.New("user already exists")

	// ErrCaptainExists is returned when registering an email that already has a captain.
	ErrCaptainExists = errors.New("captain already exists")

	// ErrRegistrationInProgress is returned when another registration holds the email lock.
	ErrRegistrationInProgress = errors.New("registration already in progress for this email")

	// ErrInvalidVehicle is returned when the vehicle type or capacity is not acceptable.
	ErrInvalidVehicle = errors.New("invalid vehicle")

	// ErrTokenRevoked is returned when a token was invalidated by logout.
	ErrTokenRevoked = errors.New("token has been revoked")
)
