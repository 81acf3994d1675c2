package models

// ServiceType is what a customer asked for when joining a queue.
type ServiceType string

const (
	ServiceHaircut      ServiceType = "haircut"
	ServiceBeard        ServiceType = "beard"
	ServiceHaircutBeard ServiceType = "haircut+beard"
)

// Valid reports whether s is one of the offered services. The empty value is
// allowed and means the customer did not say.
func (s ServiceType) Valid() bool {
	switch s {
	case "", ServiceHaircut, ServiceBeard, ServiceHaircutBeard:
		return true
	}
	return false
}
