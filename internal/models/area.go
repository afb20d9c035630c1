package models

// CommonArea represents a shared amenity (palapa, roof garden, gym...).
type CommonArea struct {
	ID int64

	// Name is the unique display name of the area.
	Name string

	Description string

	// Location describes where the area is (e.g. "Planta baja").
	Location string

	// Capacity is the maximum number of people the area holds.
	Capacity int
}
