package entity

import "time"

// Tenant es la frontera de aislamiento: toda entidad y toda consulta
// pertenecen a exactamente un tenant.
type Tenant struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
