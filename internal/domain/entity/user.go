package entity

import "time"

// User usuario del sistema. Solo se usa para atribución (creador de productos y movimientos).
type User struct {
	ID        string
	Username  string // único
	Email     string // único
	FullName  string
	CreatedAt time.Time
}
