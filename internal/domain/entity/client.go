package entity

import "time"

// Client cliente de la operación; sin semántica de stock.
// Un pedido puede enlazarlo para derivar los datos de contacto.
type Client struct {
	ID               string
	Nombre           string
	Direccion        string
	DireccionEntrega string
	Email            string
	Telefono         string
	PersonaContacto  string
	Ciudad           string
	Pais             string
	CreatedAt        time.Time
}
