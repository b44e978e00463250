package dto

// CreateClientRequest alta de cliente; solo nombre es obligatorio.
type CreateClientRequest struct {
	Nombre           string `json:"nombre"`
	Direccion        string `json:"direccion"`
	DireccionEntrega string `json:"direccion_entrega"`
	Email            string `json:"email"`
	Telefono         string `json:"telefono"`
	PersonaContacto  string `json:"persona_contacto"`
	Ciudad           string `json:"ciudad"`
	Pais             string `json:"pais"`
}

// ClientResponse cliente para listados y detalle.
type ClientResponse struct {
	ID               string `json:"id"`
	Nombre           string `json:"nombre"`
	Direccion        string `json:"direccion"`
	DireccionEntrega string `json:"direccion_entrega"`
	Email            string `json:"email"`
	Telefono         string `json:"telefono"`
	PersonaContacto  string `json:"persona_contacto"`
	Ciudad           string `json:"ciudad"`
	Pais             string `json:"pais"`
}
