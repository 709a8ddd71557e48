package dto

type CrearClienteRequest struct {
	Nombre string `json:"nombre" validate:"required,max=120"`
}

type ClienteResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}
