package clients

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bellinicahuanadevelopment/gestor-textil/internal/application/dto"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/auth"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/entity"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/repository"
)

// UseCase CRUD de clientes. Sin semántica de stock: los pedidos solo
// los enlazan para derivar datos de contacto.
type UseCase struct {
	clientRepo repository.ClientRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(clientRepo repository.ClientRepository) *UseCase {
	return &UseCase{clientRepo: clientRepo}
}

// Search lista clientes por texto libre; limit se acota a [1, 50].
func (uc *UseCase) Search(ctx context.Context, q string, limit int) ([]dto.ClientResponse, error) {
	if limit < 1 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	rows, err := uc.clientRepo.Search(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(rows))
	for _, c := range rows {
		out = append(out, toResponse(c))
	}
	return out, nil
}

// Create alta de cliente; nombre es obligatorio.
func (uc *UseCase) Create(ctx context.Context, principal auth.Principal, in dto.CreateClientRequest) (string, error) {
	if !principal.Valid() {
		return "", domain.ErrUnauthorized
	}
	if in.Nombre == "" {
		return "", domain.NewValidationError("nombre requerido")
	}
	client := &entity.Client{
		ID:               uuid.New().String(),
		Nombre:           in.Nombre,
		Direccion:        in.Direccion,
		DireccionEntrega: in.DireccionEntrega,
		Email:            in.Email,
		Telefono:         in.Telefono,
		PersonaContacto:  in.PersonaContacto,
		Ciudad:           in.Ciudad,
		Pais:             in.Pais,
		CreatedAt:        time.Now(),
	}
	if err := uc.clientRepo.Create(ctx, client); err != nil {
		return "", err
	}
	return client.ID, nil
}

// Get cliente por id.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.ClientResponse, error) {
	client, err := uc.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	resp := toResponse(client)
	return &resp, nil
}

func toResponse(c *entity.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:               c.ID,
		Nombre:           c.Nombre,
		Direccion:        c.Direccion,
		DireccionEntrega: c.DireccionEntrega,
		Email:            c.Email,
		Telefono:         c.Telefono,
		PersonaContacto:  c.PersonaContacto,
		Ciudad:           c.Ciudad,
		Pais:             c.Pais,
	}
}
