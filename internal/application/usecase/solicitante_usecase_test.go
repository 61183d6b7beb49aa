package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugelsanta/expedientes-api/internal/application/dto"
	"github.com/ugelsanta/expedientes-api/internal/application/usecase"
	"github.com/ugelsanta/expedientes-api/internal/domain"
	"github.com/ugelsanta/expedientes-api/internal/domain/entity"
	"github.com/ugelsanta/expedientes-api/internal/infrastructure/memory"
)

func TestSolicitanteCreate_Natural(t *testing.T) {
	uc := usecase.NewSolicitanteUseCase(memory.NewStore().Solicitantes())
	ctx := context.Background()

	res, err := uc.Create(ctx, dto.CreateSolicitanteRequest{
		NombreSolicitante: "  maría   del pilar QUISPE ",
		NombreTipo:        entity.TipoNatural,
		DNI:               "45612378",
		Email:             "Maria@Correo.PE",
	})
	require.NoError(t, err)
	assert.Equal(t, "María Del Pilar Quispe", res.NombreSolicitante)
	assert.Equal(t, "maria@correo.pe", res.Email)

	_, err = uc.Create(ctx, dto.CreateSolicitanteRequest{NombreSolicitante: "Otra", NombreTipo: entity.TipoNatural, DNI: "45612378"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CreateSolicitanteRequest{NombreSolicitante: "Otra", NombreTipo: entity.TipoNatural, DNI: "4561"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSolicitanteCreate_JuridicaConservaNombre(t *testing.T) {
	uc := usecase.NewSolicitanteUseCase(memory.NewStore().Solicitantes())
	ctx := context.Background()

	res, err := uc.Create(ctx, dto.CreateSolicitanteRequest{
		NombreSolicitante: "I.E.  N° 88047 SAN PEDRO",
		NombreTipo:        entity.TipoJuridica,
		CodigoModular:     "0345678",
	})
	require.NoError(t, err)
	assert.Equal(t, "I.E. N° 88047 SAN PEDRO", res.NombreSolicitante)
	assert.Empty(t, res.DNI)

	_, err = uc.Create(ctx, dto.CreateSolicitanteRequest{NombreSolicitante: "X", NombreTipo: entity.TipoJuridica})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateSolicitanteRequest{NombreSolicitante: "X", NombreTipo: "Otro"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSolicitanteBuscar(t *testing.T) {
	uc := usecase.NewSolicitanteUseCase(memory.NewStore().Solicitantes())
	ctx := context.Background()
	creado, err := uc.Create(ctx, dto.CreateSolicitanteRequest{NombreSolicitante: "Juan Soto", NombreTipo: entity.TipoNatural, DNI: "41112222"})
	require.NoError(t, err)

	encontrado, err := uc.Buscar(ctx, dto.SolicitanteListRequest{DNI: "41112222"})
	require.NoError(t, err)
	require.Len(t, encontrado, 1)
	assert.Equal(t, creado.ID, encontrado[0].ID)

	vacio, err := uc.Buscar(ctx, dto.SolicitanteListRequest{CodigoModular: "999"})
	require.NoError(t, err)
	assert.NotNil(t, vacio)
	assert.Empty(t, vacio)

	_, err = uc.Buscar(ctx, dto.SolicitanteListRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.GetByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
