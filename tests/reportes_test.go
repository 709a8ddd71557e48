package tests

import (
	"context"
	"os"
	"testing"
	"time"

	"gasolinera/internal/dto"
	"gasolinera/internal/model"
	"gasolinera/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nuevoServicioReportes(t *testing.T) (service.ReporteService, *stubInventarioRepo, *stubProductoRepo) {
	invRepo := newStubInventarioRepo()
	productoRepo := newStubProductoRepo(
		model.Producto{ID: uuid.New(), Codigo: "AC-001", Nombre: "Aceite 15W40", Precio: dec("45.00"), Cantidad: 20},
	)
	svc := service.NewReporteService(invRepo, newStubVentaRepo(), newStubVentaCombRepo(), productoRepo, nil, t.TempDir())
	return svc, invRepo, productoRepo
}

func sembrarLedger(t *testing.T, repo *stubInventarioRepo) {
	t.Helper()
	filas := []model.InventarioCombustible{
		{TipoCombustibleID: 1, InventarioInicial: dec("0"), Entrada: dec("1000"), Salida: dec("0"),
			InventarioFinal: dec("1000"), Fecha: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{TipoCombustibleID: 1, InventarioInicial: dec("1000"), Entrada: dec("0"), Salida: dec("150"),
			InventarioFinal: dec("850"), Fecha: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), EsAutomatico: true},
	}
	for i := range filas {
		require.NoError(t, repo.Create(context.Background(), nil, &filas[i]))
	}
}

func TestGenerarReporte_PDF(t *testing.T) {
	svc, invRepo, _ := nuevoServicioReportes(t)
	sembrarLedger(t, invRepo)

	archivo, err := svc.Generar(context.Background(), dto.ReporteInventarioCombustible, "pdf", dto.ReporteFilter{
		FechaInicio: "2024-06-01", FechaFin: "2024-06-30",
	})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", archivo.ContentType)
	assert.Equal(t, "inventario_combustible_2024-06-01_2024-06-30.pdf", archivo.Nombre)
	assert.NotEmpty(t, archivo.Contenido)
	assert.Equal(t, "%PDF", string(archivo.Contenido[:4]))
}

func TestGenerarReporte_Excel(t *testing.T) {
	svc, invRepo, _ := nuevoServicioReportes(t)
	sembrarLedger(t, invRepo)

	archivo, err := svc.Generar(context.Background(), dto.ReporteInventarioCombustible, "excel", dto.ReporteFilter{
		FechaInicio: "2024-06-01", FechaFin: "2024-06-30",
	})
	require.NoError(t, err)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", archivo.ContentType)
	assert.Equal(t, "inventario_combustible_2024-06-01_2024-06-30.xlsx", archivo.Nombre)
	assert.NotEmpty(t, archivo.Contenido)
}

func TestGenerarReporte_InventarioProductos(t *testing.T) {
	svc, _, _ := nuevoServicioReportes(t)

	archivo, err := svc.Generar(context.Background(), dto.ReporteInventarioProductos, "pdf", dto.ReporteFilter{
		FechaInicio: "2024-06-01", FechaFin: "2024-06-30",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, archivo.Contenido)
}

func TestGenerarReporte_Validaciones(t *testing.T) {
	svc, _, _ := nuevoServicioReportes(t)
	ctx := context.Background()

	_, err := svc.Generar(ctx, "no-existe", "pdf", dto.ReporteFilter{FechaInicio: "2024-06-01", FechaFin: "2024-06-30"})
	assert.ErrorIs(t, err, service.ErrValidacion)

	_, err = svc.Generar(ctx, dto.ReporteInventarioCombustible, "csv", dto.ReporteFilter{FechaInicio: "2024-06-01", FechaFin: "2024-06-30"})
	assert.ErrorIs(t, err, service.ErrValidacion)

	_, err = svc.Generar(ctx, dto.ReporteInventarioCombustible, "pdf", dto.ReporteFilter{FechaInicio: "2024-06-30", FechaFin: "2024-06-01"})
	assert.ErrorIs(t, err, service.ErrValidacion)

	_, err = svc.Generar(ctx, dto.ReporteInventarioCombustible, "pdf", dto.ReporteFilter{FechaInicio: "junio", FechaFin: "2024-06-30"})
	assert.ErrorIs(t, err, service.ErrValidacion)
}

func TestGenerarYGuardar(t *testing.T) {
	svc, invRepo, _ := nuevoServicioReportes(t)
	sembrarLedger(t, invRepo)

	nombre, ruta, err := svc.GenerarYGuardar(context.Background(), dto.ReporteInventarioCombustible, "pdf", "2024-06-01", "2024-06-30")
	require.NoError(t, err)
	assert.Equal(t, "inventario_combustible_2024-06-01_2024-06-30.pdf", nombre)

	contenido, err := os.ReadFile(ruta)
	require.NoError(t, err)
	assert.NotEmpty(t, contenido)
}
