package tests

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"gasolinera/internal/dto"
	"gasolinera/internal/model"
	"gasolinera/internal/repository"
	"gasolinera/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory InventarioRepository stub ──────────────────────────────────────

type stubInventarioRepo struct {
	filas  map[int64]*model.InventarioCombustible
	nextID int64
}

func newStubInventarioRepo() *stubInventarioRepo {
	return &stubInventarioRepo{filas: make(map[int64]*model.InventarioCombustible), nextID: 1}
}

func (r *stubInventarioRepo) DB() *gorm.DB { return nil }

func (r *stubInventarioRepo) Create(_ context.Context, _ *gorm.DB, m *model.InventarioCombustible) error {
	m.ID = r.nextID
	r.nextID++
	copia := *m
	r.filas[m.ID] = &copia
	return nil
}

func (r *stubInventarioRepo) FindByID(_ context.Context, id int64) (*model.InventarioCombustible, error) {
	f, ok := r.filas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *f
	return &copia, nil
}

func (r *stubInventarioRepo) Update(_ context.Context, _ *gorm.DB, m *model.InventarioCombustible) error {
	if _, ok := r.filas[m.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copia := *m
	r.filas[m.ID] = &copia
	return nil
}

func (r *stubInventarioRepo) Delete(_ context.Context, _ *gorm.DB, id int64) error {
	delete(r.filas, id)
	return nil
}

func (r *stubInventarioRepo) ordenadas(tipoID int64) []model.InventarioCombustible {
	var out []model.InventarioCombustible
	for _, f := range r.filas {
		if f.TipoCombustibleID == tipoID {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Precede(&out[j]) })
	return out
}

func (r *stubInventarioRepo) UltimaFila(_ context.Context, _ *gorm.DB, tipoID int64) (*model.InventarioCombustible, error) {
	filas := r.ordenadas(tipoID)
	if len(filas) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	ultima := filas[len(filas)-1]
	return &ultima, nil
}

func (r *stubInventarioRepo) Posteriores(_ context.Context, _ *gorm.DB, tipoID int64, fecha time.Time, id int64) ([]model.InventarioCombustible, error) {
	pivote := model.InventarioCombustible{Fecha: fecha, ID: id}
	var out []model.InventarioCombustible
	for _, f := range r.ordenadas(tipoID) {
		if pivote.Precede(&f) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *stubInventarioRepo) NetoDespuesDe(_ context.Context, tipoID int64, fecha time.Time) (decimal.Decimal, error) {
	neto := decimal.Zero
	for _, f := range r.filas {
		if f.TipoCombustibleID == tipoID && f.Fecha.After(fecha) {
			neto = neto.Add(f.Entrada).Sub(f.Salida)
		}
	}
	return neto, nil
}

func (r *stubInventarioRepo) List(_ context.Context, filter dto.MovimientoFilter) ([]model.InventarioCombustible, int64, error) {
	var out []model.InventarioCombustible
	for _, f := range r.filas {
		if filter.Mes != 0 && int(f.Fecha.Month()) != filter.Mes {
			continue
		}
		if filter.Anio != 0 && f.Fecha.Year() != filter.Anio {
			continue
		}
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool { return out[j].Precede(&out[i]) })
	return out, int64(len(out)), nil
}

func (r *stubInventarioRepo) ListByRange(_ context.Context, desde, hasta time.Time) ([]model.InventarioCombustible, error) {
	var out []model.InventarioCombustible
	for _, f := range r.filas {
		if !f.Fecha.Before(desde) && !f.Fecha.After(hasta) {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *stubInventarioRepo) SumEntradasSalidas(_ context.Context) ([]repository.SaldoAgregado, error) {
	porTipo := make(map[int64]decimal.Decimal)
	for _, f := range r.filas {
		porTipo[f.TipoCombustibleID] = porTipo[f.TipoCombustibleID].Add(f.Entrada).Sub(f.Salida)
	}
	var out []repository.SaldoAgregado
	for tipoID, neto := range porTipo {
		out = append(out, repository.SaldoAgregado{
			TipoCombustibleID: tipoID,
			Nombre:            fmt.Sprintf("tipo-%d", tipoID),
			Neto:              neto,
		})
	}
	return out, nil
}

func (r *stubInventarioRepo) SalidasDelDia(_ context.Context, fecha time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, f := range r.filas {
		if f.EsAutomatico && f.Fecha.Equal(fecha) {
			total = total.Add(f.Salida)
		}
	}
	return total, nil
}

// ── In-memory TipoCombustibleRepository stub ─────────────────────────────────

type stubTipoRepo struct {
	tipos map[int64]*model.TipoCombustible
}

func newStubTipoRepo(tipos ...model.TipoCombustible) *stubTipoRepo {
	r := &stubTipoRepo{tipos: make(map[int64]*model.TipoCombustible)}
	for i := range tipos {
		t := tipos[i]
		r.tipos[t.ID] = &t
	}
	return r
}

func (r *stubTipoRepo) List(_ context.Context) ([]model.TipoCombustible, error) {
	var out []model.TipoCombustible
	for _, t := range r.tipos {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubTipoRepo) FindByID(_ context.Context, id int64) (*model.TipoCombustible, error) {
	t, ok := r.tipos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *stubTipoRepo) FindByNombre(_ context.Context, nombre string) (*model.TipoCombustible, error) {
	for _, t := range r.tipos {
		if t.Nombre == nombre {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubTipoRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.tipos[id]
	return ok, nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

const tipoDiesel int64 = 1

func nuevoServicioInventario() (service.InventarioService, *stubInventarioRepo) {
	repo := newStubInventarioRepo()
	tipos := newStubTipoRepo(model.TipoCombustible{ID: tipoDiesel, Nombre: "Diesel", Precio: decimal.NewFromFloat(28.50)})
	return service.NewInventarioService(repo, tipos), repo
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestRegistrarManual_EncadenaSaldos(t *testing.T) {
	svc, repo := nuevoServicioInventario()
	ctx := context.Background()

	entradas := []dto.RegistrarMovimientoRequest{
		{TipoCombustibleID: tipoDiesel, InventarioInicial: dec("0"), Entrada: dec("1000"), Salida: dec("0"), Fecha: "2024-01-01"},
		{TipoCombustibleID: tipoDiesel, InventarioInicial: dec("1000"), Entrada: dec("0"), Salida: dec("200"), Fecha: "2024-01-02"},
		{TipoCombustibleID: tipoDiesel, InventarioInicial: dec("800"), Entrada: dec("500"), Salida: dec("100"), Fecha: "2024-01-03"},
	}
	for _, req := range entradas {
		_, err := svc.RegistrarManual(ctx, req)
		require.NoError(t, err)
	}

	filas := repo.ordenadas(tipoDiesel)
	require.Len(t, filas, 3)
	assert.True(t, filas[0].InventarioInicial.IsZero())
	for i, f := range filas {
		esperado := f.InventarioInicial.Add(f.Entrada).Sub(f.Salida)
		assert.True(t, f.InventarioFinal.Equal(esperado), "fila %d: cierre %s", i, f.InventarioFinal)
		if i > 0 {
			assert.True(t, f.InventarioInicial.Equal(filas[i-1].InventarioFinal),
				"fila %d: apertura %s != cierre anterior %s", i, f.InventarioInicial, filas[i-1].InventarioFinal)
		}
	}
}

func TestRegistrarManual_FueraDeOrdenCascada(t *testing.T) {
	svc, repo := nuevoServicioInventario()
	ctx := context.Background()

	_, err := svc.RegistrarManual(ctx, dto.RegistrarMovimientoRequest{
		TipoCombustibleID: tipoDiesel, InventarioInicial: dec("500"), Entrada: dec("0"), Salida: dec("100"), Fecha: "2024-02-10",
	})
	require.NoError(t, err)

	// Inserted with an earlier date: the later row must be re-chained.
	_, err = svc.RegistrarManual(ctx, dto.RegistrarMovimientoRequest{
		TipoCombustibleID: tipoDiesel, InventarioInicial: dec("0"), Entrada: dec("500"), Salida: dec("0"), Fecha: "2024-02-01",
	})
	require.NoError(t, err)

	filas := repo.ordenadas(tipoDiesel)
	require.Len(t, filas, 2)
	assert.Equal(t, "2024-02-01", filas[0].Fecha.Format("2006-01-02"))
	assert.True(t, filas[1].InventarioInicial.Equal(filas[0].InventarioFinal))
	assert.True(t, filas[1].InventarioFinal.Equal(dec("400")))
}

func TestEditarManual_CascadaDiesel(t *testing.T) {
	svc, repo := nuevoServicioInventario()
	ctx := context.Background()

	primero, err := svc.RegistrarManual(ctx, dto.RegistrarMovimientoRequest{
		TipoCombustibleID: tipoDiesel, InventarioInicial: dec("0"), Entrada: dec("1000"), Salida: dec("0"), Fecha: "2024-01-01",
	})
	require.NoError(t, err)
	assert.True(t, primero.InventarioFinal.Equal(dec("1000")))

	segundo, err := svc.RegistrarManual(ctx, dto.RegistrarMovimientoRequest{
		TipoCombustibleID: tipoDiesel, InventarioInicial: dec("1000"), Entrada: dec("0"), Salida: dec("200"), Fecha: "2024-01-02",
	})
	require.NoError(t, err)
	assert.True(t, segundo.InventarioFinal.Equal(dec("800")))

	editado, err := svc.EditarManual(ctx, primero.ID, dto.EditarMovimientoRequest{
		TipoCombustibleID: tipoDiesel, InventarioInicial: dec("0"), Entrada: dec("1500"), Salida: dec("0"), Fecha: "2024-01-01",
	})
	require.NoError(t, err)
	assert.True(t, editado.InventarioFinal.Equal(dec("1500")))

	actualizado, err := repo.FindByID(ctx, segundo.ID)
	require.NoError(t, err)
	assert.True(t, actualizado.InventarioInicial.Equal(dec("1500")), "apertura: %s", actualizado.InventarioInicial)
	assert.True(t, actualizado.InventarioFinal.Equal(dec("1300")), "cierre: %s", actualizado.InventarioFinal)
}

func TestEditarManual_CascadaAtraviesaAutomaticos(t *testing.T) {
	svc, repo := nuevoServicioInventario()
	ctx := context.Background()

	primero, err := svc.RegistrarManual(ctx, dto.RegistrarMovimientoRequest{
		TipoCombustibleID: tipoDiesel, InventarioInicial: dec("0"), Entrada: dec("1000"), Salida: dec("0"), Fecha: "2024-03-01",
	})
	require.NoError(t, err)

	// A sale-generated withdrawal in the middle of the chain.
	fechaVenta, err := time.Parse("2006-01-02", "2024-03-02")
	require.NoError(t, err)
	autoID, err := svc.RegistrarAutomaticoTx(ctx, nil, tipoDiesel, dec("200"), fechaVenta)
	require.NoError(t, err)

	tercero, err := svc.RegistrarManual(ctx, dto.RegistrarMovimientoRequest{
		TipoCombustibleID: tipoDiesel, InventarioInicial: dec("800"), Entrada: dec("500"), Salida: dec("0"), Fecha: "2024-03-03",
	})
	require.NoError(t, err)
	assert.True(t, tercero.InventarioFinal.Equal(dec("1300")))

	// Editing the head re-chains the automatic row and everything after it.
	_, err = svc.EditarManual(ctx, primero.ID, dto.EditarMovimientoRequest{
		TipoCombustibleID: tipoDiesel, InventarioInicial: dec("0"), Entrada: dec("1500"), Salida: dec("0"), Fecha: "2024-03-01",
	})
	require.NoError(t, err)

	auto, err := repo.FindByID(ctx, autoID)
	require.NoError(t, err)
	assert.True(t, auto.EsAutomatico)
	assert.True(t, auto.InventarioInicial.Equal(dec("1500")), "apertura automática: %s", auto.InventarioInicial)
	assert.True(t, auto.InventarioFinal.Equal(dec("1300")), "cierre automático: %s", auto.InventarioFinal)

	ultimo, err := repo.FindByID(ctx, tercero.ID)
	require.NoError(t, err)
	assert.True(t, ultimo.InventarioInicial.Equal(dec("1300")))
	assert.True(t, ultimo.InventarioFinal.Equal(dec("1800")))

	saldo, err := svc.SaldoActual(ctx, tipoDiesel)
	require.NoError(t, err)
	assert.True(t, saldo.Saldo.Equal(dec("1800")), "saldo: %s", saldo.Saldo)
}

func TestEditarManual_RechazaAutomatico(t *testing.T) {
	svc, repo := nuevoServicioInventario()
	ctx := context.Background()

	id, err := svc.RegistrarAutomaticoTx(ctx, nil, tipoDiesel, dec("30"), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	antes, err := repo.FindByID(ctx, id)
	require.NoError(t, err)

	_, err = svc.EditarManual(ctx, id, dto.EditarMovimientoRequest{
		TipoCombustibleID: tipoDiesel, InventarioInicial: dec("0"), Entrada: dec("99"), Salida: dec("0"), Fecha: "2024-03-01",
	})
	assert.ErrorIs(t, err, service.ErrRegistroAutomatico)

	despues, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, antes, despues, "el movimiento automático no debe cambiar")
}

func TestEliminarManual_RechazaAutomatico(t *testing.T) {
	svc, repo := nuevoServicioInventario()
	ctx := context.Background()

	id, err := svc.RegistrarAutomaticoTx(ctx, nil, tipoDiesel, dec("10"), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	err = svc.EliminarManual(ctx, id)
	assert.ErrorIs(t, err, service.ErrRegistroAutomatico)
	_, err = repo.FindByID(ctx, id)
	assert.NoError(t, err)
}

func TestEliminarManual_Cascada(t *testing.T) {
	svc, repo := nuevoServicioInventario()
	ctx := context.Background()

	_, err := svc.RegistrarManual(ctx, dto.RegistrarMovimientoRequest{
		TipoCombustibleID: tipoDiesel, InventarioInicial: dec("0"), Entrada: dec("1000"), Salida: dec("0"), Fecha: "2024-01-01",
	})
	require.NoError(t, err)
	medio, err := svc.RegistrarManual(ctx, dto.RegistrarMovimientoRequest{
		TipoCombustibleID: tipoDiesel, InventarioInicial: dec("1000"), Entrada: dec("0"), Salida: dec("300"), Fecha: "2024-01-02",
	})
	require.NoError(t, err)
	ultimo, err := svc.RegistrarManual(ctx, dto.RegistrarMovimientoRequest{
		TipoCombustibleID: tipoDiesel, InventarioInicial: dec("700"), Entrada: dec("0"), Salida: dec("100"), Fecha: "2024-01-03",
	})
	require.NoError(t, err)

	require.NoError(t, svc.EliminarManual(ctx, medio.ID))

	_, err = repo.FindByID(ctx, medio.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	f, err := repo.FindByID(ctx, ultimo.ID)
	require.NoError(t, err)
	assert.True(t, f.InventarioInicial.Equal(dec("1000")), "apertura re-encadenada: %s", f.InventarioInicial)
	assert.True(t, f.InventarioFinal.Equal(dec("900")))
}

func TestRegistrarAutomatico_DescuentaSaldo(t *testing.T) {
	svc, _ := nuevoServicioInventario()
	ctx := context.Background()

	_, err := svc.RegistrarManual(ctx, dto.RegistrarMovimientoRequest{
		TipoCombustibleID: tipoDiesel, InventarioInicial: dec("0"), Entrada: dec("100"), Salida: dec("0"), Fecha: "2024-01-01",
	})
	require.NoError(t, err)

	antes, err := svc.SaldoActual(ctx, tipoDiesel)
	require.NoError(t, err)
	require.True(t, antes.Saldo.Equal(dec("100")))

	_, err = svc.RegistrarAutomaticoTx(ctx, nil, tipoDiesel, dec("30"), time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	despues, err := svc.SaldoActual(ctx, tipoDiesel)
	require.NoError(t, err)
	assert.True(t, despues.Saldo.Equal(dec("70")), "saldo: %s", despues.Saldo)
	assert.True(t, antes.Saldo.Sub(despues.Saldo).Equal(dec("30")))
}

func TestSaldoActual_LedgerVacio(t *testing.T) {
	svc, _ := nuevoServicioInventario()

	saldo, err := svc.SaldoActual(context.Background(), tipoDiesel)
	require.NoError(t, err)
	assert.True(t, saldo.Saldo.IsZero())
	assert.Equal(t, "Diesel", saldo.Nombre)
}

func TestSaldoActual_TipoInexistente(t *testing.T) {
	svc, _ := nuevoServicioInventario()

	_, err := svc.SaldoActual(context.Background(), 99)
	assert.ErrorIs(t, err, service.ErrNoEncontrado)
}

func TestRegistrarManual_Validaciones(t *testing.T) {
	svc, _ := nuevoServicioInventario()
	ctx := context.Background()

	_, err := svc.RegistrarManual(ctx, dto.RegistrarMovimientoRequest{
		TipoCombustibleID: tipoDiesel, Fecha: "01/01/2024",
	})
	assert.ErrorIs(t, err, service.ErrValidacion)

	_, err = svc.RegistrarManual(ctx, dto.RegistrarMovimientoRequest{
		TipoCombustibleID: tipoDiesel, Entrada: dec("-5"), Fecha: "2024-01-01",
	})
	assert.ErrorIs(t, err, service.ErrValidacion)

	_, err = svc.RegistrarManual(ctx, dto.RegistrarMovimientoRequest{
		TipoCombustibleID: 99, Entrada: dec("5"), Fecha: "2024-01-01",
	})
	assert.ErrorIs(t, err, service.ErrNoEncontrado)
}

func TestSaldosConsolidados(t *testing.T) {
	repo := newStubInventarioRepo()
	tipos := newStubTipoRepo(
		model.TipoCombustible{ID: 1, Nombre: "Diesel"},
		model.TipoCombustible{ID: 2, Nombre: "Super"},
	)
	svc := service.NewInventarioService(repo, tipos)
	ctx := context.Background()

	_, err := svc.RegistrarManual(ctx, dto.RegistrarMovimientoRequest{
		TipoCombustibleID: 1, InventarioInicial: dec("0"), Entrada: dec("100"), Salida: dec("40"), Fecha: "2024-01-01",
	})
	require.NoError(t, err)
	_, err = svc.RegistrarManual(ctx, dto.RegistrarMovimientoRequest{
		TipoCombustibleID: 2, InventarioInicial: dec("0"), Entrada: dec("250"), Salida: dec("0"), Fecha: "2024-01-01",
	})
	require.NoError(t, err)

	resp, err := svc.SaldosConsolidados(ctx)
	require.NoError(t, err)
	assert.Len(t, resp.Saldos, 2)
}
