package tests

import (
	"context"
	"testing"
	"time"

	"gasolinera/internal/dto"
	"gasolinera/internal/model"
	"gasolinera/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory VentaRepository stub ───────────────────────────────────────────

type stubVentaRepo struct {
	ventas map[uuid.UUID]*model.Venta
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[uuid.UUID]*model.Venta)}
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

func (r *stubVentaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	copia := *v
	r.ventas[v.ID] = &copia
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *stubVentaRepo) List(_ context.Context, _ dto.VentaFilter) ([]model.Venta, int64, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVentaRepo) ListByRange(_ context.Context, _, _ time.Time) ([]model.Venta, error) {
	return nil, nil
}

func (r *stubVentaRepo) TotalDelDia(_ context.Context, _ time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (r *stubVentaRepo) UnidadesDelDia(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func (r *stubVentaRepo) TopProductos(_ context.Context, _ int) ([]dto.ProductoVendido, error) {
	return nil, nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

type entornoVenta struct {
	carrito   service.CarritoService
	ventas    service.VentaService
	store     *memCarritoStore
	repo      *stubVentaRepo
	productos *stubProductoRepo
	aceite    model.Producto
}

func nuevoEntornoVenta() *entornoVenta {
	aceite := model.Producto{ID: uuid.New(), Codigo: "AC-001", Nombre: "Aceite 15W40", Precio: dec("45.00"), Cantidad: 10}

	store := newMemCarritoStore()
	productoRepo := newStubProductoRepo(aceite)
	clienteRepo := newStubClienteRepo()
	ventaRepo := newStubVentaRepo()

	return &entornoVenta{
		carrito:   service.NewCarritoService(store, productoRepo, clienteRepo),
		ventas:    service.NewVentaService(ventaRepo, productoRepo, store),
		store:     store,
		repo:      ventaRepo,
		productos: productoRepo,
		aceite:    aceite,
	}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestFinalizarVenta_CarritoVacio(t *testing.T) {
	env := nuevoEntornoVenta()

	_, err := env.ventas.Finalizar(context.Background(), sesion, dto.FinalizarVentaRequest{MetodoPago: "Efectivo"})
	assert.ErrorIs(t, err, service.ErrValidacion)
}

func TestFinalizarVenta_DescuentaStockYLimpiaCarrito(t *testing.T) {
	env := nuevoEntornoVenta()
	ctx := context.Background()

	_, err := env.carrito.AgregarItem(ctx, sesion, dto.AgregarItemRequest{ProductoID: env.aceite.ID.String(), Cantidad: 3})
	require.NoError(t, err)

	resp, err := env.ventas.Finalizar(ctx, sesion, dto.FinalizarVentaRequest{MetodoPago: "Efectivo"})
	require.NoError(t, err)

	// subtotal 135, IVA 16.20, total 151.20
	assert.True(t, resp.Subtotal.Equal(dec("135")))
	assert.True(t, resp.IVA.Equal(dec("16.20")), "iva: %s", resp.IVA)
	assert.True(t, resp.Total.Equal(dec("151.20")), "total: %s", resp.Total)

	p, err := env.productos.FindByID(ctx, env.aceite.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, p.Cantidad)

	carrito, err := env.carrito.Ver(ctx, sesion)
	require.NoError(t, err)
	assert.Empty(t, carrito.Items)

	assert.Len(t, env.repo.ventas, 1)
}

func TestFinalizarVenta_ConDescuento(t *testing.T) {
	env := nuevoEntornoVenta()
	ctx := context.Background()

	_, err := env.carrito.AgregarItem(ctx, sesion, dto.AgregarItemRequest{ProductoID: env.aceite.ID.String(), Cantidad: 2})
	require.NoError(t, err)

	descuento := dec("10")
	resp, err := env.ventas.Finalizar(ctx, sesion, dto.FinalizarVentaRequest{MetodoPago: "Tarjeta", Descuento: &descuento})
	require.NoError(t, err)

	// subtotal 90, base 80, IVA 9.60, total 89.60
	assert.True(t, resp.Subtotal.Equal(dec("90")))
	assert.True(t, resp.Descuento.Equal(dec("10")))
	assert.True(t, resp.IVA.Equal(dec("9.60")), "iva: %s", resp.IVA)
	assert.True(t, resp.Total.Equal(dec("89.60")), "total: %s", resp.Total)
}

func TestFinalizarVenta_StockInsuficiente(t *testing.T) {
	env := nuevoEntornoVenta()
	ctx := context.Background()

	_, err := env.carrito.AgregarItem(ctx, sesion, dto.AgregarItemRequest{ProductoID: env.aceite.ID.String(), Cantidad: 11})
	require.NoError(t, err)

	_, err = env.ventas.Finalizar(ctx, sesion, dto.FinalizarVentaRequest{MetodoPago: "Efectivo"})
	assert.ErrorIs(t, err, service.ErrStockInsuficiente)

	// Nothing persisted, the cart survives for a retry.
	assert.Empty(t, env.repo.ventas)
	carrito, err := env.carrito.Ver(ctx, sesion)
	require.NoError(t, err)
	assert.Len(t, carrito.Items, 1)

	p, err := env.productos.FindByID(ctx, env.aceite.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, p.Cantidad)
}

func TestFinalizarVenta_OversellDetectadoEnTransaccion(t *testing.T) {
	env := nuevoEntornoVenta()
	ctx := context.Background()

	_, err := env.carrito.AgregarItem(ctx, sesion, dto.AgregarItemRequest{ProductoID: env.aceite.ID.String(), Cantidad: 3})
	require.NoError(t, err)

	// The pre-flight check passes; the conditional UPDATE then loses the race
	// against a concurrent sale.
	env.productos.errDescontar = gorm.ErrRecordNotFound

	_, err = env.ventas.Finalizar(ctx, sesion, dto.FinalizarVentaRequest{MetodoPago: "Efectivo"})
	assert.ErrorIs(t, err, service.ErrStockInsuficiente)
	assert.NotErrorIs(t, err, service.ErrTransaccion)
}

func TestFinalizarVenta_DescuentoNegativo(t *testing.T) {
	env := nuevoEntornoVenta()
	ctx := context.Background()

	_, err := env.carrito.AgregarItem(ctx, sesion, dto.AgregarItemRequest{ProductoID: env.aceite.ID.String(), Cantidad: 1})
	require.NoError(t, err)

	descuento := dec("-1")
	_, err = env.ventas.Finalizar(ctx, sesion, dto.FinalizarVentaRequest{MetodoPago: "Efectivo", Descuento: &descuento})
	assert.ErrorIs(t, err, service.ErrValidacion)
}
