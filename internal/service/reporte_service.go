package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gasolinera/internal/dto"
	"gasolinera/internal/infra"
	"gasolinera/internal/repository"
	"gasolinera/internal/worker"

	"github.com/rs/zerolog/log"
)

// ReporteArchivo is a rendered report ready to stream or store.
type ReporteArchivo struct {
	Nombre      string
	ContentType string
	Contenido   []byte
}

type ReporteService interface {
	// Generar renders a report synchronously for direct download.
	Generar(ctx context.Context, tipo, formato string, filter dto.ReporteFilter) (*ReporteArchivo, error)
	// Encolar queues generation and e-mail delivery on the worker pool.
	Encolar(ctx context.Context, req dto.EnviarReporteRequest) (*dto.EnviarReporteResponse, error)
	// GenerarYGuardar renders to the storage path; used by the report worker.
	GenerarYGuardar(ctx context.Context, tipo, formato, fechaInicio, fechaFin string) (nombre, ruta string, err error)
}

type reporteService struct {
	inventarioRepo repository.InventarioRepository
	ventaRepo      repository.VentaRepository
	ventaCombRepo  repository.VentaCombustibleRepository
	productoRepo   repository.ProductoRepository
	dispatcher     *worker.Dispatcher
	storagePath    string
}

func NewReporteService(
	inventarioRepo repository.InventarioRepository,
	ventaRepo repository.VentaRepository,
	ventaCombRepo repository.VentaCombustibleRepository,
	productoRepo repository.ProductoRepository,
	dispatcher *worker.Dispatcher,
	storagePath string,
) ReporteService {
	return &reporteService{
		inventarioRepo: inventarioRepo,
		ventaRepo:      ventaRepo,
		ventaCombRepo:  ventaCombRepo,
		productoRepo:   productoRepo,
		dispatcher:     dispatcher,
		storagePath:    storagePath,
	}
}

func (s *reporteService) Generar(ctx context.Context, tipo, formato string, filter dto.ReporteFilter) (*ReporteArchivo, error) {
	desde, err := parseFecha(filter.FechaInicio)
	if err != nil {
		return nil, err
	}
	hasta, err := parseFecha(filter.FechaFin)
	if err != nil {
		return nil, err
	}
	if hasta.Before(desde) {
		return nil, fmt.Errorf("%w: fecha_fin es anterior a fecha_inicio", ErrValidacion)
	}

	tabla, err := s.tabla(ctx, tipo, desde, hasta)
	if err != nil {
		return nil, err
	}

	var contenido []byte
	var contentType, extension string
	switch formato {
	case "pdf":
		contenido, err = infra.GenerarReportePDF(tabla)
		contentType = "application/pdf"
		extension = "pdf"
	case "excel":
		contenido, err = infra.GenerarReporteExcel(tabla)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		extension = "xlsx"
	default:
		return nil, fmt.Errorf("%w: formato %q", ErrValidacion, formato)
	}
	if err != nil {
		return nil, err
	}

	nombre := fmt.Sprintf("%s_%s_%s.%s", tipo, filter.FechaInicio, filter.FechaFin, extension)
	return &ReporteArchivo{Nombre: nombre, ContentType: contentType, Contenido: contenido}, nil
}

func (s *reporteService) Encolar(ctx context.Context, req dto.EnviarReporteRequest) (*dto.EnviarReporteResponse, error) {
	if _, err := parseFecha(req.FechaInicio); err != nil {
		return nil, err
	}
	if _, err := parseFecha(req.FechaFin); err != nil {
		return nil, err
	}

	jobID, err := s.dispatcher.EnqueueReporte(ctx, worker.ReporteJobPayload{
		Tipo:        req.Tipo,
		Formato:     req.Formato,
		FechaInicio: req.FechaInicio,
		FechaFin:    req.FechaFin,
		Email:       req.Email,
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("job_id", jobID).Str("tipo", req.Tipo).Str("email", req.Email).Msg("reporte encolado")
	return &dto.EnviarReporteResponse{
		Mensaje: "El reporte se generará y enviará por correo",
		JobID:   jobID,
	}, nil
}

func (s *reporteService) GenerarYGuardar(ctx context.Context, tipo, formato, fechaInicio, fechaFin string) (string, string, error) {
	archivo, err := s.Generar(ctx, tipo, formato, dto.ReporteFilter{FechaInicio: fechaInicio, FechaFin: fechaFin})
	if err != nil {
		return "", "", err
	}
	if err := os.MkdirAll(s.storagePath, 0o755); err != nil {
		return "", "", err
	}
	ruta := filepath.Join(s.storagePath, archivo.Nombre)
	if err := os.WriteFile(ruta, archivo.Contenido, 0o644); err != nil {
		return "", "", err
	}
	return archivo.Nombre, ruta, nil
}

// ── Table builders ────────────────────────────────────────────────────────────

func (s *reporteService) tabla(ctx context.Context, tipo string, desde, hasta time.Time) (*infra.TablaReporte, error) {
	subtitulo := fmt.Sprintf("Del %s al %s", desde.Format("2006-01-02"), hasta.Format("2006-01-02"))

	switch tipo {
	case dto.ReporteInventarioCombustible:
		filas, err := s.inventarioRepo.ListByRange(ctx, desde, hasta)
		if err != nil {
			return nil, err
		}
		t := infra.TablaReporte{
			Titulo:    "Inventario de Combustible",
			Subtitulo: subtitulo,
			Columnas:  []string{"Fecha", "Combustible", "Inv. Inicial", "Entrada", "Salida", "Inv. Final", "Origen"},
		}
		for _, m := range filas {
			nombre := ""
			if m.TipoCombustible != nil {
				nombre = m.TipoCombustible.Nombre
			}
			origen := "Manual"
			if m.EsAutomatico {
				origen = "Venta"
			}
			t.Filas = append(t.Filas, []string{
				m.Fecha.Format("2006-01-02"), nombre,
				m.InventarioInicial.StringFixed(2), m.Entrada.StringFixed(2),
				m.Salida.StringFixed(2), m.InventarioFinal.StringFixed(2), origen,
			})
		}
		return &t, nil

	case dto.ReporteVentasCombustible:
		ventas, err := s.ventaCombRepo.ListByRange(ctx, desde, hasta)
		if err != nil {
			return nil, err
		}
		t := infra.TablaReporte{
			Titulo:    "Ventas de Combustible",
			Subtitulo: subtitulo,
			Columnas:  []string{"Fecha", "Cliente", "Combustible", "Litros", "Precio", "Subtotal", "Método de Pago"},
		}
		for _, v := range ventas {
			cliente := ""
			if v.Cliente != nil {
				cliente = v.Cliente.Nombre
			}
			for _, d := range v.Detalles {
				nombre := ""
				if d.TipoCombustible != nil {
					nombre = d.TipoCombustible.Nombre
				}
				t.Filas = append(t.Filas, []string{
					v.Fecha.Format("2006-01-02"), cliente, nombre,
					d.CantidadLitros.StringFixed(2), d.PrecioUnitario.StringFixed(2),
					d.Subtotal.StringFixed(2), v.MetodoPago,
				})
			}
		}
		return &t, nil

	case dto.ReporteVentasProductos:
		ventas, err := s.ventaRepo.ListByRange(ctx, desde, hasta)
		if err != nil {
			return nil, err
		}
		t := infra.TablaReporte{
			Titulo:    "Ventas de Productos",
			Subtitulo: subtitulo,
			Columnas:  []string{"Fecha", "Producto", "Cantidad", "Precio", "Subtotal", "Método de Pago"},
		}
		for _, v := range ventas {
			for _, d := range v.Detalles {
				nombre := ""
				if d.Producto != nil {
					nombre = d.Producto.Nombre
				}
				t.Filas = append(t.Filas, []string{
					v.Fecha.Format("2006-01-02"), nombre,
					fmt.Sprintf("%d", d.Cantidad), d.Precio.StringFixed(2),
					d.Subtotal.StringFixed(2), v.MetodoPago,
				})
			}
		}
		return &t, nil

	case dto.ReporteInventarioProductos:
		productos, err := s.productoRepo.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		t := infra.TablaReporte{
			Titulo:    "Inventario de Productos",
			Subtitulo: time.Now().Format("2006-01-02"),
			Columnas:  []string{"Código", "Nombre", "Precio", "Existencias"},
		}
		for _, p := range productos {
			t.Filas = append(t.Filas, []string{
				p.Codigo, p.Nombre, p.Precio.StringFixed(2), fmt.Sprintf("%d", p.Cantidad),
			})
		}
		return &t, nil
	}

	return nil, fmt.Errorf("%w: tipo de reporte %q", ErrValidacion, tipo)
}
