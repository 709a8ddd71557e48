package worker

// reporte_worker.go
// Processes report jobs from QueueReportes: renders the requested report to
// disk and mails it as an attachment. Failures land in the DLQ.

import (
	"context"
	"encoding/json"
	"fmt"

	"gasolinera/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ReporteJobPayload is the job envelope sent to QueueReportes.
type ReporteJobPayload struct {
	JobID       string `json:"job_id"`
	Tipo        string `json:"tipo"`
	Formato     string `json:"formato"`
	FechaInicio string `json:"fecha_inicio"`
	FechaFin    string `json:"fecha_fin"`
	Email       string `json:"email"`
}

// ReporteGenerator renders a report to the storage path and returns its
// file name and absolute path. Implemented by the report service.
type ReporteGenerator interface {
	GenerarYGuardar(ctx context.Context, tipo, formato, fechaInicio, fechaFin string) (nombre, ruta string, err error)
}

type ReporteWorker struct {
	gen    ReporteGenerator
	mailer *infra.Mailer
}

func NewReporteWorker(gen ReporteGenerator, mailer *infra.Mailer) *ReporteWorker {
	return &ReporteWorker{gen: gen, mailer: mailer}
}

func (w *ReporteWorker) Process(ctx context.Context, rdb *redis.Client, raw json.RawMessage) {
	var payload ReporteJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("reporte_worker: invalid payload")
		return
	}
	if payload.Email == "" {
		log.Warn().Str("job_id", payload.JobID).Msg("reporte_worker: empty email, skipping delivery")
		return
	}

	nombre, ruta, err := w.gen.GenerarYGuardar(ctx, payload.Tipo, payload.Formato, payload.FechaInicio, payload.FechaFin)
	if err != nil {
		log.Error().Err(err).Str("job_id", payload.JobID).Msg("reporte_worker: generation failed")
		SendToDLQ(ctx, rdb, QueueReportes, "reporte", raw, err.Error(), 1)
		return
	}

	subject := fmt.Sprintf("Reporte %s (%s a %s)", payload.Tipo, payload.FechaInicio, payload.FechaFin)
	body := fmt.Sprintf("Se adjunta el reporte %s generado para el período %s a %s.", nombre, payload.FechaInicio, payload.FechaFin)
	if err := w.mailer.SendReporte(payload.Email, subject, body, ruta); err != nil {
		log.Error().Err(err).Str("to", payload.Email).Str("job_id", payload.JobID).Msg("reporte_worker: failed to send email")
		SendToDLQ(ctx, rdb, QueueReportes, "reporte", raw, err.Error(), 1)
		return
	}

	log.Info().Str("to", payload.Email).Str("reporte", nombre).Str("job_id", payload.JobID).Msg("reporte_worker: reporte sent successfully")
}
