package notify

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jhoicas/FireSafety-api/internal/application/equipment"
	"github.com/jhoicas/FireSafety-api/pkg/logger"
)

const defaultTimeout = 5 * time.Second

var _ equipment.Notifier = (*Dispatcher)(nil)

// assignmentPayload cuerpo JSON enviado al webhook.
type assignmentPayload struct {
	Event            string   `json:"event"`
	AssignmentID     string   `json:"assignment_id"`
	AssignmentNumber string   `json:"assignment_number"`
	VendorID         string   `json:"vendor_id"`
	ClientID         string   `json:"client_id"`
	InstanceIDs      []string `json:"instance_ids"`
	TotalCost        string   `json:"total_cost"`
	CreatedAt        string   `json:"created_at"`
}

// Dispatcher publica eventos de asignación de forma asíncrona.
// Sin URL de webhook solo registra el evento en el log.
type Dispatcher struct {
	client  *resty.Client
	url     string
	timeout time.Duration
	log     *logger.Logger
	wg      sync.WaitGroup
}

// NewDispatcher construye el despachador. webhookURL vacío = solo log.
func NewDispatcher(webhookURL string, timeout time.Duration, log *logger.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(200*time.Millisecond).
		SetRetryMaxWaitTime(time.Second).
		AddRetryCondition(retryServerError).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &Dispatcher{
		client:  client,
		url:     webhookURL,
		timeout: timeout,
		log:     log.Named("notify"),
	}
}

// AssignmentCreated envía el evento en segundo plano con su propio plazo. Nunca bloquea al llamador.
func (d *Dispatcher) AssignmentCreated(ctx context.Context, ev equipment.AssignmentEvent) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
		defer cancel()
		if err := d.send(ctx, ev); err != nil {
			d.log.Warn().Err(err).
				Str("assignment_id", ev.AssignmentID).
				Str("assignment_number", ev.AssignmentNumber).
				Msg("no se pudo notificar la asignación")
		}
	}()
}

// Wait espera a que terminen los envíos en curso (apagado ordenado, tests).
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// retryServerError reintenta respuestas 5xx; los 4xx no cambian al repetir.
func retryServerError(r *resty.Response, err error) bool {
	return err == nil && r != nil && r.StatusCode() >= http.StatusInternalServerError
}

func (d *Dispatcher) send(ctx context.Context, ev equipment.AssignmentEvent) error {
	d.log.Info().
		Str("assignment_id", ev.AssignmentID).
		Str("assignment_number", ev.AssignmentNumber).
		Str("vendor_id", ev.VendorID).
		Str("client_id", ev.ClientID).
		Int("instances", len(ev.InstanceIDs)).
		Msg("asignación creada")
	if d.url == "" {
		return nil
	}

	resp, err := d.client.R().
		SetContext(ctx).
		SetBody(assignmentPayload{
			Event:            "assignment.created",
			AssignmentID:     ev.AssignmentID,
			AssignmentNumber: ev.AssignmentNumber,
			VendorID:         ev.VendorID,
			ClientID:         ev.ClientID,
			InstanceIDs:      ev.InstanceIDs,
			TotalCost:        ev.TotalCost.StringFixed(2),
			CreatedAt:        ev.CreatedAt.UTC().Format(time.RFC3339),
		}).
		Post(d.url)
	if err != nil {
		return fmt.Errorf("webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("webhook respondió %d", resp.StatusCode())
	}
	return nil
}
