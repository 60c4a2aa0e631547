package notify

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Message kinds sent to patients and doctors around the booking
// lifecycle.
const (
	KindBookingConfirmed = "booking_confirmed" // to the patient
	KindBookingReceived  = "booking_received"  // to the doctor
	KindStatusChanged    = "status_changed"
)

type Message struct {
	Kind          string
	AppointmentID uint
	DoctorID      uint
	PatientID     uint
	Status        string
	StartTime     time.Time
}

// Notifier is the delivery collaborator (mail, SMS, push). Transport
// lives outside this service; the default sink just logs.
type Notifier interface {
	Notify(msg Message) error
}

type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(l zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: l}
}

func (n *LogNotifier) Notify(msg Message) error {
	n.log.Info().
		Str("kind", msg.Kind).
		Uint("appointment_id", msg.AppointmentID).
		Uint("doctor_id", msg.DoctorID).
		Uint("patient_id", msg.PatientID).
		Str("status", msg.Status).
		Time("start_time", msg.StartTime).
		Msg("notification")
	return nil
}

// Dispatcher delivers messages off the request path; a full queue
// drops rather than blocks, notifications are best-effort.
type Dispatcher struct {
	notifier Notifier
	queue    chan Message
}

func NewDispatcher(n Notifier) *Dispatcher {
	d := &Dispatcher{
		notifier: n,
		queue:    make(chan Message, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for msg := range d.queue {
		if err := d.notifier.Notify(msg); err != nil {
			log.Error().Err(err).Str("kind", msg.Kind).Msg("notification failed")
		}
	}
}

func (d *Dispatcher) Dispatch(msg Message) {
	select {
	case d.queue <- msg:
	default:
		log.Warn().Str("kind", msg.Kind).Msg("notify queue full, dropping message")
	}
}
