package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/clubops/teesheet/internal/booking"
	"github.com/clubops/teesheet/internal/events"
	"github.com/clubops/teesheet/internal/folio"
	"github.com/clubops/teesheet/internal/frontdesk"
	"github.com/clubops/teesheet/internal/pricing"
	"github.com/clubops/teesheet/internal/resources"
	"github.com/shopspring/decimal"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// respondJSON is a helper to write a JSON response body.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// respondError maps domain errors onto HTTP status codes. Anything not in the
// taxonomy is a 500.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, booking.ErrNotFound), errors.Is(err, folio.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, booking.ErrInvalidTransition),
		errors.Is(err, booking.ErrNotCheckedIn),
		errors.Is(err, booking.ErrFolioNotSettled),
		errors.Is(err, folio.ErrUnsettledBalance),
		errors.Is(err, folio.ErrAlreadyVoided),
		errors.Is(err, folio.ErrChargeNotFound),
		errors.Is(err, resources.ErrResourceUnavailable):
		status = http.StatusConflict
	case errors.Is(err, booking.ErrInvalidParty),
		errors.Is(err, folio.ErrInvalidAmount),
		errors.Is(err, pricing.ErrInvalidPolicy):
		status = http.StatusBadRequest
	case errors.Is(err, booking.ErrVersionConflict), errors.Is(err, folio.ErrVersionConflict):
		status = http.StatusConflict
	}
	respondJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) TeeSheetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dateStr := r.URL.Query().Get("date")
		date := time.Now().UTC()
		if dateStr != "" {
			parsed, err := time.Parse("2006-01-02", dateStr)
			if err != nil {
				http.Error(w, "Invalid 'date' parameter, want YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			date = parsed
		}
		bookings, err := s.FrontDesk.TeeSheet(date)
		if err != nil {
			log.Error("Failed to list tee sheet", "date", dateStr, "error", err)
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, bookings)
	}
}

func (s *Server) CreateBookingHandler() http.HandlerFunc {
	type request struct {
		Date        string           `json:"date"`
		TeeTime     string           `json:"tee_time"`
		CourseID    string           `json:"course_id"`
		HolesBooked int              `json:"holes_booked"`
		Players     []booking.Player `json:"players"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			http.Error(w, "Invalid 'date', want YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		teeTime, err := time.Parse(time.RFC3339, req.TeeTime)
		if err != nil {
			http.Error(w, "Invalid 'tee_time', want RFC3339", http.StatusBadRequest)
			return
		}
		if req.HolesBooked == 0 {
			req.HolesBooked = 18
		}
		b, err := s.FrontDesk.CreateBooking(date, teeTime, req.CourseID, req.HolesBooked, req.Players)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, b)
	}
}

func (s *Server) GetBookingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := s.FrontDesk.Booking(r.URL.Query().Get("id"))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, b)
	}
}

func (s *Server) ConfirmBookingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := s.FrontDesk.Confirm(r.URL.Query().Get("id"))
		if err != nil {
			log.Error("Failed to confirm booking", "error", err)
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, b)
	}
}

func (s *Server) CheckInHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookingID := r.URL.Query().Get("id")
		isDryRun := isDryRunFromContext(r)

		var req frontdesk.CheckInRequest
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "Invalid JSON", http.StatusBadRequest)
				return
			}
		}

		b, err := s.FrontDesk.CheckIn(bookingID, req, isDryRun)
		if err != nil {
			log.Error("Failed to check in booking", "bookingID", bookingID, "error", err)
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, b)
	}
}

func (s *Server) CancelBookingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := s.FrontDesk.Cancel(r.URL.Query().Get("id"), r.URL.Query().Get("reason"))
		if err != nil {
			log.Error("Failed to cancel booking", "error", err)
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, b)
	}
}

func (s *Server) CompleteBookingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := s.FrontDesk.Complete(r.URL.Query().Get("id"))
		if err != nil {
			log.Error("Failed to complete booking", "error", err)
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, b)
	}
}

func (s *Server) RecordHolesPlayedHandler() http.HandlerFunc {
	type request struct {
		HolesPlayed int `json:"holes_played"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		b, err := s.FrontDesk.RecordHolesPlayed(r.URL.Query().Get("id"), req.HolesPlayed)
		if err != nil {
			log.Error("Failed to record holes played", "error", err)
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, b)
	}
}

func (s *Server) GetFolioHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			f   *folio.Folio
			err error
		)
		if bookingID := r.URL.Query().Get("bookingID"); bookingID != "" {
			f, err = s.FrontDesk.FolioByBooking(bookingID)
		} else {
			f, err = s.FrontDesk.Folio(r.URL.Query().Get("id"))
		}
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, folioView(f))
	}
}

// folioView decorates a folio with its derived totals for API consumers.
func folioView(f *folio.Folio) map[string]any {
	return map[string]any{
		"folio":          f,
		"total_charges":  f.TotalCharges(),
		"total_payments": f.TotalPayments(),
		"balance":        f.Balance(),
		"overpayment":    f.Overpayment(),
	}
}

func (s *Server) PostChargeHandler() http.HandlerFunc {
	type request struct {
		FolioID    string          `json:"folio_id"`
		ChargeType string          `json:"charge_type"`
		Amount     decimal.Decimal `json:"amount"`
		Source     string          `json:"source"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.Source == "" {
			req.Source = "manual"
		}
		charge, err := s.FrontDesk.PostCharge(req.FolioID, req.ChargeType, req.Amount, req.Source)
		if err != nil {
			log.Error("Failed to post charge", "folioID", req.FolioID, "error", err)
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, charge)
	}
}

func (s *Server) VoidChargeHandler() http.HandlerFunc {
	type request struct {
		FolioID  string `json:"folio_id"`
		ChargeID string `json:"charge_id"`
		Reason   string `json:"reason"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		f, err := s.FrontDesk.VoidCharge(req.FolioID, req.ChargeID, req.Reason)
		if err != nil {
			log.Error("Failed to void charge", "folioID", req.FolioID, "chargeID", req.ChargeID, "error", err)
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, folioView(f))
	}
}

func (s *Server) AddPaymentHandler() http.HandlerFunc {
	type request struct {
		FolioID string          `json:"folio_id"`
		Amount  decimal.Decimal `json:"amount"`
		Method  string          `json:"method"`
		Note    string          `json:"note"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		payment, err := s.FrontDesk.AddPayment(req.FolioID, req.Amount, req.Method, req.Note)
		if err != nil {
			log.Error("Failed to add payment", "folioID", req.FolioID, "error", err)
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, payment)
	}
}

func (s *Server) SettleFolioHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		folioID := r.URL.Query().Get("id")
		force := r.URL.Query().Get("force") == "true"
		isDryRun := isDryRunFromContext(r)

		f, err := s.FrontDesk.Settle(folioID, force, isDryRun)
		if err != nil {
			log.Error("Failed to settle folio", "folioID", folioID, "force", force, "error", err)
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, folioView(f))
	}
}

func (s *Server) UpsertRateCellHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cell pricing.RateCell
		if err := json.NewDecoder(r.Body).Decode(&cell); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if err := s.Rates.UpsertRateCell(cell); err != nil {
			log.Error("Failed to upsert rate cell", "error", err)
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Rate cell saved.")
	}
}

func (s *Server) TeamPolicyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			policy, err := s.Rates.GetTeamPricingPolicy()
			if err != nil {
				respondError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, policy)
			return
		}
		var policy pricing.TeamPricingPolicy
		if err := json.NewDecoder(r.Body).Decode(&policy); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if err := s.Rates.SetTeamPricingPolicy(policy); err != nil {
			log.Error("Failed to set team pricing policy", "error", err)
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Team pricing policy saved.")
	}
}

func (s *Server) IdentityTypesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			types, err := s.Rates.GetActiveIdentityTypes()
			if err != nil {
				respondError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, types)
			return
		}
		var it pricing.IdentityType
		if err := json.NewDecoder(r.Body).Decode(&it); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if err := s.Rates.UpsertIdentityType(it); err != nil {
			log.Error("Failed to upsert identity type", "code", it.Code, "error", err)
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Identity type saved.")
	}
}

func (s *Server) AddHolidayHandler() http.HandlerFunc {
	type request struct {
		Date string `json:"date"`
		Name string `json:"name"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			http.Error(w, "Invalid 'date', want YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		if err := s.Rates.AddHoliday(date, req.Name); err != nil {
			log.Error("Failed to add holiday", "date", req.Date, "error", err)
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Holiday saved.")
	}
}

func (s *Server) ListResourcesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := resources.Kind(r.URL.Query().Get("kind"))
		available, err := s.Catalog.ListAvailable(kind)
		if err != nil {
			log.Error("Failed to list resources", "kind", kind, "error", err)
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, available)
	}
}

func (s *Server) AddResourceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var res resources.Resource
		if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if err := s.Catalog.Add(res); err != nil {
			log.Error("Failed to add resource", "resourceID", res.ID, "error", err)
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintln(w, "Resource saved.")
	}
}

// EventPushHandler receives Pub/Sub push deliveries of domain events and
// records per-event-type counters so the audit trail survives restarts.
func (s *Server) EventPushHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received event push", "body", string(bodyBytes))
		// Define a small struct to decode the incoming JSON's `data` field
		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"` // base64-encoded message payload
			} `json:"message"`
		}

		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		var envelope events.Envelope
		if err := s.Events.Decode(rawData, &envelope); err != nil {
			log.Error("Failed to decode event envelope", "error", err)
			http.Error(w, "Invalid event payload", http.StatusBadRequest)
			return
		}

		log.Info("Domain event received", "type", envelope.Type, "bookingID", envelope.BookingID, "folioID", envelope.FolioID)
		s.MetricsStore.Increment("event:" + string(envelope.Type))
		w.Write([]byte("OK"))
	}
}

// EventStatsHandler reports the persisted per-event-type tallies recorded by
// EventPushHandler. Unlike /metrics these survive restarts.
func (s *Server) EventStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counters, err := s.MetricsStore.GetAll()
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, counters)
	}
}
