package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"heybanco/internal/chat"
	"heybanco/internal/core"
	"heybanco/internal/services"
)

// Wire shapes. Field names follow the dashboard's existing payloads:
// derived expenses use the processed-expense fields, the spend review and
// prediction keep their Spanish keys.
type (
	expenseDTO struct {
		ID       int    `json:"id"`
		Name     string `json:"name"`
		Category string `json:"category"`
		Amount   int64  `json:"amount"`
		Date     int    `json:"date"`
		Reminder bool   `json:"reminder"`
	}

	categoryDTO struct {
		Category   string  `json:"category"`
		Name       string  `json:"name"`
		Amount     int64   `json:"amount"`
		Count      int     `json:"count"`
		Percentage float64 `json:"percentage"`
	}

	totalsDTO struct {
		TotalFixed    int64 `json:"total_fixed"`
		TotalVariable int64 `json:"total_variable"`
		GrandTotal    int64 `json:"grand_total"`
	}

	upcomingDTO struct {
		expenseDTO
		DaysUntil int    `json:"days_until"`
		Status    string `json:"status"`
	}

	summaryDTO struct {
		Year        int           `json:"year"`
		Month       int           `json:"month"`
		Today       int           `json:"today"`
		DaysInMonth int           `json:"days_in_month"`
		Expenses    []expenseDTO  `json:"expenses"`
		Categories  []categoryDTO `json:"categories"`
		Totals      totalsDTO     `json:"totals"`
		Upcoming    []upcomingDTO `json:"upcoming"`
	}

	monthSpendDTO struct {
		Mes   string  `json:"mes"`
		Gasto float64 `json:"gasto"`
	}

	monthlyChangeDTO struct {
		PromedioCambio float64 `json:"promedio_cambio_porcentual"`
		PromedioMonto  float64 `json:"promedio_monto_mensual"`
		MayorIncremento struct {
			Mes             string  `json:"Mes"`
			CambioPorcentual float64 `json:"cambio_porcentual"`
		} `json:"mayor_incremento"`
		TrimestreMasActivo string          `json:"trimestre_mas_activo"`
		GastoPorMes        []monthSpendDTO `json:"gasto_por_mes"`
	}

	predictedDTO struct {
		Comercio  string  `json:"comercio"`
		PredMonto float64 `json:"pred_monto"`
	}

	predictionDTO struct {
		Top5         []predictedDTO `json:"top5"`
		TotalMensual float64        `json:"total_mensual"`
		TotalAnual   float64        `json:"total_anual"`
	}

	goalDTO struct {
		Name             string  `json:"name"`
		Description      string  `json:"description"`
		StartingAmount   float64 `json:"startingAmount"`
		ChangePercentage float64 `json:"changePercentage"`
	}
)

func toExpenseDTO(e core.CategorizedExpense) expenseDTO {
	return expenseDTO{
		ID:       e.ID,
		Name:     e.MerchantName,
		Category: string(e.Category),
		Amount:   e.Amount,
		Date:     e.DueDay,
		Reminder: e.ReminderEnabled,
	}
}

func toSummaryDTO(s *services.CalendarSummary) summaryDTO {
	dto := summaryDTO{
		Year:        s.Year,
		Month:       int(s.Month),
		Today:       s.Today,
		DaysInMonth: s.DaysInMonth,
		Expenses:    make([]expenseDTO, 0, len(s.Expenses)),
		Categories:  make([]categoryDTO, 0, len(s.Distribution)),
		Totals: totalsDTO{
			TotalFixed:    s.Totals.FixedTotal,
			TotalVariable: s.Totals.VariableTotal,
			GrandTotal:    s.Totals.GrandTotal,
		},
		Upcoming: make([]upcomingDTO, 0, len(s.Upcoming)),
	}

	for _, e := range s.Expenses {
		dto.Expenses = append(dto.Expenses, toExpenseDTO(e))
	}
	for i, share := range s.Distribution {
		dto.Categories = append(dto.Categories, categoryDTO{
			Category:   string(share.Category),
			Name:       share.DisplayName,
			Amount:     share.Amount,
			Count:      s.Buckets[i].MemberCount,
			Percentage: share.Percent,
		})
	}
	for _, u := range s.Upcoming {
		dto.Upcoming = append(dto.Upcoming, upcomingDTO{
			expenseDTO: toExpenseDTO(u.CategorizedExpense),
			DaysUntil:  u.DaysUntil,
			Status:     string(u.Status),
		})
	}
	return dto
}

func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

// refDate resolves the reference date: query overrides first, the server
// clock otherwise.
func (s *Server) refDate(r *http.Request) time.Time {
	ref := s.now()
	year, month, day := ref.Year(), int(ref.Month()), ref.Day()

	q := r.URL.Query()
	if v := strings.TrimSpace(q.Get("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			year = y
		}
	}
	if v := strings.TrimSpace(q.Get("month")); v != "" {
		if m, err := strconv.Atoi(v); err == nil && m >= 1 && m <= 12 {
			month = m
		}
	}
	if v := strings.TrimSpace(q.Get("day")); v != "" {
		if d, err := strconv.Atoi(v); err == nil && d >= 1 && d <= 31 {
			day = d
		}
	}

	day = core.ClampDueDay(day, year, time.Month(month))
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func (s *Server) cachedSummary(r *http.Request) (*services.CalendarSummary, error) {
	ref := s.refDate(r)
	key := ref.Format("2006-01-02")

	if summary, ok := s.summaryCache.Get(key); ok {
		slog.DebugContext(r.Context(), "Summary cache hit", "date", key)
		return summary, nil
	}

	summary, err := s.analysis.CalendarSummary(r.Context(), ref)
	if err != nil {
		return nil, err
	}
	s.summaryCache.Set(key, summary)
	return summary, nil
}

// handleRecurringCharges serves the raw ordered snapshot in its source
// format.
func (s *Server) handleRecurringCharges(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	charges, err := s.analysis.Charges(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Fetch charges failed", "error", err)
		writeError(w, http.StatusBadGateway, "recurring charges unavailable")
		return
	}

	writeJSON(w, http.StatusOK, charges)
}

func (s *Server) handleCalendarSummary(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	summary, err := s.cachedSummary(r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Calendar summary failed", "error", err)
		writeError(w, http.StatusBadGateway, "calendar summary unavailable")
		return
	}

	writeJSON(w, http.StatusOK, toSummaryDTO(summary))
}

func (s *Server) handleCalendarDay(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	dayStr := strings.TrimSpace(r.URL.Query().Get("day"))
	day, err := strconv.Atoi(dayStr)
	if err != nil || day < 1 || day > 31 {
		writeError(w, http.StatusBadRequest, "day must be between 1 and 31")
		return
	}

	key := strconv.Itoa(day)
	summary, ok := s.dayCache.Get(key)
	if !ok {
		summary, err = s.analysis.DaySummary(r.Context(), day)
		if err != nil {
			slog.ErrorContext(r.Context(), "Day summary failed", "error", err, "day", day)
			writeError(w, http.StatusBadGateway, "day summary unavailable")
			return
		}
		s.dayCache.Set(key, summary)
	}

	expenses := make([]expenseDTO, 0, len(summary.Expenses))
	for _, e := range summary.Expenses {
		expenses = append(expenses, toExpenseDTO(e))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"day":      summary.Day,
		"expenses": expenses,
		"total":    summary.Total,
	})
}

func (s *Server) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	summary, err := s.cachedSummary(r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Upcoming payments failed", "error", err)
		writeError(w, http.StatusBadGateway, "upcoming payments unavailable")
		return
	}

	upcoming := make([]upcomingDTO, 0, len(summary.Upcoming))
	for _, u := range summary.Upcoming {
		upcoming = append(upcoming, upcomingDTO{
			expenseDTO: toExpenseDTO(u.CategorizedExpense),
			DaysUntil:  u.DaysUntil,
			Status:     string(u.Status),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"today":    summary.Today,
		"upcoming": upcoming,
	})
}

func (s *Server) handleMonthlyChange(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	review, ok := s.reviewCache.Get("review")
	if !ok {
		var err error
		review, err = s.analysis.SpendReview(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "Spend review failed", "error", err)
			writeError(w, http.StatusBadGateway, "spend history unavailable")
			return
		}
		s.reviewCache.Set("review", review)
	}

	var dto monthlyChangeDTO
	dto.PromedioCambio = review.Summary.AveragePercentChange
	dto.PromedioMonto = review.Summary.AverageMonthlyAmount.Float()
	if m := review.Summary.BiggestIncrease.Month; m >= 1 && m <= 12 {
		dto.MayorIncremento.Mes = core.MonthNames[m-1]
	}
	dto.MayorIncremento.CambioPorcentual = review.Summary.BiggestIncrease.PercentChange
	dto.TrimestreMasActivo = review.Summary.MostActiveQuarter
	dto.GastoPorMes = make([]monthSpendDTO, 0, len(review.Series))
	for _, m := range review.Series {
		name := ""
		if m.Month >= 1 && m.Month <= 12 {
			name = core.MonthNames[m.Month-1]
		}
		dto.GastoPorMes = append(dto.GastoPorMes, monthSpendDTO{Mes: name, Gasto: m.Amount.Float()})
	}

	writeJSON(w, http.StatusOK, dto)
}

func (s *Server) handlePredictedFuture(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	p, err := s.analysis.PredictedFuture(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Prediction failed", "error", err)
		writeError(w, http.StatusBadGateway, "prediction unavailable")
		return
	}

	dto := predictionDTO{
		Top5:         make([]predictedDTO, 0, len(p.TopCharges)),
		TotalMensual: float64(p.MonthlyTotal),
		TotalAnual:   float64(p.AnnualTotal),
	}
	for _, c := range p.TopCharges {
		dto.Top5 = append(dto.Top5, predictedDTO{
			Comercio:  c.MerchantName,
			PredMonto: float64(c.AnnualAmount),
		})
	}

	writeJSON(w, http.StatusOK, dto)
}

func (s *Server) handleTopPlaces(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	if s.places == nil {
		writeError(w, http.StatusServiceUnavailable, "places dataset unavailable")
		return
	}
	writeJSON(w, http.StatusOK, s.places)
}

func (s *Server) handleGoals(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	goals, err := s.analysis.Goals(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Goals fetch failed", "error", err)
		writeError(w, http.StatusBadGateway, "goals unavailable")
		return
	}

	dtos := make([]goalDTO, 0, len(goals))
	for _, g := range goals {
		dtos = append(dtos, goalDTO{
			Name:             g.Name,
			Description:      g.Description,
			StartingAmount:   g.StartingAmount.Float(),
			ChangePercentage: g.ChangePercentage,
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if s.chat == nil {
		writeError(w, http.StatusServiceUnavailable, "chat is not configured")
		return
	}

	var req struct {
		Messages []chat.Message `json:"messages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := s.chat.Complete(r.Context(), req.Messages)
	switch {
	case errors.Is(err, chat.ErrNoMessages), errors.Is(err, chat.ErrBadRole):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "Chat completion failed", "error", err)
		writeError(w, http.StatusBadGateway, "chat completion failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": reply})
}
