package amqp

import (
	"encoding/json"
	"time"

	"heybanco/internal/core"
)

// PaymentReminderMessage tells the worker that a recurring charge is due
// soon. The worker records it; duplicates for the same merchant and date
// are collapsed on the consumer side.
type PaymentReminderMessage struct {
	Merchant   string    `json:"merchant"`
	DueDay     int       `json:"due_day"`
	Amount     int64     `json:"amount"`
	DaysUntil  int       `json:"days_until"`
	Status     string    `json:"status"`
	RemindedOn string    `json:"reminded_on"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewPaymentReminderMessage(e core.CategorizedExpense, daysUntil int, status core.PaymentStatus, remindedOn string) *PaymentReminderMessage {
	return &PaymentReminderMessage{
		Merchant:   e.MerchantName,
		DueDay:     e.DueDay,
		Amount:     e.Amount,
		DaysUntil:  daysUntil,
		Status:     string(status),
		RemindedOn: remindedOn,
		Timestamp:  time.Now(),
	}
}

func (m *PaymentReminderMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func PaymentReminderMessageFromJSON(data []byte) (*PaymentReminderMessage, error) {
	var msg PaymentReminderMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
