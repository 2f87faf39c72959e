package amqp

import (
	"encoding/json"
	"time"

	"dailyexpenses/internal/core"
)

// ExpenseRecordedMessage announces an expense that was appended to the log.
// Amount is kept as decimal text so consumers do not lose precision.
type ExpenseRecordedMessage struct {
	Date        string    `json:"date"`
	Amount      string    `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewExpenseRecordedMessage(e core.Expense, now time.Time) *ExpenseRecordedMessage {
	return &ExpenseRecordedMessage{
		Date:        e.Date.String(),
		Amount:      e.Amount.String(),
		Category:    string(e.Category),
		Description: e.Description,
		Timestamp:   now,
	}
}

// ToJSON converts the message to JSON bytes
func (m *ExpenseRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ExpenseRecordedMessageFromJSON(data []byte) (*ExpenseRecordedMessage, error) {
	var msg ExpenseRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
