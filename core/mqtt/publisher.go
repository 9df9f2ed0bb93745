// Package mqtt defines the outbound boundary toward the battery controller.
package mqtt

import (
	"time"

	"github.com/solbatt/solbatt/core/model"
)

// ScheduleDocument is the payload published after every schedule run. The
// controller follows the newest document it has seen.
type ScheduleDocument struct {
	RunID       string                `json:"run_id"`
	GeneratedAt time.Time             `json:"generated_at"`
	Entries     []model.ScheduleEntry `json:"entries"`
}

// Publisher delivers schedule documents to the battery controller.
type Publisher interface {
	PublishSchedule(doc ScheduleDocument) error
	Close()
}
