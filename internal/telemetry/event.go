package telemetry

import "time"

type Kind string

const (
	KindTurn           Kind = "turn"
	KindClientAcquired Kind = "client_acquired"
	KindClientLost     Kind = "client_lost"
	KindHire           Kind = "hire"
	KindAssign         Kind = "assign"
	KindUnassign       Kind = "unassign"
	KindPurchase       Kind = "purchase"
	KindPromotion      Kind = "promotion"
	KindEvent          Kind = "event"
	KindAutomation     Kind = "automation"
	KindFinance        Kind = "finance"
	KindGameOver       Kind = "game_over"
	KindSystem         Kind = "system"
)

// Entry is one line of the action log, tagged with the game week it happened
// in.
type Entry struct {
	ID        int       `json:"id"`
	Week      int       `json:"week"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
