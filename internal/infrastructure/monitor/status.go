package monitor

import "time"

type Status struct {
	PostgreSQL bool      `json:"postgresql"`
	Redis      bool      `json:"redis"`
	Model      bool      `json:"model"`
	AuditSize  int       `json:"audit_size"`
	LastCheck  time.Time `json:"last_check"`
}
