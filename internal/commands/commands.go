// Package commands implements the operator-facing status and mode
// operations over injected filter components. The chat-agent runtime
// exposes these as chat commands; the leakgate CLI exposes them as
// subcommands. Neither owns the components.
package commands

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/leakgate/pkg/secrets"
)

// Surface is the thin read/write entry point over the Redactor, the
// AuditLog, and the Detector's pattern inventory.
type Surface struct {
	redactor *secrets.Redactor
	audit    *secrets.AuditLog
	detector *secrets.Detector
	log      *zap.Logger
}

// NewSurface wires the command surface.
func NewSurface(redactor *secrets.Redactor, audit *secrets.AuditLog, detector *secrets.Detector, logger *zap.Logger) *Surface {
	return &Surface{
		redactor: redactor,
		audit:    audit,
		detector: detector,
		log:      logger,
	}
}

// StatusReport is the read-only view returned by Status.
type StatusReport struct {
	Mode        secrets.Mode `json:"mode"`
	Enforcement string       `json:"enforcement"`
	AuditPath   string       `json:"audit_path"`
	Patterns    []string     `json:"patterns"`
}

// Status reports the current mode, its enforcement description, the
// audit log path, and the full active pattern-name list.
func (s *Surface) Status() StatusReport {
	mode := s.redactor.Mode()
	return StatusReport{
		Mode:        mode,
		Enforcement: mode.Describe(),
		AuditPath:   s.audit.Path(),
		Patterns:    s.detector.Registry().Names(),
	}
}

// SetMode validates the value against the three-mode enum and switches
// the Redactor. Unrecognized tokens return a usage error and leave the
// mode unchanged. A successful switch records a synthetic audit entry
// with no patterns, so mode changes are themselves auditable.
func (s *Surface) SetMode(value, actor string) (secrets.Mode, error) {
	previous := s.redactor.Mode()

	mode, err := s.redactor.SetMode(value)
	if err != nil {
		return "", fmt.Errorf("usage: mode <strict|normal|permissive>: %w", err)
	}

	description := fmt.Sprintf("mode changed %s -> %s by %s", previous, mode, actor)
	if err := s.audit.Append(string(secrets.ActionWarned), mode, nil, actor, description); err != nil {
		s.log.Error("audit log write failed", zap.Error(err))
	}

	s.log.Info("security mode changed",
		zap.String("previous", string(previous)),
		zap.String("mode", string(mode)),
		zap.String("actor", actor),
	)
	return mode, nil
}
