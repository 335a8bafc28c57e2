package grammalecte

import (
	"context"

	"github.com/heartmarshall/grammalecte-api/internal/config"
	"github.com/heartmarshall/grammalecte-api/internal/domain"
	"github.com/heartmarshall/grammalecte-api/internal/engine"
)

// stubOptions mirrors the names of common Grammalecte options so clients can
// exercise /options and option validation without a sidecar.
var stubOptions = domain.OptionSet{
	"apos":  true,
	"conf":  true,
	"esp":   true,
	"gv":    true,
	"html":  false,
	"latex": false,
	"maj":   true,
	"nbsp":  true,
	"num":   true,
	"typo":  true,
	"unit":  true,
	"virg":  true,
}

// Stub is an Engine that reports no diagnostics. Used with the "stub" driver
// for local development and tests that do not need real checking.
type Stub struct {
	info domain.EngineInfo
}

var _ engine.Engine = (*Stub)(nil)

// NewStub creates a Stub reporting the configured language.
func NewStub(cfg config.EngineConfig) *Stub {
	return &Stub{info: domain.EngineInfo{Program: cfg.Program(), Version: "stub", Lang: cfg.Lang}}
}

func (s *Stub) CheckParagraph(_ context.Context, _ int, _ string, _ domain.OptionSet, _ bool) ([]byte, error) {
	return nil, nil
}

// Suggest echoes the token as its only suggestion.
func (s *Stub) Suggest(_ context.Context, token string) ([][]string, error) {
	return [][]string{{token}}, nil
}

func (s *Stub) Info(_ context.Context) (domain.EngineInfo, error) { return s.info, nil }

func (s *Stub) Options(_ context.Context) (domain.OptionSet, error) {
	return stubOptions.Clone(), nil
}

func (s *Stub) DefaultOptions(_ context.Context) (domain.OptionSet, error) {
	return stubOptions.Clone(), nil
}
