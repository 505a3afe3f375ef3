package cli

import (
	"bytes"
	"testing"

	"github.com/jonboulle/clockwork"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/custodia-labs/autoprofile/internal/adapters/driven/imaging"
	profilememory "github.com/custodia-labs/autoprofile/internal/adapters/driven/profile/memory"
	storagememory "github.com/custodia-labs/autoprofile/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/autoprofile/internal/adapters/driving/plugin"
	"github.com/custodia-labs/autoprofile/internal/core/domain"
	"github.com/custodia-labs/autoprofile/internal/core/services"
)

// memoryRuntime wires the automation to in-memory adapters and a fake clock.
func memoryRuntime() (*Runtime, *profilememory.Client, *storagememory.AuditLog) {
	client := profilememory.NewClient()
	audit := storagememory.NewAuditLog()
	automation := services.NewAutomationService(
		client, imaging.NewCodec(), audit, nil, clockwork.NewFakeClock(), domain.DefaultSettings())

	module := plugin.NewModule()
	module.ClientReady(automation)

	return &Runtime{
		Automation: automation,
		Module:     module,
		Audit:      audit,
		Registry:   prom.NewRegistry(),
	}, client, audit
}

// useRuntime makes every command use rt until the test ends.
func useRuntime(t *testing.T, rt *Runtime) {
	t.Helper()
	old := newRuntime
	newRuntime = func(string) (*Runtime, error) { return rt, nil }
	t.Cleanup(func() { newRuntime = old })
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}
