package plugin

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/shlex"

	"github.com/custodia-labs/autoprofile/internal/core/domain"
	"github.com/custodia-labs/autoprofile/internal/core/ports/driving"
	"github.com/custodia-labs/autoprofile/internal/logger"
)

// CommandPrefix starts a command line, e.g. ".autopfp 90 true".
const CommandPrefix = "."

// Command names.
const (
	CmdAutoPfp      = "autopfp"
	CmdStopAutoPfp  = "stopautopfp"
	CmdAutoBio      = "autobio"
	CmdStopAutoBio  = "stopautobio"
	CmdAutoName     = "autoname"
	CmdStopAutoName = "stopautoname"
	CmdDelPfp       = "delpfp"
	CmdAutoStatus   = "autostatus"
)

// ErrUnknownCommand is returned by Dispatch for names the module does not handle.
var ErrUnknownCommand = errors.New("unknown command")

// CommandInfo describes a command for help output and tool listings.
type CommandInfo struct {
	Name        string
	Usage       string
	Description string
}

type handlerFunc func(ctx context.Context, automation driving.ProfileAutomation, args []string) string

type command struct {
	info    CommandInfo
	handler handlerFunc
}

// Module maps chat commands onto the automation service.
type Module struct {
	mu         sync.RWMutex
	automation driving.ProfileAutomation

	commands map[string]command
}

// NewModule creates the module. Commands reply "not ready" until ClientReady is called.
func NewModule() *Module {
	m := &Module{commands: make(map[string]command)}

	m.register(CmdAutoPfp, "<degrees> <true|false>",
		"Rotate the profile picture by degrees every interval, optionally deleting the previous one",
		handleAutoPfp)
	m.register(CmdStopAutoPfp, "", "Stop profile picture rotation", handleStopAutoPfp)
	m.register(CmdAutoBio, "'<text with {time}>'",
		"Keep the bio updated with the current time", handleAutoBio)
	m.register(CmdStopAutoBio, "", "Stop the bio clock", handleStopAutoBio)
	m.register(CmdAutoName, "'<text with {time}>'",
		"Keep the first name updated with the current time", handleAutoName)
	m.register(CmdStopAutoName, "", "Stop the name clock", handleStopAutoName)
	m.register(CmdDelPfp, "<count|0 for all>", "Remove profile pictures", handleDelPfp)
	m.register(CmdAutoStatus, "", "Show which loops are running", handleAutoStatus)

	return m
}

func (m *Module) register(name, usage, description string, handler handlerFunc) {
	m.commands[name] = command{
		info:    CommandInfo{Name: name, Usage: usage, Description: description},
		handler: handler,
	}
}

// Name returns the module's display name.
func (m *Module) Name() string {
	return ModuleName
}

// ClientReady is the host's lifecycle hook delivering the automation service.
func (m *Module) ClientReady(automation driving.ProfileAutomation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.automation = automation
	logger.Debug("%s: client ready", ModuleName)
}

// Commands lists the commands sorted by name.
func (m *Module) Commands() []CommandInfo {
	infos := make([]CommandInfo, 0, len(m.commands))
	for _, c := range m.commands {
		infos = append(infos, c.info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// Dispatch runs a command and returns its reply.
// The error is non-nil for unknown commands and for commands arriving before
// ClientReady (domain.ErrClientNotReady); the reply is still meant for the chat.
func (m *Module) Dispatch(ctx context.Context, name string, args []string) (string, error) {
	cmd, ok := m.commands[strings.ToLower(name)]
	if !ok {
		return fmt.Sprintf(replyUnknownCommand, name), fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	m.mu.RLock()
	automation := m.automation
	m.mu.RUnlock()

	if automation == nil {
		return replyClientNotReady, domain.ErrClientNotReady
	}

	logger.Debug("%s: %s %q", ModuleName, cmd.info.Name, args)
	return cmd.handler(ctx, automation, args), nil
}

// DispatchLine parses a line such as ".autobio 'online {time}'" and dispatches it.
func (m *Module) DispatchLine(ctx context.Context, line string) (string, error) {
	name, args, err := ParseLine(line)
	if err != nil {
		return replyInvalidArgs, err
	}
	return m.Dispatch(ctx, name, args)
}

// ParseLine splits a command line into the command name and its arguments.
// The leading CommandPrefix is optional.
func ParseLine(line string) (string, []string, error) {
	fields, err := SplitArgs(strings.TrimPrefix(strings.TrimSpace(line), CommandPrefix))
	if err != nil {
		return "", nil, err
	}
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("%w: empty command", domain.ErrInvalidArguments)
	}
	return fields[0], fields[1:], nil
}

// SplitArgs splits a string into arguments using shell quoting rules,
// so a quoted template with spaces stays one argument.
func SplitArgs(s string) ([]string, error) {
	args, err := shlex.Split(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidArguments, err)
	}
	return args, nil
}
