package service

import (
	"context"

	"screen_navigator/internal/pkg/errors"
	"screen_navigator/internal/pkg/metrics"

	log "github.com/sirupsen/logrus"
)

// Dispatcher routes a tool call from an agent to the tool implementation,
// refusing tools the agent was not configured with.
type Dispatcher struct {
	agents *AgentRegistry
	tools  map[string]Tool
	log    *log.Logger
}

func NewDispatcher(agents *AgentRegistry, log *log.Logger, tools ...Tool) *Dispatcher {
	d := &Dispatcher{
		agents: agents,
		tools:  make(map[string]Tool, len(tools)),
		log:    log,
	}
	for _, t := range tools {
		d.tools[t.Declaration().Name] = t
	}
	return d
}

func (d *Dispatcher) Agents() *AgentRegistry {
	return d.agents
}

// Declarations returns the declarations of the agent's tools in the order
// the agent lists them.
func (d *Dispatcher) Declarations(agent string) ([]ToolDeclaration, error) {
	cfg, err := d.agents.Get(agent)
	if err != nil {
		return nil, err
	}
	decls := make([]ToolDeclaration, 0, len(cfg.Tools))
	for _, name := range cfg.Tools {
		t, ok := d.tools[name]
		if !ok {
			return nil, errors.Errorf(`tool %q of agent %q: %w`, name, agent, errors.ErrUnknownTool)
		}
		decls = append(decls, t.Declaration())
	}
	return decls, nil
}

func (d *Dispatcher) Invoke(ctx context.Context, agent, tool string, tc ToolContext, args map[string]any) (any, error) {
	entry := d.log.WithContext(ctx).WithFields(log.Fields{
		`agent`:   agent,
		`tool`:    tool,
		`session`: tc.Session,
	})

	cfg, err := d.agents.Get(agent)
	if err != nil {
		return nil, err
	}
	if !cfg.HasTool(tool) {
		metrics.ToolInvocationsTotal.WithLabelValues(agent, tool, "rejected").Inc()
		return nil, errors.Errorf(`tool %q for agent %q: %w`, tool, agent, errors.ErrToolNotEnabled)
	}
	t, ok := d.tools[tool]
	if !ok {
		metrics.ToolInvocationsTotal.WithLabelValues(agent, tool, "rejected").Inc()
		return nil, errors.Errorf(`tool %q: %w`, tool, errors.ErrUnknownTool)
	}

	if args == nil {
		args = map[string]any{}
	}
	entry.Debug(`tool invoked`)
	result, err := t.Call(ctx, tc, args)
	if err != nil {
		metrics.ToolInvocationsTotal.WithLabelValues(agent, tool, "error").Inc()
		entry.WithError(err).Error(`tool call failed`)
		return nil, err
	}
	metrics.ToolInvocationsTotal.WithLabelValues(agent, tool, "ok").Inc()
	return result, nil
}
