package agent

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sort"
	"strings"
)

// Handler runs a tool for the session's user. It reports failures as prose
// for the model to relay and never returns an error.
type Handler func(ctx context.Context, s *Session, args Args) string

// Tool is a function the model may call.
type Tool struct {
	ToolDeclaration
	Handler Handler

	// Failure is returned when the handler panics.
	Failure string
}

// Registry is the fixed set of tools a session exposes.
type Registry struct {
	byName map[string]Tool
}

func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{byName: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		if t.Name == "" || t.Handler == nil {
			continue
		}
		r.byName[t.Name] = t
	}
	return r
}

func (r *Registry) Has(name string) bool {
	if r == nil {
		return false
	}
	_, ok := r.byName[strings.TrimSpace(name)]
	return ok
}

func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Declarations lists every tool in name order for the model config.
func (r *Registry) Declarations() []ToolDeclaration {
	names := r.Names()
	out := make([]ToolDeclaration, 0, len(names))
	for _, name := range names {
		out = append(out, r.byName[name].ToolDeclaration)
	}
	return out
}

// Execute runs the named tool. Unknown tools and panics become prose.
func (r *Registry) Execute(ctx context.Context, s *Session, call ToolCall) (result string) {
	log := s.logger.With(slog.String("tool", call.Name), slog.String("call_id", call.ID))

	var tool Tool
	var ok bool
	if r != nil {
		tool, ok = r.byName[strings.TrimSpace(call.Name)]
	}
	if !ok {
		log.Warn("model called unknown tool")
		return fmt.Sprintf("Unknown tool %q.", call.Name)
	}

	defer func() {
		if p := recover(); p != nil {
			log.Error("tool panicked",
				slog.Any("panic", p),
				slog.String("stack", string(debug.Stack())),
			)
			result = tool.Failure
			if result == "" {
				result = "Sorry, something went wrong."
			}
		}
	}()

	return tool.Handler(ctx, s, call.Args)
}
