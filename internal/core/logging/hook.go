package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook extracts notebook and open_id from context and adds them to log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if uri := GetNotebook(ctx); uri != "" {
		e.Str("notebook", uri)
	}

	if id := GetOpenID(ctx); id != "" {
		e.Str("open_id", id)
	}
}
