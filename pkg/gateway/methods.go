package gateway

import (
	"errors"

	"github.com/cmccomb/pastrami/pkg/session"
)

// registerBuiltinMethods registers all built-in RPC methods
func (s *Server) registerBuiltinMethods() {
	_ = s.router.RegisterMethod("script.repl", ScriptParamsSchema, s.handleScriptREPL)
	_ = s.router.RegisterMethod("script.run", ScriptParamsSchema, s.handleScriptRun)
	_ = s.router.RegisterMethod("packages.set", PackagesSetParamsSchema, s.handlePackagesSet)
	_ = s.router.RegisterMethod("packages.list", EmptyParamsSchema, s.handlePackagesList)
	_ = s.router.RegisterMethod("completion.catalog", EmptyParamsSchema, s.handleCompletionCatalog)

	if s.history != nil {
		_ = s.router.RegisterMethod("history.recent", HistoryRecentParamsSchema, s.handleHistoryRecent)
	}
}

// execute runs one script, streaming every print line to the client before
// the response goes out, then records the run.
func (s *Server) execute(sink EventSink, script string, mode session.Mode) session.ExecutionResult {
	result := s.manager.Execute(session.ExecutionRequest{
		Script: script,
		Mode:   mode,
		OnOutput: func(line string) {
			sink.PushEvent("script.output", "", map[string]interface{}{"line": line})
		},
	})

	if err := s.history.Record(script, result, mode); err != nil {
		s.logger.Warn().Err(err).Str("request_id", result.RequestID).Msg("History record failed")
	}
	return result
}

// handleScriptREPL handles the script.repl RPC method
func (s *Server) handleScriptREPL(sink EventSink, params map[string]interface{}) (interface{}, error) {
	script := params["script"].(string)
	return s.execute(sink, script, session.ModeREPL), nil
}

// handleScriptRun handles the script.run RPC method
func (s *Server) handleScriptRun(sink EventSink, params map[string]interface{}) (interface{}, error) {
	script := params["script"].(string)
	return s.execute(sink, script, session.ModeOneShot), nil
}

// handlePackagesSet handles the packages.set RPC method
func (s *Server) handlePackagesSet(sink EventSink, params map[string]interface{}) (interface{}, error) {
	raw := params["packages"].([]interface{})
	requested := make([]string, 0, len(raw))
	for _, entry := range raw {
		requested = append(requested, entry.(string))
	}

	if err := s.manager.SetEnabledPackages(requested); err != nil {
		var unknownErr *session.UnknownPackageError
		if errors.As(err, &unknownErr) {
			return nil, &RPCError{
				Code:    UnknownPackageCode,
				Message: unknownErr.Error(),
				Data:    unknownErr.Identifiers,
			}
		}
		return nil, err
	}

	return map[string]interface{}{"enabled": s.manager.EnabledPackages()}, nil
}

// handlePackagesList handles the packages.list RPC method
func (s *Server) handlePackagesList(sink EventSink, params map[string]interface{}) (interface{}, error) {
	return s.manager.Descriptors(), nil
}

// handleCompletionCatalog handles the completion.catalog RPC method
func (s *Server) handleCompletionCatalog(sink EventSink, params map[string]interface{}) (interface{}, error) {
	return s.manager.CompletionCatalog(), nil
}

// handleHistoryRecent handles the history.recent RPC method
func (s *Server) handleHistoryRecent(sink EventSink, params map[string]interface{}) (interface{}, error) {
	limit := 50
	if raw, ok := params["limit"].(float64); ok {
		limit = int(raw)
	}
	entries, err := s.history.Recent(limit)
	if err != nil {
		return nil, err
	}
	return entries, nil
}
