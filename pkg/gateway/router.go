package gateway

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// RPCRouter handles RPC method registration and request routing.
type RPCRouter struct {
	mu      sync.RWMutex
	methods map[string]registeredMethod
}

type registeredMethod struct {
	handler RequestHandler
	schema  *gojsonschema.Schema
}

// NewRPCRouter creates a new RPC router
func NewRPCRouter() *RPCRouter {
	return &RPCRouter{
		methods: make(map[string]registeredMethod),
	}
}

// RegisterMethod registers an RPC method handler with a JSON Schema for its
// parameters. The schema must compile.
func (r *RPCRouter) RegisterMethod(name string, paramsSchema string, handler RequestHandler) error {
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(paramsSchema))
	if err != nil {
		return fmt.Errorf("invalid parameter schema for %s: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.methods[name] = registeredMethod{handler: handler, schema: schema}
	return nil
}

// HasMethod reports whether a method is registered
func (r *RPCRouter) HasMethod(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.methods[name]
	return ok
}

// ParseRequest parses and validates a JSON-RPC request envelope
func (r *RPCRouter) ParseRequest(data []byte) (*RPCRequest, *RPCError) {
	var req RPCRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, &RPCError{
			Code:    ParseErrorCode,
			Message: "Parse error",
			Data:    err.Error(),
		}
	}

	if req.ID == "" {
		return nil, &RPCError{
			Code:    InvalidRequestCode,
			Message: "Invalid request: missing id field",
		}
	}
	if req.Method == "" {
		return nil, &RPCError{
			Code:    InvalidRequestCode,
			Message: "Invalid request: missing method field",
		}
	}
	if req.JSONRPC == "" {
		req.JSONRPC = "2.0"
	}

	return &req, nil
}

// RouteRequest validates parameters and dispatches to the registered handler.
// Handler errors become structured RPC errors; they are never re-thrown.
func (r *RPCRouter) RouteRequest(sink EventSink, req *RPCRequest) *RPCResponse {
	r.mu.RLock()
	method, ok := r.methods[req.Method]
	r.mu.RUnlock()

	if !ok {
		return errorResponse(req.ID, &RPCError{
			Code:    MethodNotFoundCode,
			Message: fmt.Sprintf("Method not found: %s", req.Method),
		})
	}

	params := req.Params
	if params == nil {
		params = map[string]interface{}{}
	}
	if rpcErr := validateParams(method.schema, params); rpcErr != nil {
		return errorResponse(req.ID, rpcErr)
	}

	result, err := method.handler(sink, params)
	if err != nil {
		var rpcErr *RPCError
		if e, ok := err.(*RPCError); ok {
			rpcErr = e
		} else {
			rpcErr = &RPCError{Code: InternalErrorCode, Message: err.Error()}
		}
		return errorResponse(req.ID, rpcErr)
	}

	return &RPCResponse{ID: req.ID, Result: result, JSONRPC: "2.0"}
}

func validateParams(schema *gojsonschema.Schema, params map[string]interface{}) *RPCError {
	result, err := schema.Validate(gojsonschema.NewGoLoader(params))
	if err != nil {
		return &RPCError{Code: InvalidParamsCode, Message: "Invalid params", Data: err.Error()}
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return &RPCError{
			Code:    InvalidParamsCode,
			Message: "Invalid params: " + strings.Join(details, "; "),
		}
	}
	return nil
}

func errorResponse(id string, rpcErr *RPCError) *RPCResponse {
	return &RPCResponse{ID: id, Error: rpcErr, JSONRPC: "2.0"}
}
