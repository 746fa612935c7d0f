package gateway

// Per-method JSON Schemas for RPC parameter validation. Registered alongside
// each handler; requests that do not validate are rejected with
// InvalidParamsCode before the handler runs.

// ScriptParamsSchema validates script.repl and script.run parameters
const ScriptParamsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["script"],
  "properties": {
    "script": {
      "type": "string",
      "description": "Script text to evaluate"
    }
  },
  "additionalProperties": false
}`

// PackagesSetParamsSchema validates packages.set parameters
const PackagesSetParamsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["packages"],
  "properties": {
    "packages": {
      "type": "array",
      "items": {
        "type": "string",
        "minLength": 1
      },
      "description": "Namespace identifiers to enable"
    }
  },
  "additionalProperties": false
}`

// EmptyParamsSchema validates methods that take no parameters
const EmptyParamsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false
}`

// HistoryRecentParamsSchema validates history.recent parameters
const HistoryRecentParamsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "limit": {
      "type": "integer",
      "minimum": 1,
      "maximum": 500
    }
  },
  "additionalProperties": false
}`
