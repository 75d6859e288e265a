package tools

// Invocation is a parsed or synthesized action request. It is transient:
// it exists only within a single message's orchestration pass.
type Invocation struct {
	Name       string                 `json:"name"`
	Parameters map[string]interface{} `json:"parameters"`
}

// ErrorKind classifies executor failures so the orchestrator and the HTTP
// layer can map them without string matching.
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindConflict      ErrorKind = "conflict"
	KindAuthorization ErrorKind = "authorization"
	KindNotFound      ErrorKind = "not_found"
	KindUnsupported   ErrorKind = "unsupported"
	KindInternal      ErrorKind = "internal"
)

// Result is the uniform outcome of an action execution. Failures are
// values, never panics or raw errors.
type Result struct {
	OK      bool
	Kind    ErrorKind
	Message string
	Data    interface{}
}

func Success(data interface{}, message string) Result {
	return Result{OK: true, Message: message, Data: data}
}

func Failure(kind ErrorKind, message string) Result {
	return Result{OK: false, Kind: kind, Message: message}
}
