package display

// ErrorCode classifies detection failures.
type ErrorCode int

const (
	None ErrorCode = iota
	CompositorNotRunning
	XLegacyNotAvailable
	NoDisplaysFound
	InvalidDisplayId
	CommandExecutionFailed
	ParseError
	SystemError
)

func (c ErrorCode) String() string {
	switch c {
	case None:
		return "none"
	case CompositorNotRunning:
		return "compositor not running"
	case XLegacyNotAvailable:
		return "legacy X not available"
	case NoDisplaysFound:
		return "no displays found"
	case InvalidDisplayId:
		return "invalid display id"
	case CommandExecutionFailed:
		return "command execution failed"
	case ParseError:
		return "parse error"
	case SystemError:
		return "system error"
	default:
		return "unknown"
	}
}

// Error is a detection failure with its code.
type Error struct {
	Code ErrorCode
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func newError(code ErrorCode, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}
