package wallpaper

// ErrorCode classifies wallpaper failures.
type ErrorCode int

const (
	None ErrorCode = iota
	InvalidPath
	FileNotFound
	UnsupportedFormat
	CompositorCommandFailed
	DisplayNotFound
	InvalidDisplayId
	SystemError
)

func (c ErrorCode) String() string {
	switch c {
	case None:
		return "none"
	case InvalidPath:
		return "invalid path"
	case FileNotFound:
		return "file not found"
	case UnsupportedFormat:
		return "unsupported format"
	case CompositorCommandFailed:
		return "compositor command failed"
	case DisplayNotFound:
		return "display not found"
	case InvalidDisplayId:
		return "invalid display id"
	case SystemError:
		return "system error"
	default:
		return "unknown"
	}
}

// Error is a wallpaper failure with its code.
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
