package gateway

// ReadStatus distinguishes how a read operation's value came to be.
// Callers are free to render Empty and Failed alike; logs keep the
// distinction.
type ReadStatus int

const (
	ReadOK ReadStatus = iota
	ReadEmpty
	ReadFailed
)

func (s ReadStatus) String() string {
	switch s {
	case ReadOK:
		return "ok"
	case ReadEmpty:
		return "empty"
	case ReadFailed:
		return "failed"
	default:
		return "unknown"
	}
}
