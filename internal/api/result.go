package api

type Status int

const (
	// StatusEmpty is a well-formed reply that carried neither payload nor error.
	StatusEmpty Status = iota
	StatusSuccess
	StatusAppError
	StatusTransportError
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusAppError:
		return "application error"
	case StatusTransportError:
		return "transport error"
	default:
		return "empty"
	}
}

// Failed reports whether Error holds something to show the user.
func (s Status) Failed() bool {
	return s == StatusAppError || s == StatusTransportError
}

type UploadResult struct {
	Status   Status
	Filename string
	DocID    string
	Error    string
}

type AskResult struct {
	Status   Status
	Response string
	Error    string
}
