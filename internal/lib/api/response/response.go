// Package response holds the envelope every admin API handler renders.
package response

type Response struct {
	Status string `json:"status"`
	Err    string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

const (
	StatusOK    = "OK"
	StatusError = "Error"
)

func OK() Response {
	return Response{Status: StatusOK}
}

// Ok wraps a payload in a successful envelope.
func Ok(data any) Response {
	return Response{Status: StatusOK, Data: data}
}

func Error(msg string) Response {
	return Response{
		Status: StatusError,
		Err:    msg,
	}
}
