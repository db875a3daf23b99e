package session

import "github.com/storepulse/storepulse-cli/apiclient"

// Result is the discriminated outcome of a login or register attempt.
// Controller operations never surface raw errors to the UI layer; callers
// branch on Success and read either Data or Err.
type Result struct {
	Success bool
	Data    *apiclient.AuthResponse
	Err     error
}

func ok(data *apiclient.AuthResponse) Result {
	return Result{Success: true, Data: data}
}

func failed(err error) Result {
	return Result{Success: false, Err: err}
}
