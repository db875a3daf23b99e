package notifyfakes

import (
	"sync"

	"github.com/storepulse/storepulse-cli/notify"
)

var _ notify.Notifier = (*Recorder)(nil)

// Recorder captures notifications so tests can assert on them.
type Recorder struct {
	lock      sync.Mutex
	successes []string
	errors    []string
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Success(msg string) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.successes = append(r.successes, msg)
}

func (r *Recorder) Error(msg string) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.errors = append(r.errors, msg)
}

func (r *Recorder) Successes() []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]string(nil), r.successes...)
}

func (r *Recorder) Errors() []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]string(nil), r.errors...)
}
