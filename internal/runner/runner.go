package runner

import (
	"context"

	"github.com/b21166/placefly/alg"
	"github.com/b21166/placefly/internal/model"
)

// Outcome carries the result of one finished optimization run.
type Outcome struct {
	Result *model.Result
	Err    error
}

// Bridge is the channel pair the gui uses to poll a running
// optimization: it sends an empty struct and receives a progress
// snapshot back.
type Bridge struct {
	ProgressRequestStream chan<- struct{}
	ProgressStream        <-chan *alg.Progress
}

// Runner drives one optimizer in a background goroutine and keeps
// answering progress requests, also after the run has finished.
type Runner struct {
	optimizer *alg.HybridOptimizer
}

func New(optimizer *alg.HybridOptimizer) *Runner {
	return &Runner{
		optimizer: optimizer,
	}
}

func (r *Runner) Run(ctx context.Context) (Bridge, <-chan Outcome) {
	progressRequestStream := make(chan struct{})
	progressStream := make(chan *alg.Progress)
	outcomeStream := make(chan Outcome, 1)

	go func() {
		result, err := r.optimizer.Run(ctx)
		outcomeStream <- Outcome{
			Result: result,
			Err:    err,
		}
	}()

	go func() {
		for range progressRequestStream {
			progressStream <- r.optimizer.Progress()
		}
	}()

	return Bridge{
		ProgressRequestStream: progressRequestStream,
		ProgressStream:        progressStream,
	}, outcomeStream
}
