package source

import (
	"github.com/b21166/placefly/internal/model"
	"github.com/b21166/placefly/logging"
)

// Source produces the problem instance the optimizer consumes.
// Implementations own instance construction, the core never reads
// files or generates data itself.
type Source interface {
	FetchProblem() (*model.Problem, error)
}

var log = logging.Get()
