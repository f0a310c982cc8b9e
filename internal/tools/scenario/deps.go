package scenario

import (
	"github.com/louisbranch/aviato/internal/services/reach/domain/user"
	"github.com/louisbranch/aviato/internal/services/reach/storage"
)

// runnerDeps bundles injectable dependencies for runner construction.
type runnerDeps struct {
	directory user.Directory
	// newGateway is called once per scenario so runs never share state.
	newGateway func() storage.Gateway
}
