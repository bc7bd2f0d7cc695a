package common

import "context"

// Component is one batch job. Run returns once every output is written.
type Component interface {
	Run(context.Context) error
}
