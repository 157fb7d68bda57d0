package common

import (
	"context"

	"resumelens/internal/errors"
)

// ProduceFunc computes the result a command should print
type ProduceFunc[Output any] func(ctx context.Context) (Output, error)

// RunCommand encapsulates the common logic for CLI commands: run the
// operation, then format and write its result per the command config.
func RunCommand[Output any](
	ctx context.Context,
	logger *errors.Logger,
	cmdConfig CommandConfig,
	produce ProduceFunc[Output],
) error {
	outputHandler := NewOutputHandler(logger)

	result, err := produce(ctx)
	if err != nil {
		return err
	}

	return outputHandler.HandleOutput(result, cmdConfig)
}
