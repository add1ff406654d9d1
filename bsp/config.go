package bsp

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// PoolConfig encapsulates the configuration options for creating worker pools.
type PoolConfig struct {
	// Workers specifies the number of long-lived goroutines that execute the
	// partitions of each phase. If not specified, a single worker will be
	// used.
	Workers int

	// Partitions specifies how many contiguous ranges the index space of a
	// phase is split into. If not specified, it defaults to the number of
	// workers. Using more partitions than workers trades some scheduling
	// overhead for better load balancing.
	Partitions int
}

// Validate checks whether a pool configuration is valid and sets the default
// values if required.
func (c *PoolConfig) Validate() error {
	var err error

	if c.Workers < 0 {
		err = multierror.Append(err, fmt.Errorf("invalid number of workers %d, must be >= 0", c.Workers))
	} else if c.Workers == 0 {
		c.Workers = 1
	}

	if c.Partitions < 0 {
		err = multierror.Append(err, fmt.Errorf("invalid number of partitions %d, must be >= 0", c.Partitions))
	} else if c.Partitions == 0 {
		c.Partitions = c.Workers
	}

	return err
}
