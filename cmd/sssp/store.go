package main

import (
	"fmt"
	"io"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/mycok/uPath/runstore"
	"github.com/mycok/uPath/runstore/cdb"
	"github.com/mycok/uPath/runstore/memory"
)

func getRunStore(storeURI string, logger *logrus.Entry) (runstore.Store, error) {
	if storeURI == "" {
		return nil, fmt.Errorf("run store URI must be specified with --store-uri")
	}

	url, err := url.Parse(storeURI)
	if err != nil {
		return nil, fmt.Errorf("failed to parse run store URI: %w", err)
	}

	switch url.Scheme {
	case "in-memory":
		logger.Info("using in-memory run store")

		return memory.NewInMemoryStore(), nil
	case "postgresql":
		logger.Info("using CDB run store")

		return cdb.NewCockroachDBStore(storeURI)
	default:
		return nil, fmt.Errorf("unsupported run store URI scheme: %q", url.Scheme)
	}
}

// closeStore releases the store's resources if it holds any.
func closeStore(store runstore.Store, logger *logrus.Entry) {
	if closer, ok := store.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			logger.WithField("err", err).Warn("failed to close run store")
		}
	}
}
