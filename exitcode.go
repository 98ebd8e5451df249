package main

import (
	"errors"

	"nsefetch/internal/extractor"
	"nsefetch/internal/fetcher"
)

// Process exit codes, one per terminal error kind
const (
	exitOK              = 0
	exitUsage           = 1 // bad arguments, flags or config
	exitClientError     = 2 // 400, 401, 404
	exitUnhandledStatus = 3
	exitTransport       = 4
	exitStorage         = 5 // scratch buffer
	exitNotFound        = 6 // no tradedDate line
)

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}

	var (
		clientErr    *fetcher.ClientError
		unhandledErr *fetcher.UnhandledStatusError
		transportErr *fetcher.TransportError
		storageErr   *extractor.StorageError
	)
	switch {
	case errors.Is(err, extractor.ErrNotFound):
		return exitNotFound
	case errors.As(err, &clientErr):
		return exitClientError
	case errors.As(err, &unhandledErr):
		return exitUnhandledStatus
	case errors.As(err, &transportErr):
		return exitTransport
	case errors.As(err, &storageErr):
		return exitStorage
	default:
		return exitUsage
	}
}
