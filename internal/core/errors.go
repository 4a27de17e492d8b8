package core

import "errors"

// Failure classes of the host runtime. Every failure halts the runtime;
// callers use errors.Is to tell them apart.
var (
	// ErrAssetLoad means the module or font could not be fetched or instantiated.
	ErrAssetLoad = errors.New("asset load failure")

	// ErrMemoryAccess means a text reference pointed outside module memory
	// or had no zero terminator.
	ErrMemoryAccess = errors.New("memory access failure")

	// ErrModuleExport means a lifecycle export trapped or returned an error.
	ErrModuleExport = errors.New("module export failure")

	// ErrOutsideRender means a draw primitive was called outside a render export.
	ErrOutsideRender = errors.New("draw primitive called outside render")
)
