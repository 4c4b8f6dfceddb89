package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Upload errors
	UploadReadError
	UploadEmptyError
	UploadMissingColumnError

	// Catalog errors
	CatalogLoadError
	CatalogFormatError
	CatalogCacheError
	CatalogBuildError
	CatalogWriteError

	// Resolution errors
	ResolveCollisionError
	ResolveChoicesError

	// Imputation errors
	ImputeStrategyError

	// Export errors
	ExportCreateError
	ExportWriteError
)
