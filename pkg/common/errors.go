package common

import "errors"

var (
	ErrArchiveAlreadyExists   = errors.New("archive output path is one of the input resources")
	ErrResourceNonExistent    = errors.New("input resource does not exist")
	ErrResourceCantBeArchived = errors.New("input resource is neither a file nor a directory")
	ErrArchiveNonExistent     = errors.New("archive does not exist")
	ErrArchiveNotRecognizable = errors.New("unexpected file signature")
	ErrCorruptHeaderBlock     = errors.New("header block scan overshot the content block")
	ErrTruncatedArchive       = errors.New("archive ended before a header could be read")
	ErrInvalidPath            = errors.New("path does not fit the header layout")
	ErrUnknownRenameSelector  = errors.New("rename selector matches no archive entry")
)
