package constants

import "errors"

// Authentication and configuration errors.
var (
	ErrNotAuthenticated = errors.New("not authenticated, run 'nh login' or set NERVES_HUB_TOKEN")
	ErrNoOrganization   = errors.New("no organization selected, use --org or set NERVES_HUB_ORG")
	ErrNoProduct        = errors.New("no product selected, use --product or set NERVES_HUB_PRODUCT")
)

// Validation errors.
var (
	ErrTokenRequired = errors.New("token must not be empty")
)

// Config command errors.
var (
	ErrUnknownConfigKey  = errors.New("unknown configuration key")
	ErrTokenNotConfigKey = errors.New("token cannot be managed with 'nh config'")
)

// File system errors.
var (
	ErrNotRegularFile   = errors.New("path is not a regular file")
	ErrFirmwareTooLarge = errors.New("firmware file exceeds the maximum upload size")
)
