// Package errors provides the classified errors used across siteconf.
//
// Every failure that can abort a generation run is a ClassifiedError, so the
// CLI picks an exit code and a log level without string matching:
//
//	err := errors.WrapError(statErr, errors.CategoryFileSystem, "content root not readable").
//		Fatal().
//		WithContext("path", root).
//		Build()
package errors
