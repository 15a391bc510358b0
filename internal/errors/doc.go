// Package errors provides coded, actionable errors for the vango-toast
// command line and configuration loader.
//
// Each code maps to a registered template with a short message, a longer
// explanation and a hint:
//
//	E120  configuration file could not be parsed
//	E121  configuration value out of range
//	E122  invalid preview port
//	E141  configuration file not found
//	E160  preview server failed
//	E161  invalid toast request
//
// # Usage
//
//	err := errors.New(errors.CodeConfigParse).
//	    WithLocation("toast.yaml", 3, 11).
//	    Wrap(yamlErr)
//
//	errors.PrintError(err)
package errors
