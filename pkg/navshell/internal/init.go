// Package internal contains navshell infrastructure shared by the public
// packages: logging and localised screen titles.
// Types and functions in this package are not part of the public API.
package internal
