// Package config manages user-level settings stored at
// ~/.create-react-tw/config.yaml. Every pipeline option has a key here, so
// a value can come from a flag, a CRTW_* environment variable, the config
// file, or the built-in default, in that order of precedence.
package config
