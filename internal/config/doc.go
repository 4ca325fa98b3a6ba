// Package config defines the deployment configuration for the Trinity stack.
//
// Configuration lives in a single YAML file (trinity.yaml by default) and is
// decoded into an explicit [Config] struct. Every knob the provisioning
// sequencer consumes is carried here rather than through environment
// variables; only operational timeouts ([Timeouts]) may be overridden from
// the environment.
package config
