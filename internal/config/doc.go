// Package config turns raw deployment inputs into the canonical
// configuration handed to the provisioning components.
//
// Raw inputs are an untyped [node.Node] tree loaded from YAML, JSON or HCL.
// [Prepare] normalizes it into a [FunctionConfig] and a [GatewayConfig],
// fans the DNS settings out per region with the merge engine and builds the
// DNS binding requests for every custom domain. The only error it produces
// for bad input is a [ValidationError] naming the offending field.
//
// The package also holds the CLI runtime [Settings], which are read from the
// environment and command line flags rather than from the inputs file.
package config
