// Package orchestration provides high-level workflow coordination for
// deployments.
//
// The Reconciler ties the state store, input normalization and the
// provisioners together. It defines the order and coordinates state flow but
// delegates the actual work.
//
// # Workflow
//
// Deploy runs:
//  1. State - load the record of the previous deployment
//  2. Prepare - normalize inputs, keeping the recorded function name
//  3. Deploy - function, gateway and DNS phases
//  4. State - save the new record
//
// Remove loads the record, runs the destroy provisioner and deletes the
// record once every resource is gone.
//
// # Usage
//
//	reconciler := orchestration.NewReconciler(store, components, "express-dev")
//	result, err := reconciler.Deploy(ctx, inputs)
//
// Deploy can be run repeatedly. A redeploy updates the same function and
// gateway instead of creating new ones.
package orchestration
