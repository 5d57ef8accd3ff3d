// Package services provides domain services that implement business policy
// spanning more than one aggregate.
//
// The package includes:
//   - AdmissionPolicy: plan-based admission control for order creation
//
// Domain services are pure; transactional serialization of their inputs is
// owned by the application layer.
package services
