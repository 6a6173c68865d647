// Package addressing orchestrates the full address-mapping discovery
// pipeline - pool sampling, SBDR discovery, bit classification,
// validation, and decomposition - behind the fixed state machine
// spec.md's "State & transitions" describes.
package addressing
