// Package decompose splits derived bank-indexing functions into
// rank, bank-group, and bank-address components, using refresh
// interval and read-read latency as the discriminating signals.
package decompose
