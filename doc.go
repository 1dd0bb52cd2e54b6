// Package rebalance generates per-account trade lists that move a
// multi-account investment portfolio toward a portfolio-wide target
// allocation, selected by a target-volatility band, without transferring
// assets between accounts.
//
// The core is a stateless trade-generation engine built from small pure
// stages:
//   - Target Mix Resolver: picks the sleeve weight vector for a volatility band.
//   - Per-Account Allocator: turns account equity and weights into dollar
//     deltas per sleeve.
//   - Trade Synthesizer: turns dollar deltas into discrete BUY/SELL
//     transactions with lot rounding and capital-gain accounting.
//   - Cash Reconciler: sums implied cash flow per account and flags drift
//     beyond a tolerance.
//   - Holdings Projector: applies the transactions to produce the post-trade
//     holdings snapshot.
//
// Inputs are immutable snapshots, outputs are freshly constructed values, and
// accounts never exchange assets: each account is allocated and traded in
// isolation.
//
// This package serves as the foundational logic for the `rbl` command-line
// tool, which adds CSV import/export, price updates, and report rendering on
// top of the engine.
package rebalance
