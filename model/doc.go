// Package model defines the provider-agnostic abstraction for the single
// blocking generation call the fact checker is built on.
//
// Core goals:
//   - One synchronous Generate(prompt) -> text contract for all providers
//   - Timeout, retry and backoff handled once in the Retry decorator
//   - Per-session call budgets via Limiter
//   - Lightweight mocking for tests (Mock)
//
// Providers (e.g. OpenAI, Anthropic) implement the Generator interface from
// this package so the search and verdict loops remain decoupled from vendor
// SDKs.
package model
