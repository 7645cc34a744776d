// Package models defines the core domain records for Bondï.
//
// # Records
//
//   - User: one account, owning its expenses, goals, pods, and streak state
//   - Expense: a personal expense entry
//   - Goal: a savings goal with a cumulative saved amount
//   - Pod: a named group of users sharing expenses
//   - SharedExpense: a pod expense with a per-member split map
//   - Streak: the consecutive-activity-day counter
//
// # Persistence shape
//
// The JSON tags on these records are the on-disk field names of the encoded
// database file and must not change: the durable file and the CSV exports are
// a compatibility contract with previously written data. Keys are stored
// as-is; only leaf values pass through the codec.
//
// # Design principles
//
//  1. Records are plain data; behavior lives in the service layer
//  2. Members reference users by username, not by pointer
//  3. Amounts are two-decimal currency values stored as floats
package models
