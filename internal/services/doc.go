// Package services defines the shared status model: the closed State and
// Identity enumerations, the Status and Outcome value types, and the Checker
// and Remediator contracts the per-service packages implement. Checkers and
// remediators share no mutable state with each other.
package services
