package core

import "fmt"

// NotFoundError represents a resource that could not be found.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// IsNotFound checks if an error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*NotFoundError)
	return ok
}

// UnavailableTransientError represents a recoverable provider failure:
// network error, timeout, 5xx, or a rate limit response. The Orchestrator
// retries these with exponential backoff.
type UnavailableTransientError struct {
	Provider string
	Reason   string
}

func (e *UnavailableTransientError) Error() string {
	return fmt.Sprintf("%s: transient unavailability: %s", e.Provider, e.Reason)
}

// NewUnavailableTransientError creates a new UnavailableTransientError.
func NewUnavailableTransientError(provider, reason string) error {
	return &UnavailableTransientError{Provider: provider, Reason: reason}
}

// IsTransient checks if an error is an UnavailableTransientError.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*UnavailableTransientError)
	return ok
}

// UnavailablePermanentError represents a non-recoverable provider failure:
// unknown team, a provider schema change, or a 4xx that is not a rate
// limit. It is surfaced in the refresh report; the last good raw value is
// retained and never overwritten.
type UnavailablePermanentError struct {
	Provider string
	Reason   string
}

func (e *UnavailablePermanentError) Error() string {
	return fmt.Sprintf("%s: permanent unavailability: %s", e.Provider, e.Reason)
}

// NewUnavailablePermanentError creates a new UnavailablePermanentError.
func NewUnavailablePermanentError(provider, reason string) error {
	return &UnavailablePermanentError{Provider: provider, Reason: reason}
}

// IsPermanent checks if an error is an UnavailablePermanentError.
func IsPermanent(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*UnavailablePermanentError)
	return ok
}

// InvalidValueError represents a provider-returned value outside its
// admissible range (e.g. a negative squad value). Treated as
// unavailable-permanent by the Orchestrator.
type InvalidValueError struct {
	Parameter Parameter
	Value     float64
	Reason    string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value for %s (%v): %s", e.Parameter, e.Value, e.Reason)
}

// NewInvalidValueError creates a new InvalidValueError.
func NewInvalidValueError(parameter Parameter, value float64, reason string) error {
	return &InvalidValueError{Parameter: parameter, Value: value, Reason: reason}
}

// IsInvalidValue checks if an error is an InvalidValueError.
func IsInvalidValue(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*InvalidValueError)
	return ok
}

// StorageError represents a database write or read failure. The
// Orchestrator does not retry it: a failed raw write aborts the refresh
// cycle, and a failed normalization or aggregation write is logged and
// that competition's step is skipped.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError creates a new StorageError.
func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// IsStorageError checks if an error is a StorageError.
func IsStorageError(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*StorageError)
	return ok
}

// ConfigurationError represents an invariant violated at load time, such as
// a weight vector that does not sum to 1.0 or reference to an unknown
// parameter. Fatal at startup; a refresh refuses to run.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// NewConfigurationError creates a new ConfigurationError.
func NewConfigurationError(field, reason string) error {
	return &ConfigurationError{Field: field, Reason: reason}
}

// IsConfigurationError checks if an error is a ConfigurationError.
func IsConfigurationError(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*ConfigurationError)
	return ok
}

// MissingStrengthError represents a strict-null refusal: the Odds Engine's
// partial_coverage_policy is strict-null and the selected strength variant
// for one side of a quote is null because at least one positively-weighted
// parameter is missing.
type MissingStrengthError struct {
	TeamName          string
	MissingParameters []Parameter
}

func (e *MissingStrengthError) Error() string {
	return fmt.Sprintf("%s has no usable strength value under strict-null policy: missing %v", e.TeamName, e.MissingParameters)
}

// NewMissingStrengthError creates a new MissingStrengthError.
func NewMissingStrengthError(teamName string, missing []Parameter) error {
	return &MissingStrengthError{TeamName: teamName, MissingParameters: missing}
}

// IsMissingStrength checks if an error is a MissingStrengthError.
func IsMissingStrength(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*MissingStrengthError)
	return ok
}

// InternalError represents a violated logic invariant — e.g. the
// Normalizer received unordered input it did not expect. Fatal; surfaced
// with context describing the invariant that broke.
type InternalError struct {
	Invariant string
	Context   string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal invariant violated (%s): %s", e.Invariant, e.Context)
}

// NewInternalError creates a new InternalError.
func NewInternalError(invariant, context string) error {
	return &InternalError{Invariant: invariant, Context: context}
}

// IsInternal checks if an error is an InternalError.
func IsInternal(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*InternalError)
	return ok
}
