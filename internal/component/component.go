// Package component defines the contract between the workflow host and the
// integration components it renders and executes.
package component

import (
	"context"
	"sync"
	"time"

	"flow-components/internal/common/errors"
	"flow-components/internal/common/metrics"
	"flow-components/internal/common/validation"
)

// Execution result statuses surfaced to the host.
const (
	StatusSuccess = "success"
	StatusWarning = "warning"
	StatusError   = "error"
)

// Result is the uniform envelope every component execution returns. Failures
// of any kind are carried here; Execute never returns an error to the host.
type Result struct {
	Status    string                 `json:"status"`
	Message   string                 `json:"message"`
	ErrorCode string                 `json:"errorCode,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// Success builds a success result.
func Success(message string, data map[string]interface{}) *Result {
	return &Result{
		Status:  StatusSuccess,
		Message: message,
		Data:    data,
	}
}

// Warning builds a warning result for partial or empty outcomes.
func Warning(message string, data map[string]interface{}) *Result {
	return &Result{
		Status:  StatusWarning,
		Message: message,
		Data:    data,
	}
}

// Failure builds an error result from a normalized error.
func Failure(err error) *Result {
	stdErr := errors.Normalize(err)
	return &Result{
		Status:    StatusError,
		Message:   stdErr.Message,
		ErrorCode: string(stdErr.Code),
		Data: map[string]interface{}{
			"details":   stdErr.Details,
			"retryable": stdErr.Retryable,
		},
	}
}

// Metadata describes a component for the host UI.
type Metadata struct {
	DisplayName   string `json:"displayName"`
	Description   string `json:"description"`
	Documentation string `json:"documentation,omitempty"`
	Icon          string `json:"icon,omitempty"`
	Category      string `json:"category"`
	Version       string `json:"version"`
	Custom        bool   `json:"custom"`
}

// Field describes a single input or output port.
type Field struct {
	Name        string      `json:"name"`
	DisplayName string      `json:"displayName"`
	Type        string      `json:"type"`
	Description string      `json:"description,omitempty"`
	Required    bool        `json:"required"`
	Default     interface{} `json:"default,omitempty"`
	Advanced    bool        `json:"advanced,omitempty"`
	Options     []string    `json:"options,omitempty"`
}

// NodeConfig is the renderable descriptor the host uses to draw a node.
type NodeConfig struct {
	Name        string                `json:"name"`
	Metadata    Metadata              `json:"metadata"`
	Inputs      []Field               `json:"inputs"`
	Outputs     []Field               `json:"outputs"`
	InputSchema validation.JSONSchema `json:"inputSchema"`
}

// Component is the uniform contract every registered integration fulfils.
type Component interface {
	Name() string
	Metadata() Metadata
	Inputs() []Field
	Outputs() []Field
	BuildConfig() NodeConfig
	Execute(ctx context.Context, inputs map[string]interface{}) *Result
	LastStatus() string
}

// BaseComponent carries metadata and mutex-guarded status tracking shared by
// all concrete components. Embed it and implement Execute.
type BaseComponent struct {
	mu          sync.RWMutex
	name        string
	meta        Metadata
	inputs      []Field
	outputs     []Field
	inputSchema validation.JSONSchema
	status      string
	lastError   *errors.StandardError
}

func NewBase(name string, meta Metadata, inputs, outputs []Field, inputSchema validation.JSONSchema) BaseComponent {
	return BaseComponent{
		name:        name,
		meta:        meta,
		inputs:      inputs,
		outputs:     outputs,
		inputSchema: inputSchema,
	}
}

func (b *BaseComponent) Name() string       { return b.name }
func (b *BaseComponent) Metadata() Metadata { return b.meta }

func (b *BaseComponent) Inputs() []Field {
	out := make([]Field, len(b.inputs))
	copy(out, b.inputs)
	return out
}

func (b *BaseComponent) Outputs() []Field {
	out := make([]Field, len(b.outputs))
	copy(out, b.outputs)
	return out
}

func (b *BaseComponent) InputSchema() validation.JSONSchema {
	return b.inputSchema
}

func (b *BaseComponent) BuildConfig() NodeConfig {
	return NodeConfig{
		Name:        b.name,
		Metadata:    b.meta,
		Inputs:      b.Inputs(),
		Outputs:     b.Outputs(),
		InputSchema: b.inputSchema,
	}
}

// LastStatus returns the status of the most recent execution, or "" before
// the first run.
func (b *BaseComponent) LastStatus() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.status
}

// LastError returns the error of the most recent failed execution, if any.
func (b *BaseComponent) LastError() *errors.StandardError {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastError
}

func (b *BaseComponent) trackResult(res *Result) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status = res.Status
	if res.Status == StatusError {
		b.lastError = &errors.StandardError{
			Code:      errors.ErrorCode(res.ErrorCode),
			Message:   res.Message,
			Retryable: false,
			Timestamp: time.Now().UTC(),
		}
	} else {
		b.lastError = nil
	}
}

// Run wraps a component execution with metrics, panic recovery, and status
// tracking. Concrete components delegate their Execute to it.
func (b *BaseComponent) Run(ctx context.Context, inputs map[string]interface{}, fn func(context.Context, map[string]interface{}) *Result) (res *Result) {
	startTime := time.Now()
	metrics.ComponentRunsActive.WithLabelValues(b.name).Inc()

	defer func() {
		if r := recover(); r != nil {
			res = Failure(errors.NewExecutionPanicError(b.name, r))
		}
		if res == nil {
			res = Failure(errors.NewExecutionPanicError(b.name, "nil result"))
		}

		b.trackResult(res)

		metrics.ComponentRunsActive.WithLabelValues(b.name).Dec()
		metrics.ComponentRunDuration.WithLabelValues(b.name).Observe(time.Since(startTime).Seconds())
		if res.Status == StatusError {
			metrics.ComponentRunsFailed.WithLabelValues(b.name, res.ErrorCode).Inc()
		} else {
			metrics.ComponentRunsCompleted.WithLabelValues(b.name).Inc()
		}
	}()

	return fn(ctx, inputs)
}

// ValidateInputs runs the component's input schema against the raw input map
// and converts failures to the standard error model.
func (b *BaseComponent) ValidateInputs(inputs map[string]interface{}) *errors.StandardError {
	result := validation.ValidateInput(inputs, b.inputSchema)
	if result.Valid {
		return nil
	}

	for _, valErr := range result.Errors {
		if valErr.Code == "REQUIRED_FIELD_MISSING" {
			return errors.NewMissingParameterError(valErr.Field)
		}
	}

	messages := result.GetErrorMessages()
	details := ""
	if len(messages) > 0 {
		details = messages[0]
		for _, m := range messages[1:] {
			details += "; " + m
		}
	}
	return errors.NewValidationFailedError(details)
}
