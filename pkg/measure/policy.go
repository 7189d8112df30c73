package measure

import "fmt"

// Policy describes what the interceptor logs for a single call site and
// at which severities. A Policy is fully determined when the call site
// is instrumented and never mutated afterward; share one instance across
// any number of concurrent invocations.
//
// The zero configuration logs nothing except slow-execution escalation,
// which is on by default.
type Policy struct {
	paramNamesToLog map[string]struct{}
	logReturnValue  bool
	errorLog        bool
	entryLogMessage string
	logLevel        Level
	errorLogLevel   Level
	timeoutLogLevel Level
	timeoutLog      bool
}

// PolicyOption configures a Policy under construction.
type PolicyOption func(*Policy)

// WithEntryMessage sets the message logged when the call is entered.
// An empty message (the default) disables entry logging entirely.
func WithEntryMessage(msg string) PolicyOption {
	return func(p *Policy) { p.entryLogMessage = msg }
}

// WithParamNames sets the allow-list of parameter names eligible for
// entry logging. Parameters outside the list are never logged.
func WithParamNames(names ...string) PolicyOption {
	return func(p *Policy) {
		p.paramNamesToLog = make(map[string]struct{}, len(names))
		for _, n := range names {
			p.paramNamesToLog[n] = struct{}{}
		}
	}
}

// WithReturnValueLogging logs the call's return value on success.
func WithReturnValueLogging() PolicyOption {
	return func(p *Policy) { p.logReturnValue = true }
}

// WithErrorLogging logs failures of the wrapped call.
func WithErrorLogging() PolicyOption {
	return func(p *Policy) { p.errorLog = true }
}

// WithLevel sets the severity for entry, outcome, and return-value logs.
func WithLevel(l Level) PolicyOption {
	return func(p *Policy) { p.logLevel = l }
}

// WithErrorLevel sets the severity used when the wrapped call fails.
func WithErrorLevel(l Level) PolicyOption {
	return func(p *Policy) { p.errorLogLevel = l }
}

// WithTimeoutLevel sets the severity used when execution exceeds the
// slow-execution threshold.
func WithTimeoutLevel(l Level) PolicyOption {
	return func(p *Policy) { p.timeoutLogLevel = l }
}

// WithoutTimeoutLog disables slow-execution escalation for this call.
func WithoutTimeoutLog() PolicyOption {
	return func(p *Policy) { p.timeoutLog = false }
}

// NewPolicy builds an immutable Policy. Defaults: no parameters logged,
// no return-value or error logging, no entry message, logLevel TRACE,
// errorLogLevel WARN, timeoutLogLevel WARN, slow-execution escalation
// enabled. Invalid levels fail here, never at call time.
func NewPolicy(opts ...PolicyOption) (*Policy, error) {
	p := &Policy{
		logLevel:        LevelTrace,
		errorLogLevel:   LevelWarn,
		timeoutLogLevel: LevelWarn,
		timeoutLog:      true,
	}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// MustPolicy is NewPolicy for statically known configurations; it panics
// on validation failure.
func MustPolicy(opts ...PolicyOption) *Policy {
	p, err := NewPolicy(opts...)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Policy) validate() error {
	for _, l := range []struct {
		name  string
		level Level
	}{
		{"logLevel", p.logLevel},
		{"errorLogLevel", p.errorLogLevel},
		{"timeoutLogLevel", p.timeoutLogLevel},
	} {
		if !l.level.Valid() {
			return fmt.Errorf("policy %s: %w: %d", l.name, ErrInvalidLevel, int(l.level))
		}
	}
	return nil
}

// EntryLogMessage returns the configured entry message, empty when entry
// logging is disabled.
func (p *Policy) EntryLogMessage() string { return p.entryLogMessage }

// LogsReturnValue reports whether the return value is logged on success.
func (p *Policy) LogsReturnValue() bool { return p.logReturnValue }

// LogsErrors reports whether failures of the wrapped call are logged.
func (p *Policy) LogsErrors() bool { return p.errorLog }

// LogLevel returns the severity for entry, outcome, and return-value logs.
func (p *Policy) LogLevel() Level { return p.logLevel }

// ErrorLogLevel returns the severity used for failure logs.
func (p *Policy) ErrorLogLevel() Level { return p.errorLogLevel }

// TimeoutLogLevel returns the severity used for slow executions.
func (p *Policy) TimeoutLogLevel() Level { return p.timeoutLogLevel }

// TimeoutLogEnabled reports whether slow-execution escalation is active.
func (p *Policy) TimeoutLogEnabled() bool { return p.timeoutLog }

// paramsToLog returns the subset of args whose names are on the
// allow-list. An empty allow-list selects nothing.
func (p *Policy) paramsToLog(args Args) Args {
	if len(p.paramNamesToLog) == 0 || len(args) == 0 {
		return nil
	}
	filtered := make(Args, 0, len(args))
	for _, a := range args {
		if _, ok := p.paramNamesToLog[a.Name]; ok {
			filtered = append(filtered, a)
		}
	}
	return filtered
}
