package rubima

// VMOption configures a VM.
type VMOption interface{ apply(vm *VM) }

// ParserOption configures a Parser.
type ParserOption interface{ applyParser(p *Parser) }

// Option configures both a Parser and a VM.
type Option interface {
	VMOption
	ParserOption
}

// VMOptions combines any number of VMOptions into one, applied in order.
func VMOptions(opts ...VMOption) VMOption {
	var all vmOptions
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case vmOptions:
			all = append(all, impl...)
		default:
			all = append(all, opt)
		}
	}
	if len(all) == 1 {
		return all[0]
	}
	return all
}

// WithLogf sets a trace logging function, called for every dispatched
// instruction by a VM, and every emitted instruction or label resolution by a
// Parser.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return withLogfn(logfn) }

// WithStepLimit halts evaluation with ErrStepLimit after limit instructions
// have been dispatched; 0 means no limit.
func WithStepLimit(limit int) VMOption { return stepLimitOption(limit) }

// WithStackLimit halts evaluation with ErrStackLimit when a push would grow
// the stack past limit values; 0 means no limit.
func WithStackLimit(limit int) VMOption { return stackLimitOption(limit) }

// WithName sets the input name reported by ParseErrors.
func WithName(name string) ParserOption { return nameOption(name) }

type vmOptions []VMOption

func (opts vmOptions) apply(vm *VM) {
	for _, opt := range opts {
		opt.apply(vm)
	}
}

type withLogfn func(mess string, args ...interface{})
type stepLimitOption int
type stackLimitOption int
type nameOption string

func (logfn withLogfn) apply(vm *VM)          { vm.logfn = logfn }
func (logfn withLogfn) applyParser(p *Parser) { p.logfn = logfn }
func (lim stepLimitOption) apply(vm *VM)      { vm.stepLimit = int(lim) }
func (lim stackLimitOption) apply(vm *VM)     { vm.stackLimit = int(lim) }
func (name nameOption) applyParser(p *Parser) { p.name = string(name) }
