package abi

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/conn-castle/electron-rebuild/internal/messages"
	"github.com/conn-castle/electron-rebuild/internal/procrun"
)

// DefaultCanaryModule is a small native module expected to be built for the host runtime.
const DefaultCanaryModule = "nslog"

// CanaryOutcome tags the result of loading the canary module.
type CanaryOutcome int

const (
	// CanaryLoaded means the host runtime required the canary module cleanly.
	CanaryLoaded CanaryOutcome = iota
	// CanaryFailed covers every other result: non-zero exit, spawn failure, or a crash.
	CanaryFailed
)

// CanaryLoadResult is the outcome of LoadCanary. Reason is set when Outcome is CanaryFailed.
type CanaryLoadResult struct {
	Outcome CanaryOutcome
	Reason  error
}

// Decision is the outcome of IsRebuildNeeded.
type Decision struct {
	Needed    bool
	Reason    string
	Canary    CanaryLoadResult
	HostABI   ABIVersion
	TargetABI ABIVersion
}

// Decider compares the host runtime's module ABI against an Electron executable's.
type Decider struct {
	Runner procrun.Runner
	Prober *Prober
	// HostNode is the host runtime executable; empty = node from PATH.
	HostNode string
	// CanaryModule is required inside HostNode; empty = DefaultCanaryModule.
	CanaryModule string
	// Dir is the working directory the canary is resolved from.
	Dir     string
	BaseEnv []string
	// HostABI, when set, is used instead of probing HostNode.
	HostABI ABIVersion
}

// LoadCanary requires the canary module in a fresh host runtime process.
// Loading native modules can crash the process outright on some platforms, so any
// failure is folded into CanaryFailed instead of being returned as an error.
func (d *Decider) LoadCanary(ctx context.Context) CanaryLoadResult {
	if d.Runner == nil {
		return CanaryLoadResult{Outcome: CanaryFailed, Reason: errors.New(messages.ABIRunnerRequired)}
	}
	cmd := procrun.Command{
		Name: d.hostNode(),
		Args: []string{"-e", fmt.Sprintf("require(%s)", strconv.Quote(d.canaryModule()))},
		Dir:  d.Dir,
		Env:  d.BaseEnv,
	}
	if _, err := d.Runner.Run(ctx, cmd); err != nil {
		return CanaryLoadResult{Outcome: CanaryFailed, Reason: err}
	}
	return CanaryLoadResult{Outcome: CanaryLoaded}
}

// IsRebuildNeeded decides whether modules must be rebuilt for electronExe.
// explicit, when non-empty, replaces probing electronExe for its module version.
func (d *Decider) IsRebuildNeeded(ctx context.Context, electronExe string, explicit ABIVersion) (Decision, error) {
	canary := d.LoadCanary(ctx)
	if canary.Outcome == CanaryFailed {
		return Decision{Needed: true, Reason: messages.DecisionCanaryFailed, Canary: canary}, nil
	}

	target := explicit
	if target == "" {
		probed, err := d.prober().QueryABI(ctx, electronExe)
		if err != nil {
			return Decision{}, err
		}
		target = probed
	}

	host, err := d.hostABI(ctx)
	if err != nil {
		return Decision{}, err
	}

	decision := Decision{Canary: canary, HostABI: host, TargetABI: target}
	if target == host {
		decision.Reason = fmt.Sprintf(messages.DecisionABIMatchFmt, host, target)
		return decision, nil
	}
	decision.Needed = true
	decision.Reason = fmt.Sprintf(messages.DecisionABIMismatchFmt, host, target)
	return decision, nil
}

// hostABI returns the host runtime's module version, probing it once per Decider.
func (d *Decider) hostABI(ctx context.Context) (ABIVersion, error) {
	if d.HostABI != "" {
		return d.HostABI, nil
	}
	version, err := d.prober().QueryABI(ctx, d.hostNode())
	if err != nil {
		return "", err
	}
	d.HostABI = version
	return version, nil
}

func (d *Decider) prober() *Prober {
	if d.Prober != nil {
		return d.Prober
	}
	return &Prober{Runner: d.Runner, BaseEnv: d.BaseEnv}
}

func (d *Decider) hostNode() string {
	if d.HostNode != "" {
		return d.HostNode
	}
	return procrun.DefaultNode
}

func (d *Decider) canaryModule() string {
	if d.CanaryModule != "" {
		return d.CanaryModule
	}
	return DefaultCanaryModule
}
