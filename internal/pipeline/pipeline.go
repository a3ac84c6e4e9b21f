// Package pipeline orchestrates one generation request end to end: parse,
// plan, route, render, emit, per spec §4.1's stage ordering.
package pipeline

import (
	"context"

	"topoforge/internal/addralloc"
	"topoforge/internal/emit"
	"topoforge/internal/errs"
	"topoforge/internal/graph"
	"topoforge/internal/ioscfg"
	"topoforge/internal/planner"
	"topoforge/internal/routing"
)

// Result carries every artifact one generation run produces.
type Result struct {
	Topology  *graph.Topology
	Plan      *planner.Plan
	Formatted map[string][]string // device id -> rendered command stream
	Bundles   emit.Bundles
	Report    string
	Simulator string
	WLAN      string // empty unless a native VLAN was declared
}

// Generate runs the full pipeline against a submitted topology, stopping
// at the first stage that returns an error or the first ctx cancellation
// checked between stages.
func Generate(ctx context.Context, raw graph.RawTopology, coordScale float64) (*Result, error) {
	t, err := graph.Build(raw)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	alloc, err := addralloc.NewFromOctet(t.BaseOctet)
	if err != nil {
		return nil, err
	}
	plan := planner.NewPlan(t)

	if err := planner.PlanLinks(t, alloc, plan); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := planner.PlanVLANs(t, alloc, plan); err != nil {
		return nil, err
	}
	if err := planner.ResolvePhysicalInterfaces(t, plan); err != nil {
		return nil, err
	}
	planner.AssignVLANOwnership(t, plan)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	routing.Solve(t, plan)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	formatted, err := renderDevices(t, plan)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bundles := emit.BuildBundles(t, formatted)
	report := emit.BuildReport(t, plan)
	sim := emit.BuildSimulatorScript(t, plan, formatted, coordScale)
	wlan := emit.BuildWLANSummary(t, plan)

	return &Result{
		Topology:  t,
		Plan:      plan,
		Formatted: formatted,
		Bundles:   bundles,
		Report:    report,
		Simulator: sim,
		WLAN:      wlan,
	}, nil
}

func renderDevices(t *graph.Topology, plan *planner.Plan) (map[string][]string, error) {
	out := make(map[string][]string, len(t.Devices))
	for _, id := range t.Order {
		d := t.Devices[id]
		var dev ioscfg.Device
		switch v := d.(type) {
		case graph.Router:
			dev = ioscfg.BuildRouter(t, plan, id, v)
		case graph.SwitchCore:
			dev = ioscfg.BuildL3Core(t, plan, id, v)
		case graph.Switch:
			dev = ioscfg.BuildL2Switch(t, plan, id, v)
		case graph.Host:
			continue
		default:
			return nil, errs.Newf(errs.ConfigBuildFailure, d.Name(), "unrecognized device variant")
		}
		out[id] = ioscfg.Format(dev)
	}
	return out, nil
}
