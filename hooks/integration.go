package hooks

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsmodding/moddir/core"
)

// Config controls the fallback reconciliation pass
type Config struct {
	// PollInterval is the minimum time between catalog checks; zero checks on every Update
	PollInterval time.Duration
	// PollTimeout stops waiting for the catalog after this long; zero waits forever
	PollTimeout time.Duration
}

// Integration holds all state the hooks need for one game session. It is not safe for concurrent use:
// the game calls it from a single thread.
type Integration struct {
	Host     *Host
	Resolver core.Resolver
	// Catalog returns the store's current catalog, or nil if the store doesn't have one yet
	Catalog func() *core.Catalog
	Config  Config
	Logger  *log.Logger

	pending    bool
	done       bool
	elapsed    time.Duration
	sinceCheck time.Duration
	stats      core.ReconcileStats
}

// NewIntegration creates the session state. A nil logger uses the default one.
func NewIntegration(host *Host, mods core.ModLookup, catalog func() *core.Catalog, cfg Config, logger *log.Logger) *Integration {
	if logger == nil {
		logger = core.NewLogger()
	}
	return &Integration{
		Host:     host,
		Resolver: core.NewResolver(mods),
		Catalog:  catalog,
		Config:   cfg,
		Logger:   logger,
	}
}

// InstallHooks wraps the host functions. Calling it again is a no-op for hooks already installed.
// It returns the number of hooks installed by this call.
func (in *Integration) InstallHooks() int {
	if in.Host == nil {
		return 0
	}
	n := 0
	if in.Host.Capabilities.Install(CapabilityFilename, func() {
		in.Host.GetFilename = WrapFilename(in.Host.GetFilename, in.Resolver, in.Logger)
	}) {
		n++
	}
	if in.Host.Capabilities.Install(CapabilityXMLString, func() {
		in.Host.GetXMLString = WrapXMLString(in.Host.GetXMLString, in.Resolver, in.Logger)
	}) {
		n++
	}
	if in.Host.Capabilities.Install(CapabilityResolveCombinations, func() {
		in.Host.ResolveCombinations = WrapResolveCombinations(in.Host.ResolveCombinations, in.Catalog, in.Resolver, in.Logger)
	}) {
		n++
	}
	return n
}

// Installed reports whether the named hook is installed
func (in *Integration) Installed(capability string) bool {
	if in.Host == nil {
		return false
	}
	return in.Host.Capabilities.Installed(capability)
}

// OnMapLoaded installs the hooks and arms the fallback reconciliation pass, which runs once the store
// catalog has items. A catalog marked populated by the store triggers it directly; otherwise Update polls.
func (in *Integration) OnMapLoaded() {
	in.InstallHooks()
	if in.done || in.pending {
		return
	}
	in.pending = true
	in.elapsed = 0
	in.sinceCheck = 0
	if in.Catalog == nil {
		return
	}
	// The poll in Update covers catalogs that are replaced wholesale or never marked populated
	if cat := in.Catalog(); cat != nil {
		cat.OnPopulated(in.runFallback)
	}
}

// Pending reports whether the fallback pass is still waiting for the catalog
func (in *Integration) Pending() bool {
	return in.pending
}

// Done reports whether the fallback pass has run
func (in *Integration) Done() bool {
	return in.done
}

// Stats returns the counts of the fallback pass, zero until it has run
func (in *Integration) Stats() core.ReconcileStats {
	return in.stats
}

// Update advances the readiness poll by dt, the time since the previous frame
func (in *Integration) Update(dt time.Duration) {
	if !in.pending {
		return
	}
	in.elapsed += dt
	in.sinceCheck += dt
	if in.sinceCheck >= in.Config.PollInterval {
		in.sinceCheck = 0
		if in.catalogPopulated() {
			in.runFallback()
			return
		}
	}
	if in.Config.PollTimeout > 0 && in.elapsed >= in.Config.PollTimeout {
		in.pending = false
		in.log().Warn("store catalog was not populated, skipping combination fallback", "waited", in.elapsed)
	}
}

func (in *Integration) log() *log.Logger {
	if in.Logger == nil {
		in.Logger = core.NewLogger()
	}
	return in.Logger
}

func (in *Integration) catalogPopulated() bool {
	if in.Catalog == nil {
		return false
	}
	cat := in.Catalog()
	return cat != nil && cat.Len() > 0
}

func (in *Integration) runFallback() {
	if !in.pending {
		return
	}
	in.pending = false
	in.done = true
	var cat *core.Catalog
	if in.Catalog != nil {
		cat = in.Catalog()
	}
	in.stats = core.Reconcile(cat, in.Resolver, in.Logger)
	in.log().Info("store combinations reconciled",
		"visited", in.stats.Visited, "rewritten", in.stats.Rewritten, "linked", in.stats.Linked)
}

// OnVehiclePreLoad rewrites the combination tokens of a vehicle file as it is loaded.
// modDir is the directory of the mod the vehicle comes from.
func (in *Integration) OnVehiclePreLoad(x core.XMLAttributes, modDir string) core.RewriteResult {
	return core.RewriteVehicleCombinations(x, in.Resolver.Mods, modDir, in.Logger)
}
